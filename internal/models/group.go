package models

// Member represents one person in a group roster.
type Member struct {
	// ID is the unique identifier for the member within a group (UUID format).
	ID string

	// Name is the display name of the member.
	Name string

	// Email is the member's contact address. Optional.
	Email string

	// AvatarURL points to the member's avatar image. Optional, display only.
	AvatarURL string
}

// Group represents a shared-expense group: a roster of members plus the
// currency all balances and settlements are reported in.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// DefaultCurrency is the ISO-style code every expense is normalized to
	// when computing balances. Defaults to USD when empty.
	DefaultCurrency string

	// Members is the group roster. Order matters: it is the insertion order
	// used as the deterministic tie-break when settling equal balances.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberIDs returns the roster's member IDs in roster order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// HasMember reports whether the roster contains the given member ID.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}
