package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNetPairwise(t *testing.T) {
	tests := []struct {
		name  string
		input map[Pair]decimal.Decimal
		want  map[Pair]decimal.Decimal
	}{
		{
			name: "two-directional noise collapses to net direction",
			input: map[Pair]decimal.Decimal{
				{Debtor: "alice", Creditor: "bob"}: dec("30"),
				{Debtor: "bob", Creditor: "alice"}: dec("10"),
			},
			want: map[Pair]decimal.Decimal{
				{Debtor: "alice", Creditor: "bob"}: dec("20"),
			},
		},
		{
			name: "exactly offsetting debts vanish",
			input: map[Pair]decimal.Decimal{
				{Debtor: "alice", Creditor: "bob"}: dec("25"),
				{Debtor: "bob", Creditor: "alice"}: dec("25"),
			},
			want: map[Pair]decimal.Decimal{},
		},
		{
			name: "one-directional entries pass through",
			input: map[Pair]decimal.Decimal{
				{Debtor: "alice", Creditor: "bob"}:   dec("12.50"),
				{Debtor: "carol", Creditor: "alice"}: dec("7"),
			},
			want: map[Pair]decimal.Decimal{
				{Debtor: "alice", Creditor: "bob"}:   dec("12.50"),
				{Debtor: "carol", Creditor: "alice"}: dec("7"),
			},
		},
		{
			name:  "empty input yields empty output",
			input: map[Pair]decimal.Decimal{},
			want:  map[Pair]decimal.Decimal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetPairwise(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("NetPairwise() has %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for pair, amt := range tt.want {
				if !got[pair].Equal(amt) {
					t.Errorf("NetPairwise()[%v] = %s, want %s", pair, got[pair], amt)
				}
			}
		})
	}
}

func TestNetFromPairwise(t *testing.T) {
	pairwise := map[Pair]decimal.Decimal{
		{Debtor: "bob", Creditor: "alice"}:   dec("20"),
		{Debtor: "carol", Creditor: "alice"}: dec("30"),
		{Debtor: "carol", Creditor: "bob"}:   dec("10"),
	}

	net := NetFromPairwise(pairwise)

	wants := map[string]string{"alice": "50", "bob": "-10", "carol": "-40"}
	for id, want := range wants {
		if !net[id].Equal(dec(want)) {
			t.Errorf("net[%s] = %s, want %s", id, net[id], want)
		}
	}

	sum := decimal.Zero
	for _, n := range net {
		sum = sum.Add(n)
	}
	if !sum.IsZero() {
		t.Errorf("nets derived from pairwise debts sum to %s, want 0", sum)
	}
}

func TestLedgerNetBalances(t *testing.T) {
	ledger := &Ledger{
		Balances: map[string]*Balance{
			"alice": {MemberID: "alice", Paid: dec("90"), Owed: dec("40")},
			"bob":   {MemberID: "bob", Paid: dec("30"), Owed: dec("40")},
		},
	}

	net := ledger.NetBalances()
	if !net["alice"].Equal(dec("50")) {
		t.Errorf("net[alice] = %s, want 50", net["alice"])
	}
	if !net["bob"].Equal(dec("-10")) {
		t.Errorf("net[bob] = %s, want -10", net["bob"])
	}
}
