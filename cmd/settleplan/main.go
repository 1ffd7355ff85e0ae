// Command settleplan computes balances and a settlement plan for a group.
//
// It is a thin collaborator around the engine: it loads the group's expense
// snapshot from the database, runs the computation, prints the result and
// optionally records the plan for lifecycle tracking.
//
//	settleplan -group <id> [-record]
//	settleplan -demo
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/renteduse/cost-collective-calc/internal/config"
	"github.com/renteduse/cost-collective-calc/internal/models"
	"github.com/renteduse/cost-collective-calc/internal/service"
	"github.com/renteduse/cost-collective-calc/internal/storage/sqlite"
	"github.com/renteduse/cost-collective-calc/pkg/logging"
)

func main() {
	groupID := flag.String("group", "", "group ID to compute settlements for")
	record := flag.Bool("record", false, "record the computed plan as unsettled settlements")
	demo := flag.Bool("demo", false, "seed a demo group with a few expenses and print its ID")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := service.NewSettlementService(store, models.DefaultRates(), cfg.EngineOptions(), cfg.Settlement())
	ctx := context.Background()

	if *demo {
		id, err := seedDemo(ctx, store, svc, cfg.DefaultCurrency)
		if err != nil {
			slog.Error("Failed to seed demo group", "error", err)
			os.Exit(1)
		}
		fmt.Printf("demo group created: %s\n", id)
		return
	}

	if *groupID == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := svc.ComputeGroup(ctx, *groupID)
	if err != nil {
		slog.Error("Failed to compute settlements", "group_id", *groupID, "error", err)
		os.Exit(1)
	}

	printResult(result)

	if *record {
		recorded, err := svc.RecordPlan(ctx, result, "")
		if err != nil {
			slog.Error("Failed to record plan", "error", err)
			os.Exit(1)
		}
		fmt.Printf("\nrecorded %d settlement(s)\n", len(recorded))
	}
}

func printResult(result *service.Result) {
	currency := result.Group.DefaultCurrency

	fmt.Printf("%s — balances in %s\n\n", result.Group.Name, currency)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tPAID\tOWED\tNET")
	for _, bal := range result.Balances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			bal.Member.Name, money(bal.Paid), money(bal.Owed), money(bal.Net))
	}
	w.Flush()

	if len(result.Plan) == 0 {
		fmt.Println("\nall settled")
		return
	}

	names := make(map[string]string, len(result.Group.Members))
	for _, m := range result.Group.Members {
		names[m.ID] = m.Name
	}

	fmt.Println("\nsettlement plan:")
	for _, tx := range result.Plan {
		fmt.Printf("  %s pays %s %s %s\n", names[tx.From], names[tx.To], money(tx.Amount), tx.Currency)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// seedDemo creates a small group with two expenses so the command has
// something to show out of the box.
func seedDemo(ctx context.Context, store *sqlite.SQLiteStore, svc *service.SettlementService, currency string) (string, error) {
	group := &models.Group{
		Name:            "Demo Trip",
		DefaultCurrency: currency,
		Members: []models.Member{
			{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
		},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		return "", err
	}

	alice, bob, carol := group.Members[0].ID, group.Members[1].ID, group.Members[2].ID
	third := decimal.RequireFromString("30")
	ten := decimal.RequireFromString("10")

	expenses := []*models.Expense{
		{GroupID: group.ID, Description: "Hotel", Amount: decimal.RequireFromString("90"), Currency: currency,
			PaidBy: alice, Participants: []models.Share{
				{MemberID: alice, Amount: third}, {MemberID: bob, Amount: third}, {MemberID: carol, Amount: third},
			}},
		{GroupID: group.ID, Description: "Dinner", Amount: decimal.RequireFromString("30"), Currency: currency,
			PaidBy: bob, Participants: []models.Share{
				{MemberID: alice, Amount: ten}, {MemberID: bob, Amount: ten}, {MemberID: carol, Amount: ten},
			}},
	}
	for _, exp := range expenses {
		if err := svc.AddExpense(ctx, exp); err != nil {
			return "", err
		}
	}

	return group.ID, nil
}
