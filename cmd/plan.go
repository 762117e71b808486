package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"debt-planner/domain"
	"debt-planner/engine"
	"debt-planner/service"
)

var (
	planInputPath string
	planStrategy  string
	planLedger    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a payoff plan offline from a JSON input file",
	Long: `Reads a SimulationInput JSON file ({"accounts": [...], "monthlyBudget": N})
and prints the projected payoff. Strategy "compare" runs both and shows
the savings.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planInputPath, "input", "i", "", "path to the input JSON file (required)")
	planCmd.Flags().StringVarP(&planStrategy, "strategy", "s", "compare", "avalanche, snowball or compare")
	planCmd.Flags().BoolVar(&planLedger, "ledger", false, "print the full month-by-month ledger")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(planInputPath)
	if err != nil {
		return err
	}
	var input domain.SimulationInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}
	if err := service.ValidateInput(input); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch planStrategy {
	case "compare":
		av := engine.Simulate(input, domain.Avalanche)
		sb := engine.Simulate(input, domain.Snowball)
		printSummary(out, av)
		printSummary(out, sb)
		saved := sb.TotalInterest - av.TotalInterest
		if saved > 0 {
			fmt.Fprintf(out, "\nAvalanche saves $%.2f in interest over snowball.\n", saved)
		} else {
			fmt.Fprintln(out, "\nBoth strategies cost the same for this input.")
		}
		if planLedger {
			printLedger(out, input, av)
		}
	default:
		strategy := domain.Strategy(planStrategy)
		if !strategy.Valid() {
			return service.ErrInvalidStrategy
		}
		res := engine.Simulate(input, strategy)
		printSummary(out, res)
		if planLedger {
			printLedger(out, input, res)
		}
	}
	return nil
}

func printSummary(w io.Writer, res domain.SimulationResult) {
	fmt.Fprintf(w, "\n%s\n", res.Strategy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  months to debt-free\t%d\n", res.MonthsToDebtFree)
	fmt.Fprintf(tw, "  total interest\t$%.2f\n", res.TotalInterest)
	if res.Outcome == domain.CapReached {
		fmt.Fprintf(tw, "  outcome\tNOT PAID OFF within %d months\n", engine.MaxMonths)
	} else {
		fmt.Fprintf(tw, "  outcome\tdebt free\n")
	}
	tw.Flush()
}

func printLedger(w io.Writer, input domain.SimulationInput, res domain.SimulationResult) {
	fmt.Fprintf(w, "\nledger (%s)\n", res.Strategy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "month")
	for _, a := range input.Accounts {
		fmt.Fprintf(tw, "\t%s paid\t%s owed", a.ID, a.ID)
	}
	fmt.Fprintln(tw)
	for _, step := range res.Steps {
		fmt.Fprintf(tw, "%d", step.MonthIndex)
		for _, a := range input.Accounts {
			fmt.Fprintf(tw, "\t%.2f\t%.2f", step.Allocations[a.ID], step.Balances[a.ID])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
