package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a monthly income/expense summary",
	Long: `Group transactions by calendar month with per-month income and
expense totals and a running net balance. Months are ordered by date,
which can differ from the recording order shown by 'tx list'.

Example:
  fintrack summary -u alice`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	months, err := a.ledger.MonthlySummary(cmd.Context(), acct.ID)
	if err != nil {
		return err
	}
	if len(months) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}
	a.report.MonthlySummary(os.Stdout, months)
	return nil
}
