package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current account balance",
	Long: `Derive the current balance from the initial balance plus the full
transaction history.

Example:
  fintrack balance -u alice`,
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	balance, err := a.ledger.Balance(cmd.Context(), acct.ID)
	if err != nil {
		return err
	}
	a.report.Balance(os.Stdout, balance)
	return nil
}
