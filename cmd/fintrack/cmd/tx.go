package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/ledger"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record and manage income/expense transactions",
	Long: `Manage ledger transactions.

Subcommands:
  add  - Record a new income or expense transaction
  list - Show the transaction history with running balances
  edit - Edit an existing transaction
  rm   - Delete a transaction

Examples:
  fintrack tx add -u alice --kind income --amount 500 --category Salary --desc "August salary"
  fintrack tx add -u alice --kind expense --amount 200 --category Rent --desc "Rent" --date 27-08-2025
  fintrack tx edit -u alice --id 3 --amount 250
  fintrack tx rm -u alice --id 3`,
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new income or expense transaction",
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the transaction history with running balances",
	RunE:  runTxList,
}

var txEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an existing transaction",
	Long: `Edit the description, category, amount or date of a transaction.
The kind (income/expense) of a transaction cannot be changed.`,
	RunE: runTxEdit,
}

var txRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a transaction",
	RunE:  runTxRm,
}

var (
	txKind     string
	txAmount   string
	txCategory string
	txDesc     string
	txDate     string
	txForce    bool
	txID       int64
)

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txEditCmd)
	txCmd.AddCommand(txRmCmd)

	txAddCmd.Flags().StringVarP(&txKind, "kind", "k", "expense", "transaction kind (income or expense)")
	txAddCmd.Flags().StringVarP(&txAmount, "amount", "a", "", "amount (required)")
	txAddCmd.Flags().StringVarP(&txCategory, "category", "c", "", "category label")
	txAddCmd.Flags().StringVar(&txDesc, "desc", "", "description (required)")
	txAddCmd.Flags().StringVarP(&txDate, "date", "d", "", "date (DD-MM-YYYY, default today)")
	txAddCmd.Flags().BoolVar(&txForce, "force", false, "record the expense even if it exceeds the balance")
	txAddCmd.MarkFlagRequired("amount")
	txAddCmd.MarkFlagRequired("desc")

	txEditCmd.Flags().Int64Var(&txID, "id", 0, "transaction id (required)")
	txEditCmd.Flags().StringVarP(&txAmount, "amount", "a", "", "new amount")
	txEditCmd.Flags().StringVarP(&txCategory, "category", "c", "", "new category")
	txEditCmd.Flags().StringVar(&txDesc, "desc", "", "new description")
	txEditCmd.Flags().StringVarP(&txDate, "date", "d", "", "new date (DD-MM-YYYY)")
	txEditCmd.MarkFlagRequired("id")

	txRmCmd.Flags().Int64Var(&txID, "id", 0, "transaction id (required)")
	txRmCmd.MarkFlagRequired("id")
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(txAmount)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	in := ledger.AddInput{
		Name:           txDesc,
		Category:       txCategory,
		Amount:         amount,
		Kind:           finance.Kind(txKind),
		AllowOverdraft: txForce,
	}
	if txDate != "" {
		in.Date, err = finance.ParseDate(txDate)
		if err != nil {
			return err
		}
	}

	txn, err := a.ledger.AddTransaction(cmd.Context(), acct.ID, in)

	var funds *finance.InsufficientFundsError
	if errors.As(err, &funds) {
		return fmt.Errorf("%w (re-run with --force to record it anyway)", funds)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Transaction %d recorded: %s %s (%s)\n", txn.ID, txn.Kind, a.report.Currency+txn.Amount.StringFixed(2), txn.Name)
	return nil
}

func runTxList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	st, err := a.ledger.List(cmd.Context(), acct.ID)
	if err != nil {
		return err
	}
	a.report.Statement(os.Stdout, st)
	return nil
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	var upd ledger.Update
	if cmd.Flags().Changed("desc") {
		upd.Name = &txDesc
	}
	if cmd.Flags().Changed("category") {
		upd.Category = &txCategory
	}
	if cmd.Flags().Changed("amount") {
		amount, err := decimal.NewFromString(txAmount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		upd.Amount = &amount
	}
	if cmd.Flags().Changed("date") {
		date, err := finance.ParseDate(txDate)
		if err != nil {
			return err
		}
		upd.Date = &date
	}

	txn, err := a.ledger.EditTransaction(cmd.Context(), acct.ID, txID, upd)
	if err != nil {
		return err
	}

	fmt.Printf("Transaction %d updated: %s %s (%s)\n", txn.ID, txn.Kind, a.report.Currency+txn.Amount.StringFixed(2), txn.Name)
	return nil
}

func runTxRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	if err := a.ledger.DeleteTransaction(cmd.Context(), acct.ID, txID); err != nil {
		return err
	}

	fmt.Printf("Transaction %d deleted.\n", txID)
	return nil
}
