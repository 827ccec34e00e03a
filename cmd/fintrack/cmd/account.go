package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Register and manage accounts",
	Long: `Manage ledger accounts.

Subcommands:
  create - Register a new account
  login  - Verify credentials for an account
  passwd - Change an account password

Examples:
  fintrack account create -u alice --name "Alice Rao" --balance 1000
  fintrack account login -u alice`,
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new account",
	RunE:  runAccountCreate,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify credentials for an account",
	RunE:  runAccountLogin,
}

var accountPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change an account password",
	RunE:  runAccountPasswd,
}

var (
	acctFullName string
	acctBalance  string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountPasswdCmd)

	accountCreateCmd.Flags().StringVar(&acctFullName, "name", "", "display name (required)")
	accountCreateCmd.Flags().StringVar(&acctBalance, "balance", "0", "initial balance")
	accountCreateCmd.MarkFlagRequired("name")
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	if username == "" {
		return fmt.Errorf("--user is required")
	}

	initial, err := decimal.NewFromString(acctBalance)
	if err != nil {
		return fmt.Errorf("parse balance: %w", err)
	}
	if initial.IsNegative() {
		return fmt.Errorf("initial balance must not be negative")
	}

	password, err := promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.store.CreateAccount(cmd.Context(), username, acctFullName, password, initial)
	if err != nil {
		return err
	}

	fmt.Printf("Account %q created (id %d). You can now log in.\n", acct.Username, acct.ID)
	return nil
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	password, err := promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if password != acct.Password {
		return fmt.Errorf("incorrect username or password")
	}

	fmt.Printf("Login successful. Welcome back, %s!\n", acct.FullName)
	return nil
}

func runAccountPasswd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	current, err := promptPassword("Current password: ")
	if err != nil {
		return err
	}
	if current != acct.Password {
		return fmt.Errorf("incorrect password")
	}

	next, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := a.store.UpdatePassword(cmd.Context(), acct.ID, next); err != nil {
		return err
	}

	fmt.Println("Password updated.")
	return nil
}
