package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fintrack/finance"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Buy, sell and track stock positions",
	Long: `Manage the stock portfolio.

Subcommands:
  buy       - Buy shares of a symbol
  sell      - Sell shares from a position
  portfolio - Value all positions against live prices
  history   - Show the trade history

Every buy and sell is mirrored into the ledger as an expense or income
entry, so the balance always reflects the portfolio activity.

Examples:
  fintrack stock buy -u alice -s RELIANCE -q 10
  fintrack stock sell -u alice -s RELIANCE -q 4 -p 150
  fintrack stock portfolio -u alice`,
}

var stockBuyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy shares of a symbol",
	RunE:  runStockBuy,
}

var stockSellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell shares from a position",
	RunE:  runStockSell,
}

var stockPortfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Value all positions against live prices",
	RunE:  runStockPortfolio,
}

var stockHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the trade history",
	RunE:  runStockHistory,
}

var (
	stockSymbol string
	stockQty    int64
	stockPrice  string
	stockForce  bool
)

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.AddCommand(stockBuyCmd)
	stockCmd.AddCommand(stockSellCmd)
	stockCmd.AddCommand(stockPortfolioCmd)
	stockCmd.AddCommand(stockHistoryCmd)

	for _, c := range []*cobra.Command{stockBuyCmd, stockSellCmd} {
		c.Flags().StringVarP(&stockSymbol, "symbol", "s", "", "stock symbol (required)")
		c.Flags().Int64VarP(&stockQty, "quantity", "q", 1, "number of shares")
		c.Flags().StringVarP(&stockPrice, "price", "p", "", "price per share (default: live market price)")
		c.MarkFlagRequired("symbol")
	}
	stockBuyCmd.Flags().BoolVar(&stockForce, "force", false, "buy even if the cost exceeds the balance")
}

// resolvePrice uses the --price flag when given, the live quote
// otherwise.
func resolvePrice(cmd *cobra.Command, a *app, symbol string) (decimal.Decimal, error) {
	if stockPrice != "" {
		price, err := decimal.NewFromString(stockPrice)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse price: %w", err)
		}
		return price, nil
	}

	price, err := a.quoteSource().Lookup(cmd.Context(), a.portfolio.Normalize(symbol))
	if err != nil {
		return decimal.Zero, fmt.Errorf("no live price for %s; pass one with --price: %w", symbol, err)
	}
	return price, nil
}

func runStockBuy(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	price, err := resolvePrice(cmd, a, stockSymbol)
	if err != nil {
		return err
	}

	trade, err := a.portfolio.Buy(cmd.Context(), acct.ID, stockSymbol, stockQty, price, stockForce)

	var funds *finance.InsufficientFundsError
	if errors.As(err, &funds) {
		return fmt.Errorf("%w (re-run with --force to buy anyway)", funds)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Bought %d shares of %s at %s (total %s).\n",
		trade.Quantity, trade.Symbol, a.report.Currency+trade.Price.StringFixed(2), a.report.Currency+trade.Total().StringFixed(2))
	return nil
}

func runStockSell(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	price, err := resolvePrice(cmd, a, stockSymbol)
	if err != nil {
		return err
	}

	trade, err := a.portfolio.Sell(cmd.Context(), acct.ID, stockSymbol, stockQty, price)
	if err != nil {
		return err
	}

	fmt.Printf("Sold %d shares of %s at %s (total %s).\n",
		trade.Quantity, trade.Symbol, a.report.Currency+trade.Price.StringFixed(2), a.report.Currency+trade.Total().StringFixed(2))
	return nil
}

func runStockPortfolio(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	v, err := a.portfolio.Valuation(cmd.Context(), acct.ID, a.quoteSource())
	if err != nil {
		return err
	}
	if len(v.Holdings) == 0 {
		fmt.Println("Your portfolio is empty.")
		return nil
	}
	a.report.Valuation(os.Stdout, v)
	return nil
}

func runStockHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.account(cmd.Context())
	if err != nil {
		return err
	}

	trades, err := a.portfolio.History(cmd.Context(), acct.ID)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No stock trades found.")
		return nil
	}
	a.report.Trades(os.Stdout, trades)
	return nil
}
