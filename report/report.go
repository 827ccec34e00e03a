// Package report renders ledger and portfolio reports as text tables.
// Amounts gain/loss color via fatih/color, which disables itself on
// non-terminal writers.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/portfolio"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	blue  = color.New(color.FgBlue).SprintFunc()
)

// Writer renders reports with a configured currency symbol.
type Writer struct {
	Currency string
}

// NewWriter creates a report writer. currency defaults to "₹".
func NewWriter(currency string) *Writer {
	if currency == "" {
		currency = "₹"
	}
	return &Writer{Currency: currency}
}

func (r *Writer) money(d decimal.Decimal) string {
	return r.Currency + d.StringFixed(2)
}

// signed colors an amount green when non-negative, red otherwise.
func (r *Writer) signed(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return red(r.money(d))
	}
	return green(r.money(d))
}

// Statement renders the transaction history with running balances.
func (r *Writer) Statement(w io.Writer, st ledger.Statement) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tINCOME\tEXPENSE\tBALANCE")
	fmt.Fprintf(tw, "\t\tInitial Balance\t\t\t\t%s\n", r.signed(st.InitialBalance))

	for _, line := range st.Lines {
		income, expense := "", ""
		if line.Kind == finance.Income {
			income = green(r.money(line.Amount))
		} else {
			expense = red(r.money(line.Amount))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			line.ID, line.Date, line.Name, line.Category, income, expense, r.signed(line.Running))
	}
	tw.Flush()
}

// MonthlySummary renders per-month totals with a running net balance.
func (r *Writer) MonthlySummary(w io.Writer, months []ledger.MonthSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tINCOME\tEXPENSE\tNET BALANCE")
	for _, m := range months {
		fmt.Fprintf(tw, "%02d-%d\t%s\t%s\t%s\n",
			int(m.Month), m.Year, green(r.money(m.Income)), red(r.money(m.Expense)), r.signed(m.Net))
	}
	tw.Flush()
}

// Valuation renders the portfolio with live prices and P/L, followed by
// a totals line.
func (r *Writer) Valuation(w io.Writer, v portfolio.Valuation) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tQTY\tAVG BUY\tLIVE\tINVESTED\tCURRENT\tP/L\tP/L %")
	for _, h := range v.Holdings {
		live := "-"
		if h.PriceKnown {
			live = blue(r.money(h.LivePrice))
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s%%\n",
			h.Symbol, h.Quantity, r.money(h.AvgCost), live,
			r.money(h.Invested), r.money(h.Current), r.signed(h.PL), h.PLPercent.StringFixed(2))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal Invested: %s | Current Value: %s | P/L: %s (%s%%)\n",
		r.money(v.TotalInvested), r.money(v.TotalCurrent), r.signed(v.TotalPL), v.TotalPLPct.StringFixed(2))
}

// Trades renders the trade history.
func (r *Writer) Trades(w io.Writer, trades []finance.Trade) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tSIDE\tQTY\tPRICE\tTOTAL\tDATE")
	for _, t := range trades {
		side := green(string(t.Side))
		if t.Side == finance.Sell {
			side = red(string(t.Side))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			t.Symbol, side, t.Quantity, r.money(t.Price), r.money(t.Total()), t.Date)
	}
	tw.Flush()
}

// Balance renders the single-line balance view.
func (r *Writer) Balance(w io.Writer, balance decimal.Decimal) {
	fmt.Fprintf(w, "Balance: %s\n", r.signed(balance))
}
