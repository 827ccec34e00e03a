package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
)

// Line is one statement row: a transaction plus the balance after it.
type Line struct {
	finance.Transaction
	Running decimal.Decimal
}

// Statement is the full transaction history of an account with running
// balances, in creation order.
type Statement struct {
	InitialBalance decimal.Decimal
	Lines          []Line
}

// List builds the account's statement. Rows follow creation order, not
// date order: dates are user-editable and not guaranteed monotonic, so
// only insertion order gives a stable running balance.
func (e *Engine) List(ctx context.Context, accountID int64) (Statement, error) {
	acct, err := e.store.Account(ctx, accountID)
	if err != nil {
		return Statement{}, err
	}
	txns, err := e.store.Transactions(ctx, accountID)
	if err != nil {
		return Statement{}, err
	}

	st := Statement{
		InitialBalance: acct.InitialBalance,
		Lines:          make([]Line, 0, len(txns)),
	}
	running := acct.InitialBalance
	for _, txn := range txns {
		running = running.Add(txn.Kind.Signed(txn.Amount))
		st.Lines = append(st.Lines, Line{Transaction: txn, Running: running})
	}
	return st, nil
}

// MonthSummary aggregates one calendar month of activity. Net is the
// running balance after the month, carried across groups.
type MonthSummary struct {
	Year    int
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// MonthlySummary groups transactions by calendar month, ordered
// chronologically by date. This deliberately differs from List, which
// follows creation order: a summary should read in date order even
// when entries were recorded out of order.
func (e *Engine) MonthlySummary(ctx context.Context, accountID int64) ([]MonthSummary, error) {
	acct, err := e.store.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	txns, err := e.store.Transactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month time.Month
	}
	groups := make(map[key]*MonthSummary)
	for _, txn := range txns {
		k := key{txn.Date.Year(), txn.Date.Month()}
		g, ok := groups[k]
		if !ok {
			g = &MonthSummary{Year: k.year, Month: k.month}
			groups[k] = g
		}
		switch txn.Kind {
		case finance.Income:
			g.Income = g.Income.Add(txn.Amount)
		case finance.Expense:
			g.Expense = g.Expense.Add(txn.Amount)
		}
	}

	months := make([]MonthSummary, 0, len(groups))
	for _, g := range groups {
		months = append(months, *g)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	running := acct.InitialBalance
	for i := range months {
		running = running.Add(months[i].Income).Sub(months[i].Expense)
		months[i].Net = running
	}
	return months, nil
}
