package finance

import (
	"github.com/shopspring/decimal"
)

// Kind classifies a ledger transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k == Income || k == Expense }

// Signed returns amount with the sign this kind contributes to a balance.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == Expense {
		return amount.Neg()
	}
	return amount
}

// Side classifies a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Account is a registered user and its ledger. The password is compared
// in plaintext, as the store predates any hashing scheme.
type Account struct {
	ID             int64
	Username       string
	FullName       string
	Password       string
	InitialBalance decimal.Decimal
}

// Transaction is a single income or expense ledger entry. Amount is
// always positive; Kind determines the sign of its balance contribution.
type Transaction struct {
	ID        int64
	AccountID int64
	Name      string
	Category  string
	Amount    decimal.Decimal
	Kind      Kind
	Date      Date
}

// Position is the current holding of one symbol: share count and the
// weighted-average cost of the lots still held. A position with zero
// quantity is deleted, never stored.
type Position struct {
	ID        int64
	AccountID int64
	Symbol    string
	Quantity  int64
	AvgCost   decimal.Decimal
}

// Invested returns quantity * average cost.
func (p Position) Invested() decimal.Decimal {
	return p.AvgCost.Mul(decimal.NewFromInt(p.Quantity))
}

// Trade is one append-only buy/sell event. Trades are never edited or
// deleted once recorded.
type Trade struct {
	ID        string
	AccountID int64
	Symbol    string
	Side      Side
	Quantity  int64
	Price     decimal.Decimal
	Date      Date
}

// Total returns quantity * price.
func (t Trade) Total() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}
