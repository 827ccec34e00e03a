package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is the base error for lookups against entities that are
// absent or owned by a different account. Match with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or out-of-range input. No mutation
// is applied when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError identifies the entity a lookup missed. It wraps
// ErrNotFound so callers can match either way.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientFundsError is the soft guard on expenses and buys: the
// operation was not applied, but the caller may retry with the
// overdraft override set.
type InsufficientFundsError struct {
	Needed  decimal.Decimal
	Balance decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %s, balance %s", e.Needed, e.Balance)
}

// InsufficientSharesError blocks a sell outright; there is no override.
type InsufficientSharesError struct {
	Symbol    string
	Held      int64
	Requested int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s: hold %d, requested %d", e.Symbol, e.Held, e.Requested)
}
