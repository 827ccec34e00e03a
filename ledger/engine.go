// Package ledger derives balances from an account's transaction log
// and applies add/edit/delete mutations as atomic store units.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/store"
)

// Engine is the ledger engine. It holds no state of its own; every
// balance is re-derived from the store on demand so externally mutated
// storage can never drift from what callers see.
type Engine struct {
	store *store.SQLite
}

func NewEngine(s *store.SQLite) *Engine {
	return &Engine{store: s}
}

// AddInput carries the fields of a new transaction. AllowOverdraft
// overrides the soft insufficient-funds guard on expenses.
type AddInput struct {
	Name           string
	Category       string
	Amount         decimal.Decimal
	Kind           finance.Kind
	Date           finance.Date
	AllowOverdraft bool
}

// Update carries edits for an existing transaction. Nil fields keep
// their current value. Kind is immutable and cannot appear here.
type Update struct {
	Name     *string
	Category *string
	Amount   *decimal.Decimal
	Date     *finance.Date
}

// AddTransaction validates and records one income or expense entry.
//
// An expense exceeding the current balance is refused with
// *finance.InsufficientFundsError unless in.AllowOverdraft is set; the
// guard is soft so a caller can record negative-balance events
// deliberately.
func (e *Engine) AddTransaction(ctx context.Context, accountID int64, in AddInput) (finance.Transaction, error) {
	if !in.Kind.Valid() {
		return finance.Transaction{}, &finance.ValidationError{Field: "kind", Reason: "must be income or expense"}
	}
	if in.Name == "" {
		return finance.Transaction{}, &finance.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !in.Amount.IsPositive() {
		return finance.Transaction{}, &finance.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if in.Date.IsZero() {
		in.Date = finance.Today()
	}

	txn := finance.Transaction{
		AccountID: accountID,
		Name:      in.Name,
		Category:  in.Category,
		Amount:    in.Amount,
		Kind:      in.Kind,
		Date:      in.Date,
	}

	err := e.store.Update(ctx, func(tx *store.Tx) error {
		if txn.Kind == finance.Expense && !in.AllowOverdraft {
			balance, err := balanceIn(ctx, tx, accountID)
			if err != nil {
				return err
			}
			if txn.Amount.GreaterThan(balance) {
				return &finance.InsufficientFundsError{Needed: txn.Amount, Balance: balance}
			}
		}

		id, err := tx.InsertTransaction(ctx, txn)
		if err != nil {
			return err
		}
		txn.ID = id
		return nil
	})
	if err != nil {
		return finance.Transaction{}, err
	}
	return txn, nil
}

// EditTransaction applies upd to a transaction owned by the account.
// The amount must remain positive.
func (e *Engine) EditTransaction(ctx context.Context, accountID, id int64, upd Update) (finance.Transaction, error) {
	if upd.Name != nil && *upd.Name == "" {
		return finance.Transaction{}, &finance.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if upd.Amount != nil && !upd.Amount.IsPositive() {
		return finance.Transaction{}, &finance.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	var txn finance.Transaction
	err := e.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		txn, err = tx.Transaction(ctx, accountID, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			txn.Name = *upd.Name
		}
		if upd.Category != nil {
			txn.Category = *upd.Category
		}
		if upd.Amount != nil {
			txn.Amount = *upd.Amount
		}
		if upd.Date != nil {
			txn.Date = *upd.Date
		}
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return finance.Transaction{}, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction owned by the account.
func (e *Engine) DeleteTransaction(ctx context.Context, accountID, id int64) error {
	return e.store.Update(ctx, func(tx *store.Tx) error {
		return tx.DeleteTransaction(ctx, accountID, id)
	})
}

// Balance recomputes initial_balance + income − expense from the full
// stored log. Never cached.
func (e *Engine) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	acct, err := e.store.Account(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := e.store.Transactions(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balanceOf(acct, txns), nil
}

func balanceOf(acct finance.Account, txns []finance.Transaction) decimal.Decimal {
	balance := acct.InitialBalance
	for _, txn := range txns {
		balance = balance.Add(txn.Kind.Signed(txn.Amount))
	}
	return balance
}

// balanceIn derives the balance inside an open unit of work, so guards
// see any writes already made in the same unit.
func balanceIn(ctx context.Context, tx *store.Tx, accountID int64) (decimal.Decimal, error) {
	acct, err := tx.Account(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := tx.Transactions(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balanceOf(acct, txns), nil
}
