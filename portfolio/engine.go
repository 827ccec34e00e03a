// Package portfolio maintains per-symbol positions with weighted
// average cost and mirrors every trade into the ledger, keeping the
// balance invariant intact across the trade path.
package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/internal/id"
	"github.com/rustyeddy/fintrack/store"
)

const (
	categoryPurchase = "Stock Purchase"
	categorySale     = "Stock Sale"
)

// Engine is the portfolio engine.
type Engine struct {
	store  *store.SQLite
	suffix string
}

// NewEngine creates a portfolio engine. suffix is the market suffix
// used for symbol normalization; empty selects the default.
func NewEngine(s *store.SQLite, suffix string) *Engine {
	if suffix == "" {
		suffix = finance.DefaultMarketSuffix
	}
	return &Engine{store: s, suffix: suffix}
}

// Normalize canonicalizes a symbol with the engine's market suffix.
func (e *Engine) Normalize(symbol string) string {
	return finance.NormalizeSymbol(symbol, e.suffix)
}

// Buy purchases qty shares at price. One atomic unit: the position is
// upserted with a new weighted-average cost, a BUY trade is appended,
// and the total cost is mirrored into the ledger as an expense.
//
// The total cost is checked against the current balance as a soft
// guard; allowOverdraft overrides it, mirroring the ledger's contract.
func (e *Engine) Buy(ctx context.Context, accountID int64, symbol string, qty int64, price decimal.Decimal, allowOverdraft bool) (finance.Trade, error) {
	if qty <= 0 {
		return finance.Trade{}, &finance.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if !price.IsPositive() {
		return finance.Trade{}, &finance.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}

	symbol = e.Normalize(symbol)
	trade := finance.Trade{
		ID:        id.New(),
		AccountID: accountID,
		Symbol:    symbol,
		Side:      finance.Buy,
		Quantity:  qty,
		Price:     price,
		Date:      finance.Today(),
	}
	totalCost := trade.Total()

	err := e.store.Update(ctx, func(tx *store.Tx) error {
		if !allowOverdraft {
			balance, err := balanceIn(ctx, tx, accountID)
			if err != nil {
				return err
			}
			if totalCost.GreaterThan(balance) {
				return &finance.InsufficientFundsError{Needed: totalCost, Balance: balance}
			}
		}

		pos, err := tx.Position(ctx, accountID, symbol)
		switch {
		case err == nil:
			// Weighted average of the old holding and the new lot.
			// Sells never touch it, so it always reflects what the
			// held shares actually cost.
			oldQty := decimal.NewFromInt(pos.Quantity)
			newQty := pos.Quantity + qty
			pos.AvgCost = oldQty.Mul(pos.AvgCost).Add(totalCost).Div(decimal.NewFromInt(newQty))
			pos.Quantity = newQty
			if err := tx.UpdatePosition(ctx, pos); err != nil {
				return err
			}
		case errors.Is(err, finance.ErrNotFound):
			_, err := tx.InsertPosition(ctx, finance.Position{
				AccountID: accountID,
				Symbol:    symbol,
				Quantity:  qty,
				AvgCost:   price,
			})
			if err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.InsertTrade(ctx, trade); err != nil {
			return err
		}

		_, err = tx.InsertTransaction(ctx, finance.Transaction{
			AccountID: accountID,
			Name:      fmt.Sprintf("Buy %s", symbol),
			Category:  categoryPurchase,
			Amount:    totalCost,
			Kind:      finance.Expense,
			Date:      trade.Date,
		})
		return err
	})
	if err != nil {
		return finance.Trade{}, err
	}
	return trade, nil
}

// Sell disposes of qty shares at price. One atomic unit: the position
// quantity is reduced (the row is deleted at exactly zero), a SELL
// trade is appended, and the proceeds are mirrored into the ledger as
// income. Average cost of any remaining shares is unchanged.
//
// A request exceeding the held quantity fails hard with
// *finance.InsufficientSharesError; there is no override.
func (e *Engine) Sell(ctx context.Context, accountID int64, symbol string, qty int64, price decimal.Decimal) (finance.Trade, error) {
	if qty <= 0 {
		return finance.Trade{}, &finance.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if !price.IsPositive() {
		return finance.Trade{}, &finance.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}

	symbol = e.Normalize(symbol)
	trade := finance.Trade{
		ID:        id.New(),
		AccountID: accountID,
		Symbol:    symbol,
		Side:      finance.Sell,
		Quantity:  qty,
		Price:     price,
		Date:      finance.Today(),
	}

	err := e.store.Update(ctx, func(tx *store.Tx) error {
		pos, err := tx.Position(ctx, accountID, symbol)
		if errors.Is(err, finance.ErrNotFound) {
			return &finance.InsufficientSharesError{Symbol: symbol, Held: 0, Requested: qty}
		}
		if err != nil {
			return err
		}
		if qty > pos.Quantity {
			return &finance.InsufficientSharesError{Symbol: symbol, Held: pos.Quantity, Requested: qty}
		}

		pos.Quantity -= qty
		if pos.Quantity == 0 {
			if err := tx.DeletePosition(ctx, pos.ID); err != nil {
				return err
			}
		} else {
			if err := tx.UpdatePosition(ctx, pos); err != nil {
				return err
			}
		}

		if err := tx.InsertTrade(ctx, trade); err != nil {
			return err
		}

		_, err = tx.InsertTransaction(ctx, finance.Transaction{
			AccountID: accountID,
			Name:      fmt.Sprintf("Sell %s", symbol),
			Category:  categorySale,
			Amount:    trade.Total(),
			Kind:      finance.Income,
			Date:      trade.Date,
		})
		return err
	})
	if err != nil {
		return finance.Trade{}, err
	}
	return trade, nil
}

// History returns the account's trade log, newest first.
func (e *Engine) History(ctx context.Context, accountID int64) ([]finance.Trade, error) {
	return e.store.Trades(ctx, accountID)
}

// balanceIn re-derives the account balance inside the unit of work.
func balanceIn(ctx context.Context, tx *store.Tx, accountID int64) (decimal.Decimal, error) {
	acct, err := tx.Account(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := tx.Transactions(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := acct.InitialBalance
	for _, txn := range txns {
		balance = balance.Add(txn.Kind.Signed(txn.Amount))
	}
	return balance, nil
}
