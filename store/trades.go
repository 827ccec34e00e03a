package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
)

// InsertTrade appends one buy/sell event. Trades are never updated or
// deleted; there are no corresponding store methods.
func (t *Tx) InsertTrade(ctx context.Context, tr finance.Trade) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO trades (trade_id, account_id, symbol, side, quantity, price, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tr.ID, tr.AccountID, tr.Symbol, string(tr.Side), tr.Quantity, tr.Price.String(), tr.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}

	t.log.Debug().Str("trade_id", tr.ID).Str("side", string(tr.Side)).Str("symbol", tr.Symbol).Msg("trade recorded")
	return nil
}

// Trades returns the account's trade history, newest first. Trade IDs
// are ULIDs, so ordering by id is ordering by record time.
func (s *SQLite) Trades(ctx context.Context, accountID int64) ([]finance.Trade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT trade_id, account_id, symbol, side, quantity, price, date
		 FROM trades WHERE account_id = ? ORDER BY trade_id DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var trades []finance.Trade
	for rows.Next() {
		var (
			tr    finance.Trade
			side  string
			price string
			date  string
		)
		if err := rows.Scan(&tr.ID, &tr.AccountID, &tr.Symbol, &side, &tr.Quantity, &price, &date); err != nil {
			return nil, err
		}

		tr.Side = finance.Side(side)
		tr.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("decode price %q: %w", price, err)
		}
		tr.Date, err = finance.ParseDate(date)
		if err != nil {
			return nil, err
		}
		trades = append(trades, tr)
	}
	return trades, rows.Err()
}
