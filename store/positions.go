package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
)

// Position fetches the account's holding of one symbol.
func (s *SQLite) Position(ctx context.Context, accountID int64, symbol string) (finance.Position, error) {
	return getPosition(ctx, s.db, accountID, symbol)
}

// Position fetches the holding inside the unit of work, so buy/sell can
// read and rewrite it atomically.
func (t *Tx) Position(ctx context.Context, accountID int64, symbol string) (finance.Position, error) {
	return getPosition(ctx, t.tx, accountID, symbol)
}

// Positions returns all holdings of the account, ordered by symbol.
func (s *SQLite) Positions(ctx context.Context, accountID int64) ([]finance.Position, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, symbol, quantity, avg_cost
		 FROM positions WHERE account_id = ? ORDER BY symbol`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var positions []finance.Position
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// InsertPosition creates a fresh holding.
func (t *Tx) InsertPosition(ctx context.Context, p finance.Position) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO positions (account_id, symbol, quantity, avg_cost) VALUES (?, ?, ?, ?)`,
		p.AccountID, p.Symbol, p.Quantity, p.AvgCost.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	return id, nil
}

// UpdatePosition rewrites quantity and average cost of a holding.
func (t *Tx) UpdatePosition(ctx context.Context, p finance.Position) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE positions SET quantity = ?, avg_cost = ? WHERE id = ?`,
		p.Quantity, p.AvgCost.String(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &finance.NotFoundError{Entity: "position", ID: p.ID}
	}
	return nil
}

// DeletePosition removes a holding. Sells that empty a position delete
// the row; a zero-quantity position is never stored.
func (t *Tx) DeletePosition(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &finance.NotFoundError{Entity: "position", ID: id}
	}
	return nil
}

func getPosition(ctx context.Context, q dbtx, accountID int64, symbol string) (finance.Position, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, account_id, symbol, quantity, avg_cost
		 FROM positions WHERE account_id = ? AND symbol = ?`,
		accountID, symbol,
	)
	p, err := scanPosition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return finance.Position{}, &finance.NotFoundError{Entity: "position", ID: symbol}
	}
	return p, err
}

func scanPosition(scan func(...any) error) (finance.Position, error) {
	var (
		p       finance.Position
		avgCost string
	)
	if err := scan(&p.ID, &p.AccountID, &p.Symbol, &p.Quantity, &avgCost); err != nil {
		return finance.Position{}, err
	}

	var err error
	p.AvgCost, err = decimal.NewFromString(avgCost)
	if err != nil {
		return finance.Position{}, fmt.Errorf("decode avg cost %q: %w", avgCost, err)
	}
	return p, nil
}
