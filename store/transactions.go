package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
)

// InsertTransaction appends a ledger entry and returns its id.
func (t *Tx) InsertTransaction(ctx context.Context, txn finance.Transaction) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO transactions (account_id, name, category, amount, kind, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		txn.AccountID, txn.Name, txn.Category, txn.Amount.String(), string(txn.Kind), txn.Date.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	t.log.Debug().Int64("id", id).Str("kind", string(txn.Kind)).Str("amount", txn.Amount.String()).Msg("transaction inserted")
	return id, nil
}

// UpdateTransaction rewrites the editable fields of an entry owned by
// the account. Kind is immutable and is not written.
func (t *Tx) UpdateTransaction(ctx context.Context, txn finance.Transaction) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE transactions SET name = ?, category = ?, amount = ?, date = ?
		 WHERE id = ? AND account_id = ?`,
		txn.Name, txn.Category, txn.Amount.String(), txn.Date.String(), txn.ID, txn.AccountID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &finance.NotFoundError{Entity: "transaction", ID: txn.ID}
	}
	return nil
}

// DeleteTransaction removes an entry owned by the account.
func (t *Tx) DeleteTransaction(ctx context.Context, accountID, id int64) error {
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &finance.NotFoundError{Entity: "transaction", ID: id}
	}
	return nil
}

// Transaction fetches one entry owned by the account.
func (t *Tx) Transaction(ctx context.Context, accountID, id int64) (finance.Transaction, error) {
	return getTransaction(ctx, t.tx, accountID, id)
}

// Transaction fetches one entry owned by the account.
func (s *SQLite) Transaction(ctx context.Context, accountID, id int64) (finance.Transaction, error) {
	return getTransaction(ctx, s.db, accountID, id)
}

// Transactions returns all of an account's entries in creation order.
// Running balances are derived from this ordering, not from dates,
// since dates are user-editable.
func (s *SQLite) Transactions(ctx context.Context, accountID int64) ([]finance.Transaction, error) {
	return listTransactions(ctx, s.db, accountID)
}

// Transactions returns the account's entries in creation order inside
// the unit of work.
func (t *Tx) Transactions(ctx context.Context, accountID int64) ([]finance.Transaction, error) {
	return listTransactions(ctx, t.tx, accountID)
}

func getTransaction(ctx context.Context, q dbtx, accountID, id int64) (finance.Transaction, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, account_id, name, category, amount, kind, date
		 FROM transactions WHERE id = ? AND account_id = ?`,
		id, accountID,
	)

	txn, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return finance.Transaction{}, &finance.NotFoundError{Entity: "transaction", ID: id}
	}
	return txn, err
}

func listTransactions(ctx context.Context, q dbtx, accountID int64) ([]finance.Transaction, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, account_id, name, category, amount, kind, date
		 FROM transactions WHERE account_id = ? ORDER BY id`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []finance.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(scan func(...any) error) (finance.Transaction, error) {
	var (
		txn    finance.Transaction
		amount string
		kind   string
		date   string
	)
	if err := scan(&txn.ID, &txn.AccountID, &txn.Name, &txn.Category, &amount, &kind, &date); err != nil {
		return finance.Transaction{}, err
	}

	var err error
	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("decode amount %q: %w", amount, err)
	}
	txn.Kind = finance.Kind(kind)
	txn.Date, err = finance.ParseDate(date)
	if err != nil {
		return finance.Transaction{}, err
	}
	return txn, nil
}
