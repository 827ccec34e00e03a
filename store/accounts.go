package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
)

// ErrUsernameTaken is returned by CreateAccount when the handle is
// already registered.
var ErrUsernameTaken = errors.New("username already taken")

// CreateAccount registers a new account. Usernames are unique.
func (s *SQLite) CreateAccount(ctx context.Context, username, fullName, password string, initialBalance decimal.Decimal) (finance.Account, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, full_name, password, initial_balance) VALUES (?, ?, ?, ?)`,
		username, fullName, password, initialBalance.String(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return finance.Account{}, ErrUsernameTaken
		}
		return finance.Account{}, fmt.Errorf("create account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return finance.Account{}, fmt.Errorf("create account: %w", err)
	}

	s.log.Debug().Int64("id", id).Str("username", username).Msg("account created")

	return finance.Account{
		ID:             id,
		Username:       username,
		FullName:       fullName,
		Password:       password,
		InitialBalance: initialBalance,
	}, nil
}

// Account looks an account up by id.
func (s *SQLite) Account(ctx context.Context, id int64) (finance.Account, error) {
	return getAccount(ctx, s.db, id)
}

// Account looks an account up by id inside the unit of work.
func (t *Tx) Account(ctx context.Context, id int64) (finance.Account, error) {
	return getAccount(ctx, t.tx, id)
}

// AccountByUsername looks an account up by its unique handle.
func (s *SQLite) AccountByUsername(ctx context.Context, username string) (finance.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, full_name, password, initial_balance FROM accounts WHERE username = ?`,
		username,
	)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finance.Account{}, &finance.NotFoundError{Entity: "account", ID: username}
	}
	return a, err
}

// UpdatePassword replaces the account credential.
func (s *SQLite) UpdatePassword(ctx context.Context, id int64, password string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET password = ? WHERE id = ?`, password, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &finance.NotFoundError{Entity: "account", ID: id}
	}
	return nil
}

func getAccount(ctx context.Context, q dbtx, id int64) (finance.Account, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, username, full_name, password, initial_balance FROM accounts WHERE id = ?`,
		id,
	)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finance.Account{}, &finance.NotFoundError{Entity: "account", ID: id}
	}
	return a, err
}

func scanAccount(row *sql.Row) (finance.Account, error) {
	var (
		a       finance.Account
		balance string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.FullName, &a.Password, &balance); err != nil {
		return finance.Account{}, err
	}

	var err error
	a.InitialBalance, err = decimal.NewFromString(balance)
	if err != nil {
		return finance.Account{}, fmt.Errorf("decode initial balance %q: %w", balance, err)
	}
	return a, nil
}
