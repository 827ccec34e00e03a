package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/finance"
)

func newTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func newTestAccount(t *testing.T, s *SQLite, initial string) finance.Account {
	t.Helper()

	acct, err := s.CreateAccount(context.Background(), "alice", "Alice Rao", "secret", dec(t, initial))
	require.NoError(t, err)
	return acct
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('accounts','transactions','positions','trades')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["accounts"])
	assert.True(t, found["transactions"])
	assert.True(t, found["positions"])
	assert.True(t, found["trades"])
}

func TestCreateAccountUniqueUsername(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	acct := newTestAccount(t, s, "100.50")
	assert.Equal(t, "alice", acct.Username)
	assert.True(t, acct.InitialBalance.Equal(dec(t, "100.50")))

	_, err := s.CreateAccount(ctx, "alice", "Other Alice", "pw", decimal.Zero)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAccountLookups(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	acct := newTestAccount(t, s, "42")

	byID, err := s.Account(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Equal(t, acct.Username, byID.Username)

	byName, err := s.AccountByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, acct.ID, byName.ID)

	_, err = s.Account(ctx, 9999)
	assert.ErrorIs(t, err, finance.ErrNotFound)

	_, err = s.AccountByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	acct := newTestAccount(t, s, "0")

	assert.NoError(t, s.UpdatePassword(ctx, acct.ID, "hunter2"))

	got, err := s.Account(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Equal(t, "hunter2", got.Password)

	assert.ErrorIs(t, s.UpdatePassword(ctx, 9999, "pw"), finance.ErrNotFound)
}

func TestTransactionOwnershipScoping(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	alice := newTestAccount(t, s, "0")

	bob, err := s.CreateAccount(ctx, "bob", "Bob Iyer", "pw", decimal.Zero)
	require.NoError(t, err)

	var txnID int64
	err = s.Update(ctx, func(tx *Tx) error {
		var err error
		txnID, err = tx.InsertTransaction(ctx, finance.Transaction{
			AccountID: alice.ID,
			Name:      "Salary",
			Category:  "Salary",
			Amount:    dec(t, "500"),
			Kind:      finance.Income,
			Date:      finance.Today(),
		})
		return err
	})
	require.NoError(t, err)

	// Bob cannot see, edit, or delete Alice's entry.
	_, err = s.Transaction(ctx, bob.ID, txnID)
	assert.ErrorIs(t, err, finance.ErrNotFound)

	err = s.Update(ctx, func(tx *Tx) error {
		return tx.DeleteTransaction(ctx, bob.ID, txnID)
	})
	assert.ErrorIs(t, err, finance.ErrNotFound)

	got, err := s.Transaction(ctx, alice.ID, txnID)
	assert.NoError(t, err)
	assert.Equal(t, "Salary", got.Name)
	assert.True(t, got.Amount.Equal(dec(t, "500")))
}

func TestUpdateRollsBackOnError(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	acct := newTestAccount(t, s, "0")

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx *Tx) error {
		_, err := tx.InsertTransaction(ctx, finance.Transaction{
			AccountID: acct.ID,
			Name:      "Phantom",
			Category:  "Other Expense",
			Amount:    dec(t, "10"),
			Kind:      finance.Expense,
			Date:      finance.Today(),
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The insert inside the failed unit must not be visible.
	txns, err := s.Transactions(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Empty(t, txns)
}

func TestDecimalRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	acct := newTestAccount(t, s, "0.10")

	// Amounts that float64 cannot represent exactly must survive
	// storage unchanged.
	err := s.Update(ctx, func(tx *Tx) error {
		_, err := tx.InsertTransaction(ctx, finance.Transaction{
			AccountID: acct.ID,
			Name:      "Precise",
			Category:  "Other Income",
			Amount:    dec(t, "0.30"),
			Kind:      finance.Income,
			Date:      finance.Today(),
		})
		return err
	})
	require.NoError(t, err)

	txns, err := s.Transactions(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(dec(t, "0.30")))
}
