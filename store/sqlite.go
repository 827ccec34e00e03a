package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLite is the persistence store. Reads go straight through it;
// multi-statement mutations run inside Update so a mid-failure can
// never leave transactions, positions and trades out of sync.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so row helpers can be
// shared between plain reads and in-transaction reads.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens (creating if needed) the SQLite database at path and
// applies the schema.
func Open(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("store opened")
	return &SQLite{db: db, log: log}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Tx is one atomic unit of work. All mutating store methods hang off
// it; Update hands one to the callback and commits only if the
// callback returns nil.
type Tx struct {
	tx  *sql.Tx
	log zerolog.Logger
}

// Update runs fn inside a database transaction. The transaction is
// rolled back on error or panic and committed otherwise, so the store
// is left exactly as before the call on any failure path.
func (s *SQLite) Update(ctx context.Context, fn func(tx *Tx) error) (err error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = dbTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := dbTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				s.log.Error().Err(rbErr).Msg("rollback failed")
			}
			return
		}
		err = dbTx.Commit()
	}()

	return fn(&Tx{tx: dbTx, log: s.log})
}
