package database

import (
	"context"
	"database/sql"
)

// Transact runs fn inside a transaction and guarantees the handle is
// resolved on every exit path: commit on a nil error, rollback on error,
// rollback and re-panic if fn panics.
func Transact(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
