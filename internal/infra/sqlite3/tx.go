package sqlite3

import (
	"context"
	"database/sql"
	"fmt"
)

type (
	TxFunc               = func(*sql.Tx) error
	TxSessionFactoryFunc = func() (*sql.DB, error)
	TxManager            = func(ctx context.Context, fn TxFunc) error
	TxOptions            = *sql.TxOptions
)

// WithTx runs fn inside a transaction. The error returned by fn is passed
// through unwrapped so callers can still match domain sentinels with errors.Is.
func WithTx(starterFn TxSessionFactoryFunc, txOpts TxOptions) TxManager {
	return func(ctx context.Context, fn TxFunc) error {
		db, err := starterFn()
		if err != nil {
			return fmt.Errorf("db connection error: %w", err)
		}

		tx, err := db.BeginTx(ctx, txOpts)
		if err != nil {
			return fmt.Errorf("db begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			}
		}()

		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("db commit transaction: %w", err)
		}

		return nil
	}
}
