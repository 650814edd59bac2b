package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// WithTx начинает транзакцию, выполняет fn с транзакционным хендлом,
// затем коммитит при успехе или откатывает при ошибке/панике.
// Паника пробрасывается дальше.
func WithTx(ctx context.Context, db *sqlx.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
