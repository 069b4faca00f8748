package tx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// TxRepository hands out ledger transactions. Rows that a decision depends on are locked with
// SELECT ... FOR UPDATE inside the transaction, so read committed is enough.
type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type SQLTx struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &SQLTx{db: db, isolation: sql.LevelReadCommitted}
}

func (r *SQLTx) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: r.isolation})
}

func (r *SQLTx) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

// RollbackTx is safe to defer: rolling back a finished transaction is not an error.
func (r *SQLTx) RollbackTx(tx *sqlx.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
