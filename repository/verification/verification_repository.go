package verification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/food-delivery/constant"
	"github.com/muhammadheryan/food-delivery/model"
)

// ErrStaleVersion means the row changed between read and write, or another transaction
// inserted it first.
var ErrStaleVersion = errors.New("verification decision version is stale")

// VerificationRepository is the ledger of admin decisions, one row per restaurant or driver.
type VerificationRepository interface {
	GetDecisionTx(ctx context.Context, tx *sqlx.Tx, target constant.VerificationTarget, targetID string) (*model.DecisionEntity, error)
	InsertDecisionTx(ctx context.Context, tx *sqlx.Tx, req *model.DecisionEntity) error
	UpdateDecisionTx(ctx context.Context, tx *sqlx.Tx, req *model.DecisionEntity) error
	ListDecisions(ctx context.Context, target constant.VerificationTarget) ([]model.DecisionEntity, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewVerificationRepository(conn *sqlx.DB) VerificationRepository {
	return &SQL{conn: conn}
}

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const (
	getDecisionForUpdate = `SELECT id, target_type, target_id, status, reason, admin_id, version, decided_at
FROM verification_decision WHERE target_type = ? AND target_id = ? FOR UPDATE`

	insertDecision = `INSERT INTO verification_decision (target_type, target_id, status, reason, admin_id, version, decided_at)
VALUES (?, ?, ?, ?, ?, 1, NOW())`

	updateDecision = `UPDATE verification_decision
SET status = ?, reason = ?, admin_id = ?, version = version + 1, decided_at = NOW()
WHERE id = ? AND version = ?`

	listDecisions = `SELECT id, target_type, target_id, status, reason, admin_id, version, decided_at
FROM verification_decision WHERE target_type = ? ORDER BY decided_at DESC`
)

// GetDecisionTx locks and returns the ledger row, or nil when the target was never decided.
func (r *SQL) GetDecisionTx(ctx context.Context, tx *sqlx.Tx, target constant.VerificationTarget, targetID string) (*model.DecisionEntity, error) {
	var entity model.DecisionEntity
	if err := tx.QueryRowxContext(ctx, getDecisionForUpdate, target, targetID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) InsertDecisionTx(ctx context.Context, tx *sqlx.Tx, req *model.DecisionEntity) error {
	res, err := tx.ExecContext(ctx, insertDecision, req.TargetType, req.TargetID, req.Status, req.Reason, req.AdminID)
	if err != nil {
		return insertError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	req.Version = 1
	return nil
}

// insertError reports a lost race on uq_verification_target as a stale version. A missing row
// takes no gap lock under READ COMMITTED, so two first decisions can both try to insert.
func insertError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrStaleVersion
	}
	return err
}

// UpdateDecisionTx writes req only if the row still carries req.Version.
func (r *SQL) UpdateDecisionTx(ctx context.Context, tx *sqlx.Tx, req *model.DecisionEntity) error {
	res, err := tx.ExecContext(ctx, updateDecision, req.Status, req.Reason, req.AdminID, req.ID, req.Version)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleVersion
	}
	req.Version++
	return nil
}

func (r *SQL) ListDecisions(ctx context.Context, target constant.VerificationTarget) ([]model.DecisionEntity, error) {
	rows, err := r.conn.QueryxContext(ctx, listDecisions, target)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.DecisionEntity, 0)
	for rows.Next() {
		var d model.DecisionEntity
		if err := rows.StructScan(&d); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
