package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/goiam/console/internal/data/pgxutil"
	"github.com/goiam/console/internal/domain/model"
	apperrors "github.com/goiam/console/internal/errors"
)

// AuditRepo persists audit events in PostgreSQL.
type AuditRepo struct {
	DB *sql.DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db}
}

const auditColumns = `id, session_id, actor, action, entity, entity_id, detail, created_at`

// Record inserts an audit event and returns the stored row.
func (r *AuditRepo) Record(ctx context.Context, req model.RecordAuditRequest) (*model.AuditEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid audit event")
	}

	var out model.AuditEvent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			INSERT INTO audit_events (session_id, actor, action, entity, entity_id, detail)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+auditColumns+`
		`, req.SessionID, req.Actor, req.Action, req.Entity, req.EntityID, req.Detail)
		return row.Scan(&out.ID, &out.SessionID, &out.Actor, &out.Action,
			&out.Entity, &out.EntityID, &out.Detail, &out.CreatedAt)
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListBySession returns the most recent events for a session, newest first.
func (r *AuditRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]model.AuditEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var out []model.AuditEvent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+auditColumns+`
			FROM audit_events
			WHERE session_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, sessionID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectRows(rows, pgx.RowToStructByName[model.AuditEvent])
		return e
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// CountByAction returns how many events were recorded for an action.
func (r *AuditRepo) CountByAction(ctx context.Context, action model.AuditAction) (int64, error) {
	var count int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT count(*) FROM audit_events WHERE action = $1`, action,
		).Scan(&count)
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}
