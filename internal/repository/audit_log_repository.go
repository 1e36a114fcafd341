package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/firstroundai/interview-server/internal/domain"
)

const auditLogColumns = `id, action, target, performed_by, created_at`

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) domain.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (action, target, performed_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		log.Action,
		log.Target,
		log.PerformedBy,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *auditLogRepository) Find(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.PerformedBy != "" {
		args = append(args, filter.PerformedBy)
		query += fmt.Sprintf(" AND performed_by = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND created_at::date = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0)
	for rows.Next() {
		var l domain.AuditLog
		err := rows.Scan(&l.ID, &l.Action, &l.Target, &l.PerformedBy, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
