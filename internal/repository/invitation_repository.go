package repository

import (
	"context"
	"database/sql"

	"github.com/firstroundai/interview-server/internal/domain"
)

const invitationColumns = `id, candidate_id, email, token, job_role, skillset, status, candidate_name, phone, resume_text, created_at`

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	query := `
		INSERT INTO invitations (candidate_id, email, token, job_role, skillset, status, candidate_name, phone, resume_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		invitation.CandidateID,
		invitation.Email,
		invitation.Token,
		invitation.JobRole,
		invitation.Skillset,
		invitation.Status,
		invitation.CandidateName,
		invitation.Phone,
		invitation.ResumeText,
	).Scan(&invitation.ID, &invitation.CreatedAt)
}

func (r *invitationRepository) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	var inv domain.Invitation
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.ID,
		&inv.CandidateID,
		&inv.Email,
		&inv.Token,
		&inv.JobRole,
		&inv.Skillset,
		&inv.Status,
		&inv.CandidateName,
		&inv.Phone,
		&inv.ResumeText,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) FindAll(ctx context.Context) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]domain.Invitation, 0)
	for rows.Next() {
		var inv domain.Invitation
		err := rows.Scan(
			&inv.ID,
			&inv.CandidateID,
			&inv.Email,
			&inv.Token,
			&inv.JobRole,
			&inv.Skillset,
			&inv.Status,
			&inv.CandidateName,
			&inv.Phone,
			&inv.ResumeText,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, token string, status domain.InvitationStatus) error {
	query := `UPDATE invitations SET status = $1 WHERE token = $2`
	result, err := r.db.ExecContext(ctx, query, status, token)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
