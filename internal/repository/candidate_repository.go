package repository

import (
	"context"
	"database/sql"

	"github.com/firstroundai/interview-server/internal/domain"
)

const candidateColumns = `id, name, email, phone, job_role, resume_text, disqualified, created_at`

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (name, email, phone, job_role, resume_text, disqualified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		candidate.Name,
		candidate.Email,
		candidate.Phone,
		candidate.JobRole,
		candidate.ResumeText,
		candidate.Disqualified,
	).Scan(&candidate.ID, &candidate.CreatedAt)
}

func (r *candidateRepository) FindByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanCandidate(r.db.QueryRowContext(ctx, query, id))
}

func (r *candidateRepository) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return r.scanCandidate(r.db.QueryRowContext(ctx, query, email))
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0)
	for rows.Next() {
		var c domain.Candidate
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobRole, &c.ResumeText, &c.Disqualified, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $1, phone = $2, job_role = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query,
		candidate.Name,
		candidate.Phone,
		candidate.JobRole,
		candidate.ID,
	)
	return err
}

func (r *candidateRepository) Disqualify(ctx context.Context, id int64) error {
	query := `UPDATE candidates SET disqualified = TRUE WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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

// Delete relies on ON DELETE CASCADE to remove the candidate's interviews,
// answers and evaluations with it.
func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM candidates WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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

func (r *candidateRepository) scanCandidate(row *sql.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobRole, &c.ResumeText, &c.Disqualified, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
