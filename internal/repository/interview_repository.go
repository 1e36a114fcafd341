package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
)

const interviewColumns = `id, candidate_id, questions, current_question_index, status, created_at, completed_at`

type interviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) domain.InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	questionsJSON, err := json.Marshal(interview.Questions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO interviews (candidate_id, questions, current_question_index, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		interview.CandidateID,
		questionsJSON,
		interview.CurrentQuestionIndex,
		interview.Status,
	).Scan(&interview.ID, &interview.CreatedAt)
}

func (r *interviewRepository) FindByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	return r.scanInterview(r.db.QueryRowContext(ctx, query, id))
}

func (r *interviewRepository) FindByCandidate(ctx context.Context, candidateID int64) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE candidate_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := make([]domain.Interview, 0)
	for rows.Next() {
		interview, err := r.scanInterviewRow(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *interview)
	}
	return interviews, rows.Err()
}

func (r *interviewRepository) FindAll(ctx context.Context) ([]domain.InterviewWithResult, error) {
	query := `
		SELECT i.id, i.candidate_id, i.questions, i.current_question_index, i.status, i.created_at, i.completed_at,
			c.id, c.name, c.email, c.phone, c.job_role, c.resume_text, c.disqualified, c.created_at,
			e.id, e.interview_id, e.overall_score, e.technical_score, e.behavioral_score,
			e.strengths, e.improvement_areas, e.recommendation, e.created_at
		FROM interviews i
		JOIN candidates c ON c.id = i.candidate_id
		LEFT JOIN evaluations e ON e.interview_id = i.id
		ORDER BY i.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.InterviewWithResult, 0)
	for rows.Next() {
		var row domain.InterviewWithResult
		var questionsJSON []byte
		var candidate domain.Candidate
		var evalID, evalInterviewID sql.NullInt64
		var overall, technical, behavioral sql.NullInt64
		var strengths, improvements, recommendation sql.NullString
		var evalCreatedAt sql.NullTime

		err := rows.Scan(
			&row.ID, &row.CandidateID, &questionsJSON, &row.CurrentQuestionIndex, &row.Status, &row.CreatedAt, &row.CompletedAt,
			&candidate.ID, &candidate.Name, &candidate.Email, &candidate.Phone, &candidate.JobRole,
			&candidate.ResumeText, &candidate.Disqualified, &candidate.CreatedAt,
			&evalID, &evalInterviewID, &overall, &technical, &behavioral,
			&strengths, &improvements, &recommendation, &evalCreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questionsJSON, &row.Questions); err != nil {
			return nil, err
		}

		row.Candidate = &candidate
		if evalID.Valid {
			row.Evaluation = &domain.Evaluation{
				ID:               evalID.Int64,
				InterviewID:      evalInterviewID.Int64,
				OverallScore:     int(overall.Int64),
				TechnicalScore:   int(technical.Int64),
				BehavioralScore:  int(behavioral.Int64),
				Strengths:        strengths.String,
				ImprovementAreas: improvements.String,
				Recommendation:   recommendation.String,
				CreatedAt:        evalCreatedAt.Time,
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *interviewRepository) Advance(ctx context.Context, id int64, nextIndex int) error {
	query := `
		UPDATE interviews
		SET current_question_index = $1, status = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, nextIndex, domain.InterviewStatusInProgress, id)
	return err
}

// Complete runs the status flip and the evaluation insert in one
// transaction so a completed interview without an evaluation can never be
// observed.
func (r *interviewRepository) Complete(ctx context.Context, id int64, completedAt time.Time, evaluation *domain.Evaluation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE interviews
		SET status = $1, current_question_index = current_question_index + 1, completed_at = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, updateQuery, domain.InterviewStatusCompleted, completedAt, id); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO evaluations (interview_id, overall_score, technical_score, behavioral_score, strengths, improvement_areas, recommendation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		evaluation.InterviewID,
		evaluation.OverallScore,
		evaluation.TechnicalScore,
		evaluation.BehavioralScore,
		evaluation.Strengths,
		evaluation.ImprovementAreas,
		evaluation.Recommendation,
	).Scan(&evaluation.ID, &evaluation.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *interviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM interviews WHERE id = $1`
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

func (r *interviewRepository) scanInterview(row *sql.Row) (*domain.Interview, error) {
	var interview domain.Interview
	var questionsJSON []byte
	err := row.Scan(
		&interview.ID,
		&interview.CandidateID,
		&questionsJSON,
		&interview.CurrentQuestionIndex,
		&interview.Status,
		&interview.CreatedAt,
		&interview.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &interview.Questions); err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) scanInterviewRow(rows *sql.Rows) (*domain.Interview, error) {
	var interview domain.Interview
	var questionsJSON []byte
	err := rows.Scan(
		&interview.ID,
		&interview.CandidateID,
		&questionsJSON,
		&interview.CurrentQuestionIndex,
		&interview.Status,
		&interview.CreatedAt,
		&interview.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &interview.Questions); err != nil {
		return nil, err
	}
	return &interview, nil
}
