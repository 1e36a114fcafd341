package repository

import (
	"context"
	"database/sql"

	"github.com/firstroundai/interview-server/internal/domain"
)

const evaluationColumns = `id, interview_id, overall_score, technical_score, behavioral_score, strengths, improvement_areas, recommendation, created_at`

type evaluationRepository struct {
	db *sql.DB
}

func NewEvaluationRepository(db *sql.DB) domain.EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) FindByInterview(ctx context.Context, interviewID int64) (*domain.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE interview_id = $1`
	var e domain.Evaluation
	err := r.db.QueryRowContext(ctx, query, interviewID).Scan(
		&e.ID,
		&e.InterviewID,
		&e.OverallScore,
		&e.TechnicalScore,
		&e.BehavioralScore,
		&e.Strengths,
		&e.ImprovementAreas,
		&e.Recommendation,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evaluationRepository) Stats(ctx context.Context) (*domain.InterviewStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE recommendation = 'Hire'),
			COUNT(*) FILTER (WHERE recommendation = 'Maybe'),
			COUNT(*) FILTER (WHERE recommendation = 'No'),
			COALESCE(ROUND(AVG(overall_score)::numeric, 1), 0)
		FROM evaluations
	`
	var stats domain.InterviewStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Recommended,
		&stats.Maybe,
		&stats.Rejected,
		&stats.AvgScore,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
