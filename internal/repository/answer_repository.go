package repository

import (
	"context"
	"database/sql"

	"github.com/firstroundai/interview-server/internal/domain"
)

const answerColumns = `id, interview_id, question_index, question_text, answer_text, score, feedback, created_at`

type answerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) domain.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	query := `
		INSERT INTO answers (interview_id, question_index, question_text, answer_text, score, feedback)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		answer.InterviewID,
		answer.QuestionIndex,
		answer.QuestionText,
		answer.AnswerText,
		answer.Score,
		answer.Feedback,
	).Scan(&answer.ID, &answer.CreatedAt)
}

func (r *answerRepository) FindByInterview(ctx context.Context, interviewID int64) ([]domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE interview_id = $1 ORDER BY question_index ASC`
	rows, err := r.db.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		var a domain.Answer
		err := rows.Scan(&a.ID, &a.InterviewID, &a.QuestionIndex, &a.QuestionText, &a.AnswerText, &a.Score, &a.Feedback, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *answerRepository) ExistsForQuestion(ctx context.Context, interviewID int64, questionIndex int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM answers WHERE interview_id = $1 AND question_index = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, interviewID, questionIndex).Scan(&exists)
	return exists, err
}
