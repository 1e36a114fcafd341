package repository

import (
	"context"
	"database/sql"

	"github.com/firstroundai/interview-server/internal/domain"
)

type tokenUsageRepository struct {
	db *sql.DB
}

func NewTokenUsageRepository(db *sql.DB) domain.TokenUsageRepository {
	return &tokenUsageRepository{db: db}
}

func (r *tokenUsageRepository) Create(ctx context.Context, usage *domain.TokenUsage) error {
	query := `
		INSERT INTO token_usage (provider, operation, prompt_tokens, completion_tokens)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		usage.Provider,
		usage.Operation,
		usage.PromptTokens,
		usage.CompletionTokens,
	).Scan(&usage.ID, &usage.CreatedAt)
}

func (r *tokenUsageRepository) Stats(ctx context.Context) ([]domain.TokenUsageStat, error) {
	query := `
		SELECT provider, COUNT(*), COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(completion_tokens), 0)
		FROM token_usage
		GROUP BY provider
		ORDER BY provider
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.TokenUsageStat, 0)
	for rows.Next() {
		var s domain.TokenUsageStat
		err := rows.Scan(&s.Provider, &s.Calls, &s.PromptTokens, &s.CompletionTokens)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
