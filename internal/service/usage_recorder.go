package service

import (
	"context"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/ai"

	"go.uber.org/zap"
)

// usageRecorder persists token counts reported by the AI backends. Writes
// happen on a detached context in the background so a slow or failing
// insert can never delay an interview operation.
type usageRecorder struct {
	usageRepo domain.TokenUsageRepository
	log       *zap.Logger
}

func NewUsageRecorder(usageRepo domain.TokenUsageRepository, log *zap.Logger) ai.UsageRecorder {
	return &usageRecorder{usageRepo: usageRepo, log: log}
}

func (r *usageRecorder) RecordUsage(_ context.Context, provider ai.Provider, operation string, promptTokens, completionTokens int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		usage := &domain.TokenUsage{
			Provider:         string(provider),
			Operation:        operation,
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
		}
		if err := r.usageRepo.Create(ctx, usage); err != nil {
			r.log.Warn("failed to record token usage",
				zap.String("provider", string(provider)),
				zap.String("operation", operation),
				zap.Error(err),
			)
		}
	}()
}
