package ai

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Gateway presents one uniform interface over the registered backends.
// The active backend is resolved per call; any failure falls back to the
// deterministic mock, so none of the three operations can fail.
type Gateway struct {
	backends map[Provider]Backend
	resolver ProviderResolver
	mock     *Mock
	timeout  time.Duration
	log      *zap.Logger
}

func NewGateway(resolver ProviderResolver, timeout time.Duration, log *zap.Logger) *Gateway {
	return &Gateway{
		backends: make(map[Provider]Backend),
		resolver: resolver,
		mock:     NewMock(),
		timeout:  timeout,
		log:      log,
	}
}

func (g *Gateway) Register(provider Provider, backend Backend) {
	g.backends[provider] = backend
}

func (g *Gateway) GenerateQuestions(ctx context.Context, candidateName, jobRole, resumeText string) *QuestionSet {
	provider, backend := g.activeBackend(ctx)
	if backend == nil {
		return g.mock.GenerateQuestions(candidateName, jobRole, resumeText)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := backend.GenerateQuestions(callCtx, candidateName, jobRole, resumeText)
	if err != nil {
		g.log.Warn("question generation fell back to local provider",
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return g.mock.GenerateQuestions(candidateName, jobRole, resumeText)
	}
	return result
}

func (g *Gateway) EvaluateAnswer(ctx context.Context, question, answer, jobRole string) *AnswerEvaluation {
	provider, backend := g.activeBackend(ctx)
	if backend == nil {
		return g.mock.EvaluateAnswer(question, answer, jobRole)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := backend.EvaluateAnswer(callCtx, question, answer, jobRole)
	if err != nil {
		g.log.Warn("answer evaluation fell back to local provider",
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return g.mock.EvaluateAnswer(question, answer, jobRole)
	}
	return result
}

func (g *Gateway) GenerateSummary(ctx context.Context, candidateName, jobRole string, answers []AnswerRecord) *InterviewSummary {
	provider, backend := g.activeBackend(ctx)
	if backend == nil {
		return g.mock.GenerateSummary(candidateName, jobRole, answers)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := backend.GenerateSummary(callCtx, candidateName, jobRole, answers)
	if err != nil {
		g.log.Warn("summary generation fell back to local provider",
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return g.mock.GenerateSummary(candidateName, jobRole, answers)
	}
	return result
}

func (g *Gateway) activeBackend(ctx context.Context) (Provider, Backend) {
	provider := g.resolver.ActiveProvider(ctx)
	if !provider.Valid() {
		provider = ProviderOpenAI
	}
	return provider, g.backends[provider]
}
