package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticResolver struct {
	provider Provider
}

func (r *staticResolver) ActiveProvider(_ context.Context) Provider {
	return r.provider
}

type stubBackend struct {
	questions *QuestionSet
	eval      *AnswerEvaluation
	summary   *InterviewSummary
	err       error
}

func (b *stubBackend) GenerateQuestions(_ context.Context, _, _, _ string) (*QuestionSet, error) {
	return b.questions, b.err
}

func (b *stubBackend) EvaluateAnswer(_ context.Context, _, _, _ string) (*AnswerEvaluation, error) {
	return b.eval, b.err
}

func (b *stubBackend) GenerateSummary(_ context.Context, _, _ string, _ []AnswerRecord) (*InterviewSummary, error) {
	return b.summary, b.err
}

func newTestGateway(resolver ProviderResolver) *Gateway {
	return NewGateway(resolver, time.Second, zap.NewNop())
}

func TestGatewayUsesActiveBackend(t *testing.T) {
	backend := &stubBackend{
		questions: &QuestionSet{Questions: []string{"a", "b", "c", "d", "e"}},
		eval:      &AnswerEvaluation{Score: 9, Feedback: "great"},
		summary:   &InterviewSummary{Recommendation: RecommendationHire, FinalRating: 9},
	}
	gw := newTestGateway(&staticResolver{provider: ProviderOpenAI})
	gw.Register(ProviderOpenAI, backend)

	set := gw.GenerateQuestions(context.Background(), "Jordan", "backend", "")
	assert.Equal(t, backend.questions, set)

	eval := gw.EvaluateAnswer(context.Background(), "q", "a", "backend")
	assert.Equal(t, backend.eval, eval)

	summary := gw.GenerateSummary(context.Background(), "Jordan", "backend", nil)
	assert.Equal(t, backend.summary, summary)
}

func TestGatewayFallsBackOnError(t *testing.T) {
	backend := &stubBackend{err: errors.New("provider down")}
	gw := newTestGateway(&staticResolver{provider: ProviderOpenAI})
	gw.Register(ProviderOpenAI, backend)

	set := gw.GenerateQuestions(context.Background(), "Jordan", "backend", "")
	require.NotNil(t, set)
	assert.Len(t, set.Questions, QuestionCount)

	eval := gw.EvaluateAnswer(context.Background(), "q", "a", "backend")
	require.NotNil(t, eval)
	assert.GreaterOrEqual(t, eval.Score, 3)

	summary := gw.GenerateSummary(context.Background(), "Jordan", "backend", nil)
	require.NotNil(t, summary)
	assert.NotEmpty(t, summary.Recommendation)
}

func TestGatewayFallsBackWhenBackendUnregistered(t *testing.T) {
	gw := newTestGateway(&staticResolver{provider: ProviderGemini})

	set := gw.GenerateQuestions(context.Background(), "Jordan", "frontend", "")
	require.NotNil(t, set)
	assert.Len(t, set.Questions, QuestionCount)
}

func TestGatewayInvalidProviderDefaults(t *testing.T) {
	backend := &stubBackend{
		eval: &AnswerEvaluation{Score: 6, Feedback: "fine"},
	}
	gw := newTestGateway(&staticResolver{provider: Provider("claude")})
	gw.Register(ProviderOpenAI, backend)

	eval := gw.EvaluateAnswer(context.Background(), "q", "a", "backend")
	assert.Equal(t, backend.eval, eval)
}

func TestGatewaySwitchesProviderPerCall(t *testing.T) {
	openaiBackend := &stubBackend{eval: &AnswerEvaluation{Score: 7, Feedback: "openai"}}
	geminiBackend := &stubBackend{eval: &AnswerEvaluation{Score: 8, Feedback: "gemini"}}

	resolver := &staticResolver{provider: ProviderOpenAI}
	gw := newTestGateway(resolver)
	gw.Register(ProviderOpenAI, openaiBackend)
	gw.Register(ProviderGemini, geminiBackend)

	eval := gw.EvaluateAnswer(context.Background(), "q", "a", "backend")
	assert.Equal(t, "openai", eval.Feedback)

	resolver.provider = ProviderGemini
	eval = gw.EvaluateAnswer(context.Background(), "q", "a", "backend")
	assert.Equal(t, "gemini", eval.Feedback)
}
