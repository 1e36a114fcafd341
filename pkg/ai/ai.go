// Package ai fronts the interchangeable AI backends used for question
// generation, answer evaluation and final summaries. All three operations
// are infallible from the caller's point of view: any backend failure is
// absorbed by a deterministic local fallback.
package ai

import "context"

// A question set is always QuestionCount entries: the first
// TechnicalQuestionCount are technical, the remainder behavioral. The
// aggregation step in the interview service partitions on the same split.
const (
	QuestionCount          = 5
	TechnicalQuestionCount = 4
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

func (p Provider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

const (
	RecommendationHire  = "Hire"
	RecommendationMaybe = "Maybe"
	RecommendationNo    = "No"
)

type QuestionSet struct {
	Questions []string `json:"questions"`
}

type AnswerEvaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type InterviewSummary struct {
	Strengths        string  `json:"strengths"`
	ImprovementAreas string  `json:"improvementAreas"`
	FinalRating      float64 `json:"finalRating"`
	Recommendation   string  `json:"recommendation"`
}

type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Backend is one concrete AI provider. Implementations parse and validate
// the provider response; a structurally invalid response is an error, which
// the gateway treats the same as a transport failure.
type Backend interface {
	GenerateQuestions(ctx context.Context, candidateName, jobRole, resumeText string) (*QuestionSet, error)
	EvaluateAnswer(ctx context.Context, question, answer, jobRole string) (*AnswerEvaluation, error)
	GenerateSummary(ctx context.Context, candidateName, jobRole string, answers []AnswerRecord) (*InterviewSummary, error)
}

// ProviderResolver reports which backend is active. It is consulted on
// every call, so an admin switching providers takes effect immediately.
type ProviderResolver interface {
	ActiveProvider(ctx context.Context) Provider
}

// UsageRecorder receives token counts after successful backend calls.
// Implementations must not block or fail the calling operation.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, provider Provider, operation string, promptTokens, completionTokens int)
}
