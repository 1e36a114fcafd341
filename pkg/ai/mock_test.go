package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerateQuestionsKnownRole(t *testing.T) {
	mock := NewMock()

	set := mock.GenerateQuestions("Jordan", "Backend", "resume text")
	require.Len(t, set.Questions, QuestionCount)
	assert.Equal(t, roleQuestions["backend"], set.Questions[:TechnicalQuestionCount])
	assert.Equal(t, behavioralQuestion, set.Questions[QuestionCount-1])
}

func TestMockGenerateQuestionsUnknownRoleFallsBack(t *testing.T) {
	mock := NewMock()

	set := mock.GenerateQuestions("Jordan", "Astronaut", "")
	require.Len(t, set.Questions, QuestionCount)
	assert.Equal(t, roleQuestions["fullstack"], set.Questions[:TechnicalQuestionCount])
}

func TestMockEvaluateAnswerDeterministic(t *testing.T) {
	mock := NewMock()

	first := mock.EvaluateAnswer("q", "some answer", "backend")
	second := mock.EvaluateAnswer("q", "some answer", "backend")
	assert.Equal(t, first, second)
}

func TestMockEvaluateAnswerShortAnswer(t *testing.T) {
	mock := NewMock()

	eval := mock.EvaluateAnswer("q", "no idea", "backend")
	assert.Equal(t, 5, eval.Score)
	assert.NotEmpty(t, eval.Feedback)
}

func TestMockEvaluateAnswerRewardsDepth(t *testing.T) {
	mock := NewMock()

	answer := strings.Repeat("In my experience with the project I implemented an API using SQL and a database. ", 8)
	eval := mock.EvaluateAnswer("q", answer, "backend")
	assert.Equal(t, 10, eval.Score)
}

func TestMockEvaluateAnswerBounds(t *testing.T) {
	mock := NewMock()

	eval := mock.EvaluateAnswer("q", "", "backend")
	assert.GreaterOrEqual(t, eval.Score, 3)
	assert.LessOrEqual(t, eval.Score, 10)
}

func TestMockGenerateSummaryThresholds(t *testing.T) {
	mock := NewMock()

	tests := []struct {
		name           string
		scores         []int
		recommendation string
		rating         float64
	}{
		{"strong candidate", []int{9, 8, 9, 8, 8}, RecommendationHire, 8.4},
		{"average candidate", []int{6, 7, 6, 7, 6}, RecommendationMaybe, 6.4},
		{"weak candidate", []int{4, 5, 3, 4, 5}, RecommendationNo, 4.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := make([]AnswerRecord, len(tt.scores))
			for i, score := range tt.scores {
				answers[i] = AnswerRecord{Question: "q", Answer: "a", Score: score}
			}

			summary := mock.GenerateSummary("Jordan", "backend", answers)
			assert.Equal(t, tt.recommendation, summary.Recommendation)
			assert.InDelta(t, tt.rating, summary.FinalRating, 0.001)
			assert.NotEmpty(t, summary.Strengths)
			assert.NotEmpty(t, summary.ImprovementAreas)
		})
	}
}

func TestMockGenerateSummaryNoAnswers(t *testing.T) {
	mock := NewMock()

	summary := mock.GenerateSummary("Jordan", "backend", nil)
	assert.Equal(t, RecommendationNo, summary.Recommendation)
	assert.Zero(t, summary.FinalRating)
}
