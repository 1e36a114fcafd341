package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionSet(t *testing.T) {
	raw := `{"questions": ["q1", "q2", "q3", "q4", "q5"]}`
	set, err := parseQuestionSet(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, set.Questions)
}

func TestParseQuestionSetWrongCount(t *testing.T) {
	_, err := parseQuestionSet(`{"questions": ["q1", "q2"]}`)
	assert.Error(t, err)
}

func TestParseQuestionSetEmptyQuestion(t *testing.T) {
	_, err := parseQuestionSet(`{"questions": ["q1", "", "q3", "q4", "q5"]}`)
	assert.Error(t, err)
}

func TestParseQuestionSetNotJSON(t *testing.T) {
	_, err := parseQuestionSet(`here are your questions:`)
	assert.Error(t, err)
}

func TestParseEvaluation(t *testing.T) {
	eval, err := parseEvaluation(`{"score": 7, "feedback": "solid answer"}`)
	require.NoError(t, err)
	assert.Equal(t, 7, eval.Score)
	assert.Equal(t, "solid answer", eval.Feedback)
}

func TestParseEvaluationRoundsScore(t *testing.T) {
	eval, err := parseEvaluation(`{"score": 7.6, "feedback": "ok"}`)
	require.NoError(t, err)
	assert.Equal(t, 8, eval.Score)
}

func TestParseEvaluationScoreOutOfRange(t *testing.T) {
	_, err := parseEvaluation(`{"score": 11, "feedback": "ok"}`)
	assert.Error(t, err)

	_, err = parseEvaluation(`{"score": -1, "feedback": "ok"}`)
	assert.Error(t, err)
}

func TestParseEvaluationMissingScore(t *testing.T) {
	_, err := parseEvaluation(`{"score": "high", "feedback": "ok"}`)
	assert.Error(t, err)
}

func TestParseEvaluationDefaultFeedback(t *testing.T) {
	eval, err := parseEvaluation(`{"score": 5}`)
	require.NoError(t, err)
	assert.Equal(t, "No feedback provided", eval.Feedback)
}

func TestParseSummary(t *testing.T) {
	raw := `{"strengths": "clear communicator", "improvementAreas": "needs depth", "finalRating": 7.5, "recommendation": "Maybe"}`
	summary, err := parseSummary(raw)
	require.NoError(t, err)
	assert.Equal(t, "clear communicator", summary.Strengths)
	assert.Equal(t, "needs depth", summary.ImprovementAreas)
	assert.Equal(t, 7.5, summary.FinalRating)
	assert.Equal(t, RecommendationMaybe, summary.Recommendation)
}

func TestParseSummaryInvalidRecommendation(t *testing.T) {
	_, err := parseSummary(`{"recommendation": "Strong Hire", "finalRating": 9}`)
	assert.Error(t, err)
}

func TestParseSummaryClampsRating(t *testing.T) {
	summary, err := parseSummary(`{"recommendation": "Hire", "finalRating": 42}`)
	require.NoError(t, err)
	assert.Equal(t, 10.0, summary.FinalRating)
}

func TestParseSummaryDefaults(t *testing.T) {
	summary, err := parseSummary(`{"recommendation": "No"}`)
	require.NoError(t, err)
	assert.Equal(t, "No strengths identified", summary.Strengths)
	assert.Equal(t, "No improvement areas identified", summary.ImprovementAreas)
}
