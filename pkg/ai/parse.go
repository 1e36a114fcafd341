package ai

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Backend responses are loosely typed JSON. Each parser probes the raw
// payload with gjson and either yields a validated struct or an error; the
// error is the gateway's fallback trigger, so malformed provider output
// never propagates past this file.

var errNotJSON = errors.New("response is not valid JSON")

func parseQuestionSet(raw string) (*QuestionSet, error) {
	if !gjson.Valid(raw) {
		return nil, errNotJSON
	}
	items := gjson.Get(raw, "questions")
	if !items.IsArray() {
		return nil, errors.New("missing questions array")
	}

	questions := make([]string, 0, QuestionCount)
	for _, item := range items.Array() {
		q := strings.TrimSpace(item.String())
		if q == "" {
			return nil, errors.New("empty question in response")
		}
		questions = append(questions, q)
	}
	if len(questions) != QuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", QuestionCount, len(questions))
	}

	return &QuestionSet{Questions: questions}, nil
}

func parseEvaluation(raw string) (*AnswerEvaluation, error) {
	if !gjson.Valid(raw) {
		return nil, errNotJSON
	}
	score := gjson.Get(raw, "score")
	if score.Type != gjson.Number {
		return nil, errors.New("missing numeric score")
	}
	if score.Float() < 0 || score.Float() > 10 {
		return nil, fmt.Errorf("score %v out of range", score.Float())
	}

	feedback := strings.TrimSpace(gjson.Get(raw, "feedback").String())
	if feedback == "" {
		feedback = "No feedback provided"
	}

	return &AnswerEvaluation{
		Score:    int(math.Round(score.Float())),
		Feedback: feedback,
	}, nil
}

func parseSummary(raw string) (*InterviewSummary, error) {
	if !gjson.Valid(raw) {
		return nil, errNotJSON
	}
	recommendation := gjson.Get(raw, "recommendation").String()
	switch recommendation {
	case RecommendationHire, RecommendationMaybe, RecommendationNo:
	default:
		return nil, fmt.Errorf("invalid recommendation %q", recommendation)
	}

	strengths := strings.TrimSpace(gjson.Get(raw, "strengths").String())
	if strengths == "" {
		strengths = "No strengths identified"
	}
	improvements := strings.TrimSpace(gjson.Get(raw, "improvementAreas").String())
	if improvements == "" {
		improvements = "No improvement areas identified"
	}

	rating := gjson.Get(raw, "finalRating").Float()
	rating = math.Max(0, math.Min(10, rating))

	return &InterviewSummary{
		Strengths:        strengths,
		ImprovementAreas: improvements,
		FinalRating:      rating,
		Recommendation:   recommendation,
	}, nil
}
