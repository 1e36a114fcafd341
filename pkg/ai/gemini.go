package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiBackend struct {
	client   *genai.Client
	model    string
	recorder UsageRecorder
}

func NewGeminiBackend(apiKey, model string, recorder UsageRecorder) (*GeminiBackend, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiBackend{
		client:   client,
		model:    model,
		recorder: recorder,
	}, nil
}

func (b *GeminiBackend) GenerateQuestions(ctx context.Context, candidateName, jobRole, resumeText string) (*QuestionSet, error) {
	raw, err := b.generateJSON(ctx, "generate_questions", questionsSystemPrompt, buildQuestionsPrompt(candidateName, jobRole, resumeText))
	if err != nil {
		return nil, err
	}
	return parseQuestionSet(raw)
}

func (b *GeminiBackend) EvaluateAnswer(ctx context.Context, question, answer, jobRole string) (*AnswerEvaluation, error) {
	raw, err := b.generateJSON(ctx, "evaluate_answer", evaluateSystemPrompt, buildEvaluatePrompt(question, answer, jobRole))
	if err != nil {
		return nil, err
	}
	return parseEvaluation(raw)
}

func (b *GeminiBackend) GenerateSummary(ctx context.Context, candidateName, jobRole string, answers []AnswerRecord) (*InterviewSummary, error) {
	raw, err := b.generateJSON(ctx, "generate_summary", summarySystemPrompt, buildSummaryPrompt(candidateName, jobRole, answers))
	if err != nil {
		return nil, err
	}
	return parseSummary(raw)
}

func (b *GeminiBackend) generateJSON(ctx context.Context, operation, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		},
	}

	result, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if b.recorder != nil && result.UsageMetadata != nil {
		b.recorder.RecordUsage(ctx, ProviderGemini, operation,
			int(result.UsageMetadata.PromptTokenCount),
			int(result.UsageMetadata.CandidatesTokenCount),
		)
	}

	return result.Text(), nil
}
