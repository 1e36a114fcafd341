package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIBackend struct {
	client   *openai.Client
	model    string
	recorder UsageRecorder
}

func NewOpenAIBackend(apiKey, model string, recorder UsageRecorder) *OpenAIBackend {
	return &OpenAIBackend{
		client:   openai.NewClient(apiKey),
		model:    model,
		recorder: recorder,
	}
}

func (b *OpenAIBackend) GenerateQuestions(ctx context.Context, candidateName, jobRole, resumeText string) (*QuestionSet, error) {
	raw, err := b.completeJSON(ctx, "generate_questions", questionsSystemPrompt, buildQuestionsPrompt(candidateName, jobRole, resumeText), 0.7)
	if err != nil {
		return nil, err
	}
	return parseQuestionSet(raw)
}

func (b *OpenAIBackend) EvaluateAnswer(ctx context.Context, question, answer, jobRole string) (*AnswerEvaluation, error) {
	raw, err := b.completeJSON(ctx, "evaluate_answer", evaluateSystemPrompt, buildEvaluatePrompt(question, answer, jobRole), 0.3)
	if err != nil {
		return nil, err
	}
	return parseEvaluation(raw)
}

func (b *OpenAIBackend) GenerateSummary(ctx context.Context, candidateName, jobRole string, answers []AnswerRecord) (*InterviewSummary, error) {
	raw, err := b.completeJSON(ctx, "generate_summary", summarySystemPrompt, buildSummaryPrompt(candidateName, jobRole, answers), 0.3)
	if err != nil {
		return nil, err
	}
	return parseSummary(raw)
}

func (b *OpenAIBackend) completeJSON(ctx context.Context, operation, systemPrompt, userPrompt string, temperature float32) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	if b.recorder != nil {
		b.recorder.RecordUsage(ctx, ProviderOpenAI, operation, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}

	return resp.Choices[0].Message.Content, nil
}
