package domain

import (
	"context"
	"time"
)

type InterviewStatus string

const (
	InterviewStatusPending    InterviewStatus = "pending"
	InterviewStatusInProgress InterviewStatus = "in-progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

type Interview struct {
	ID                   int64           `json:"id"`
	CandidateID          int64           `json:"candidateId"`
	Questions            []string        `json:"questions"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	Status               InterviewStatus `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
	CompletedAt          *time.Time      `json:"completedAt,omitempty"`
}

// Answer is immutable once created. Exactly one row exists per
// (interviewId, questionIndex) pair; the question text is snapshotted at
// submission time and never re-derived from the interview.
type Answer struct {
	ID            int64     `json:"id"`
	InterviewID   int64     `json:"interviewId"`
	QuestionIndex int       `json:"questionIndex"`
	QuestionText  string    `json:"questionText"`
	AnswerText    string    `json:"answerText"`
	Score         int       `json:"score"`
	Feedback      string    `json:"feedback"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Evaluation is the single final aggregate per completed interview,
// written in the same transaction that marks the interview completed.
type Evaluation struct {
	ID               int64     `json:"id"`
	InterviewID      int64     `json:"interviewId"`
	OverallScore     int       `json:"overallScore"`
	TechnicalScore   int       `json:"technicalScore"`
	BehavioralScore  int       `json:"behavioralScore"`
	Strengths        string    `json:"strengths"`
	ImprovementAreas string    `json:"improvementAreas"`
	Recommendation   string    `json:"recommendation"`
	CreatedAt        time.Time `json:"createdAt"`
}

type StartInterviewRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	JobRole    string `json:"jobRole" validate:"required"`
	ResumeText string `json:"-"`
}

type StartInterviewResponse struct {
	InterviewID     int64    `json:"interviewId"`
	CandidateID     int64    `json:"candidateId"`
	Questions       []string `json:"questions"`
	CurrentQuestion string   `json:"currentQuestion"`
}

type SubmitAnswerRequest struct {
	InterviewID   int64  `json:"interviewId" validate:"required,min=1"`
	QuestionIndex int    `json:"questionIndex" validate:"min=0"`
	AnswerText    string `json:"answerText" validate:"required"`
}

type InterviewSummary struct {
	Strengths        string  `json:"strengths"`
	ImprovementAreas string  `json:"improvementAreas"`
	FinalRating      float64 `json:"finalRating"`
	Recommendation   string  `json:"recommendation"`
}

type SubmitAnswerResponse struct {
	Score         int               `json:"score"`
	Feedback      string            `json:"feedback"`
	Completed     bool              `json:"completed"`
	NextQuestion  string            `json:"nextQuestion,omitempty"`
	QuestionIndex *int              `json:"questionIndex,omitempty"`
	Summary       *InterviewSummary `json:"summary,omitempty"`
}

type InterviewDetail struct {
	Interview  *Interview  `json:"interview"`
	Candidate  *Candidate  `json:"candidate"`
	Answers    []Answer    `json:"answers"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

type CandidateResult struct {
	Interview  Interview   `json:"interview"`
	Answers    []Answer    `json:"answers"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// InterviewWithResult is the admin listing row: interview joined with its
// candidate and, when completed, its evaluation.
type InterviewWithResult struct {
	Interview
	Candidate  *Candidate  `json:"candidate"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

type InterviewStats struct {
	Total       int64   `json:"total"`
	Recommended int64   `json:"recommended"`
	Maybe       int64   `json:"maybe"`
	Rejected    int64   `json:"rejected"`
	AvgScore    float64 `json:"avgScore"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	FindByID(ctx context.Context, id int64) (*Interview, error)
	FindByCandidate(ctx context.Context, candidateID int64) ([]Interview, error)
	FindAll(ctx context.Context) ([]InterviewWithResult, error)
	Advance(ctx context.Context, id int64, nextIndex int) error
	// Complete flips the interview to completed and inserts its evaluation
	// in one transaction, so a completed interview without an evaluation is
	// never observable.
	Complete(ctx context.Context, id int64, completedAt time.Time, evaluation *Evaluation) error
	Delete(ctx context.Context, id int64) error
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *Answer) error
	FindByInterview(ctx context.Context, interviewID int64) ([]Answer, error)
	ExistsForQuestion(ctx context.Context, interviewID int64, questionIndex int) (bool, error)
}

type EvaluationRepository interface {
	FindByInterview(ctx context.Context, interviewID int64) (*Evaluation, error)
	Stats(ctx context.Context) (*InterviewStats, error)
}

type InterviewService interface {
	Start(ctx context.Context, req *StartInterviewRequest) (*StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	GetByID(ctx context.Context, id int64) (*InterviewDetail, error)
	ResultsByCandidate(ctx context.Context, candidateID int64) ([]CandidateResult, error)
}
