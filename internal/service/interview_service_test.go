package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory implementation of the candidate, interview,
// answer and evaluation repositories, sharing state the way the database
// schema does.
type fakeStore struct {
	candidateSeq int64
	interviewSeq int64
	answerSeq    int64

	candidates  map[int64]domain.Candidate
	interviews  map[int64]domain.Interview
	answers     map[int64]domain.Answer
	evaluations map[int64]domain.Evaluation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		candidates:  make(map[int64]domain.Candidate),
		interviews:  make(map[int64]domain.Interview),
		answers:     make(map[int64]domain.Answer),
		evaluations: make(map[int64]domain.Evaluation),
	}
}

func (s *fakeStore) Create(ctx context.Context, c *domain.Candidate) error {
	s.candidateSeq++
	c.ID = s.candidateSeq
	c.CreatedAt = time.Now()
	s.candidates[c.ID] = *c
	return nil
}

func (s *fakeStore) FindByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	c, ok := s.candidates[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (s *fakeStore) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	for _, c := range s.candidates {
		if c.Email == email {
			candidate := c
			return &candidate, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) FindAll(ctx context.Context) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) Update(ctx context.Context, c *domain.Candidate) error {
	if _, ok := s.candidates[c.ID]; !ok {
		return sql.ErrNoRows
	}
	s.candidates[c.ID] = *c
	return nil
}

func (s *fakeStore) Disqualify(ctx context.Context, id int64) error {
	c, ok := s.candidates[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Disqualified = true
	s.candidates[id] = c
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.candidates[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.candidates, id)
	return nil
}

type fakeInterviewRepo struct {
	store *fakeStore
}

func (r *fakeInterviewRepo) Create(ctx context.Context, i *domain.Interview) error {
	r.store.interviewSeq++
	i.ID = r.store.interviewSeq
	i.CreatedAt = time.Now()
	r.store.interviews[i.ID] = *i
	return nil
}

func (r *fakeInterviewRepo) FindByID(ctx context.Context, id int64) (*domain.Interview, error) {
	i, ok := r.store.interviews[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &i, nil
}

func (r *fakeInterviewRepo) FindByCandidate(ctx context.Context, candidateID int64) ([]domain.Interview, error) {
	out := make([]domain.Interview, 0)
	for _, i := range r.store.interviews {
		if i.CandidateID == candidateID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) FindAll(ctx context.Context) ([]domain.InterviewWithResult, error) {
	out := make([]domain.InterviewWithResult, 0)
	for _, i := range r.store.interviews {
		out = append(out, domain.InterviewWithResult{Interview: i})
	}
	return out, nil
}

func (r *fakeInterviewRepo) Advance(ctx context.Context, id int64, nextIndex int) error {
	i, ok := r.store.interviews[id]
	if !ok {
		return sql.ErrNoRows
	}
	i.CurrentQuestionIndex = nextIndex
	i.Status = domain.InterviewStatusInProgress
	r.store.interviews[id] = i
	return nil
}

func (r *fakeInterviewRepo) Complete(ctx context.Context, id int64, completedAt time.Time, evaluation *domain.Evaluation) error {
	i, ok := r.store.interviews[id]
	if !ok {
		return sql.ErrNoRows
	}
	i.Status = domain.InterviewStatusCompleted
	i.CurrentQuestionIndex++
	i.CompletedAt = &completedAt
	r.store.interviews[id] = i

	evaluation.ID = id
	evaluation.CreatedAt = completedAt
	r.store.evaluations[evaluation.InterviewID] = *evaluation
	return nil
}

func (r *fakeInterviewRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.store.interviews[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.store.interviews, id)
	return nil
}

type fakeAnswerRepo struct {
	store *fakeStore
}

func (r *fakeAnswerRepo) Create(ctx context.Context, a *domain.Answer) error {
	r.store.answerSeq++
	a.ID = r.store.answerSeq
	a.CreatedAt = time.Now()
	r.store.answers[a.ID] = *a
	return nil
}

func (r *fakeAnswerRepo) FindByInterview(ctx context.Context, interviewID int64) ([]domain.Answer, error) {
	out := make([]domain.Answer, 0)
	for id := int64(1); id <= r.store.answerSeq; id++ {
		if a, ok := r.store.answers[id]; ok && a.InterviewID == interviewID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) ExistsForQuestion(ctx context.Context, interviewID int64, questionIndex int) (bool, error) {
	for _, a := range r.store.answers {
		if a.InterviewID == interviewID && a.QuestionIndex == questionIndex {
			return true, nil
		}
	}
	return false, nil
}

type fakeEvaluationRepo struct {
	store *fakeStore
}

func (r *fakeEvaluationRepo) FindByInterview(ctx context.Context, interviewID int64) (*domain.Evaluation, error) {
	e, ok := r.store.evaluations[interviewID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r *fakeEvaluationRepo) Stats(ctx context.Context) (*domain.InterviewStats, error) {
	return &domain.InterviewStats{Total: int64(len(r.store.evaluations))}, nil
}

type localResolver struct{}

func (localResolver) ActiveProvider(_ context.Context) ai.Provider {
	return ai.ProviderOpenAI
}

func newTestService(t *testing.T) (domain.InterviewService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	// No backends registered, so the gateway always uses the deterministic
	// local provider.
	gateway := ai.NewGateway(localResolver{}, time.Second, zap.NewNop())
	svc := NewInterviewService(
		store,
		&fakeInterviewRepo{store: store},
		&fakeAnswerRepo{store: store},
		&fakeEvaluationRepo{store: store},
		gateway,
		zap.NewNop(),
	)
	return svc, store
}

func startRequest() *domain.StartInterviewRequest {
	return &domain.StartInterviewRequest{
		Name:       "Jordan Smith",
		Email:      "jordan@example.com",
		Phone:      "+15550100",
		JobRole:    "backend",
		ResumeText: "Experienced backend engineer.",
	}
}

func TestStartCreatesInterview(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Questions, ai.QuestionCount)
	assert.Equal(t, resp.Questions[0], resp.CurrentQuestion)
	assert.NotZero(t, resp.InterviewID)
	assert.NotZero(t, resp.CandidateID)

	interview := store.interviews[resp.InterviewID]
	assert.Equal(t, domain.InterviewStatusInProgress, interview.Status)
	assert.Equal(t, 0, interview.CurrentQuestionIndex)
}

func TestStartRequiresResumeForNewCandidate(t *testing.T) {
	svc, store := newTestService(t)

	req := startRequest()
	req.ResumeText = ""
	_, err := svc.Start(context.Background(), req)
	assert.ErrorIs(t, err, ErrResumeRequired)
	assert.Empty(t, store.candidates)
}

func TestStartExistingCandidateKeepsStoredResume(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	req := startRequest()
	req.ResumeText = ""
	_, err = svc.Start(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Experienced backend engineer.", store.candidates[1].ResumeText)
}

func TestStartRejectsDisqualifiedCandidate(t *testing.T) {
	svc, store := newTestService(t)

	store.candidateSeq++
	store.candidates[1] = domain.Candidate{
		ID: 1, Email: "jordan@example.com", Disqualified: true,
	}

	_, err := svc.Start(context.Background(), startRequest())
	assert.ErrorIs(t, err, ErrCandidateDisqualified)
}

func TestStartRejectsRepeatCandidate(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	interview := store.interviews[resp.InterviewID]
	interview.Status = domain.InterviewStatusCompleted
	store.interviews[resp.InterviewID] = interview

	_, err = svc.Start(context.Background(), startRequest())
	assert.ErrorIs(t, err, ErrCandidateAlreadyAssessed)
}

func TestStartUpdatesExistingCandidate(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	req := startRequest()
	req.Name = "Jordan S."
	req.JobRole = "frontend"
	_, err = svc.Start(context.Background(), req)
	require.NoError(t, err)

	candidate := store.candidates[1]
	assert.Equal(t, "Jordan S.", candidate.Name)
	assert.Equal(t, "frontend", candidate.JobRole)
	assert.Len(t, store.candidates, 1)
}

func TestSubmitAnswerUnknownInterview(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: 99, QuestionIndex: 0, AnswerText: "hello",
	})
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestSubmitAnswerIndexOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: resp.InterviewID, QuestionIndex: ai.QuestionCount, AnswerText: "hello",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestionIndex)
}

func TestSubmitAnswerIndexNotCurrent(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: resp.InterviewID, QuestionIndex: 2, AnswerText: "hello",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestionIndex)
}

func TestSubmitAnswerDuplicateRejected(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	store.answerSeq++
	store.answers[store.answerSeq] = domain.Answer{
		ID: store.answerSeq, InterviewID: resp.InterviewID, QuestionIndex: 0,
	}

	_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: resp.InterviewID, QuestionIndex: 0, AnswerText: "hello",
	})
	assert.ErrorIs(t, err, ErrQuestionAlreadyAnswered)
}

func TestSubmitAnswerAdvancesThroughInterview(t *testing.T) {
	svc, store := newTestService(t)

	start, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	resp, err := svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: start.InterviewID, QuestionIndex: 0, AnswerText: "An answer about databases and SQL.",
	})
	require.NoError(t, err)

	assert.False(t, resp.Completed)
	require.NotNil(t, resp.QuestionIndex)
	assert.Equal(t, 1, *resp.QuestionIndex)
	assert.Equal(t, start.Questions[1], resp.NextQuestion)
	assert.Nil(t, resp.Summary)

	interview := store.interviews[start.InterviewID]
	assert.Equal(t, 1, interview.CurrentQuestionIndex)
	assert.Equal(t, domain.InterviewStatusInProgress, interview.Status)
}

func TestSubmitAnswerSnapshotsQuestionText(t *testing.T) {
	svc, store := newTestService(t)

	start, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: start.InterviewID, QuestionIndex: 0, AnswerText: "hello",
	})
	require.NoError(t, err)

	answer := store.answers[1]
	assert.Equal(t, start.Questions[0], answer.QuestionText)
	assert.Equal(t, "hello", answer.AnswerText)
	assert.GreaterOrEqual(t, answer.Score, 3)
	assert.LessOrEqual(t, answer.Score, 10)
}

func TestFullInterviewCompletes(t *testing.T) {
	svc, store := newTestService(t)

	start, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	var last *domain.SubmitAnswerResponse
	for i := 0; i < ai.QuestionCount; i++ {
		last, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
			InterviewID:   start.InterviewID,
			QuestionIndex: i,
			AnswerText:    "In my experience I implemented an API with a SQL database for a project.",
		})
		require.NoError(t, err)
	}

	assert.True(t, last.Completed)
	assert.Empty(t, last.NextQuestion)
	require.NotNil(t, last.Summary)
	assert.NotEmpty(t, last.Summary.Recommendation)

	interview := store.interviews[start.InterviewID]
	assert.Equal(t, domain.InterviewStatusCompleted, interview.Status)
	require.NotNil(t, interview.CompletedAt)

	require.Len(t, store.evaluations, 1)
	evaluation := store.evaluations[start.InterviewID]
	assert.Equal(t, evaluation.Recommendation, last.Summary.Recommendation)

	answers, err := (&fakeAnswerRepo{store: store}).FindByInterview(context.Background(), start.InterviewID)
	require.NoError(t, err)
	technical, behavioral, overall := aggregateScores(answers)
	assert.Equal(t, technical, evaluation.TechnicalScore)
	assert.Equal(t, behavioral, evaluation.BehavioralScore)
	assert.Equal(t, overall, evaluation.OverallScore)

	_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
		InterviewID: start.InterviewID, QuestionIndex: 0, AnswerText: "again",
	})
	assert.ErrorIs(t, err, ErrInterviewCompleted)
}

func TestGetByIDReturnsDetail(t *testing.T) {
	svc, _ := newTestService(t)

	start, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	detail, err := svc.GetByID(context.Background(), start.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, start.InterviewID, detail.Interview.ID)
	assert.Equal(t, "jordan@example.com", detail.Candidate.Email)
	assert.Empty(t, detail.Answers)
	assert.Nil(t, detail.Evaluation)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 123)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestResultsByCandidate(t *testing.T) {
	svc, _ := newTestService(t)

	start, err := svc.Start(context.Background(), startRequest())
	require.NoError(t, err)

	for i := 0; i < ai.QuestionCount; i++ {
		_, err = svc.SubmitAnswer(context.Background(), &domain.SubmitAnswerRequest{
			InterviewID: start.InterviewID, QuestionIndex: i, AnswerText: "answer",
		})
		require.NoError(t, err)
	}

	results, err := svc.ResultsByCandidate(context.Background(), start.CandidateID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Answers, ai.QuestionCount)
	require.NotNil(t, results[0].Evaluation)
}

func TestResultsByCandidateNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResultsByCandidate(context.Background(), 55)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestAggregateScores(t *testing.T) {
	answers := []domain.Answer{
		{QuestionIndex: 0, Score: 8},
		{QuestionIndex: 1, Score: 7},
		{QuestionIndex: 2, Score: 9},
		{QuestionIndex: 3, Score: 6},
		{QuestionIndex: 4, Score: 10},
	}

	technical, behavioral, overall := aggregateScores(answers)
	assert.Equal(t, 75, technical)
	assert.Equal(t, 100, behavioral)
	assert.Equal(t, 80, overall)
}

func TestAggregateScoresEmptyPartitions(t *testing.T) {
	technical, behavioral, overall := aggregateScores(nil)
	assert.Zero(t, technical)
	assert.Zero(t, behavioral)
	assert.Zero(t, overall)

	technical, behavioral, _ = aggregateScores([]domain.Answer{{QuestionIndex: 4, Score: 8}})
	assert.Zero(t, technical)
	assert.Equal(t, 80, behavioral)
}
