package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/ai"

	"go.uber.org/zap"
)

var (
	ErrInterviewNotFound        = errors.New("interview not found")
	ErrInterviewCompleted       = errors.New("interview already completed")
	ErrCandidateNotFound        = errors.New("candidate not found")
	ErrCandidateDisqualified    = errors.New("candidate has been disqualified")
	ErrCandidateAlreadyAssessed = errors.New("candidate has already completed an interview")
	ErrInvalidQuestionIndex     = errors.New("question index does not match the current question")
	ErrQuestionAlreadyAnswered  = errors.New("question has already been answered")
	ErrResumeRequired           = errors.New("resume file is required")
)

type interviewService struct {
	candidateRepo  domain.CandidateRepository
	interviewRepo  domain.InterviewRepository
	answerRepo     domain.AnswerRepository
	evaluationRepo domain.EvaluationRepository
	gateway        *ai.Gateway
	locks          *interviewLock
	log            *zap.Logger
}

func NewInterviewService(
	candidateRepo domain.CandidateRepository,
	interviewRepo domain.InterviewRepository,
	answerRepo domain.AnswerRepository,
	evaluationRepo domain.EvaluationRepository,
	gateway *ai.Gateway,
	log *zap.Logger,
) domain.InterviewService {
	return &interviewService{
		candidateRepo:  candidateRepo,
		interviewRepo:  interviewRepo,
		answerRepo:     answerRepo,
		evaluationRepo: evaluationRepo,
		gateway:        gateway,
		locks:          newInterviewLock(),
		log:            log,
	}
}

func (s *interviewService) Start(ctx context.Context, req *domain.StartInterviewRequest) (*domain.StartInterviewResponse, error) {
	candidate, err := s.candidateRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if candidate != nil {
		if candidate.Disqualified {
			return nil, ErrCandidateDisqualified
		}
		completed, err := s.hasCompletedInterview(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}
		if completed {
			return nil, ErrCandidateAlreadyAssessed
		}

		candidate.Name = req.Name
		candidate.Phone = req.Phone
		candidate.JobRole = req.JobRole
		if err := s.candidateRepo.Update(ctx, candidate); err != nil {
			return nil, err
		}
	} else {
		// A returning candidate keeps their stored resume text; a first-time
		// candidate must upload one.
		if req.ResumeText == "" {
			return nil, ErrResumeRequired
		}
		candidate = &domain.Candidate{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			JobRole:    req.JobRole,
			ResumeText: req.ResumeText,
		}
		if err := s.candidateRepo.Create(ctx, candidate); err != nil {
			return nil, err
		}
	}

	questionSet := s.gateway.GenerateQuestions(ctx, candidate.Name, candidate.JobRole, candidate.ResumeText)

	interview := &domain.Interview{
		CandidateID:          candidate.ID,
		Questions:            questionSet.Questions,
		CurrentQuestionIndex: 0,
		Status:               domain.InterviewStatusInProgress,
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, err
	}

	s.log.Info("interview started",
		zap.Int64("interviewId", interview.ID),
		zap.Int64("candidateId", candidate.ID),
		zap.String("jobRole", candidate.JobRole),
	)

	return &domain.StartInterviewResponse{
		InterviewID:     interview.ID,
		CandidateID:     candidate.ID,
		Questions:       interview.Questions,
		CurrentQuestion: interview.Questions[0],
	}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, req *domain.SubmitAnswerRequest) (*domain.SubmitAnswerResponse, error) {
	unlock := s.locks.Lock(req.InterviewID)
	defer unlock()

	interview, err := s.interviewRepo.FindByID(ctx, req.InterviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	if interview.Status == domain.InterviewStatusCompleted {
		return nil, ErrInterviewCompleted
	}

	if req.QuestionIndex < 0 || req.QuestionIndex >= len(interview.Questions) {
		return nil, ErrInvalidQuestionIndex
	}
	if req.QuestionIndex != interview.CurrentQuestionIndex {
		return nil, ErrInvalidQuestionIndex
	}

	answered, err := s.answerRepo.ExistsForQuestion(ctx, interview.ID, req.QuestionIndex)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, ErrQuestionAlreadyAnswered
	}

	candidate, err := s.candidateRepo.FindByID(ctx, interview.CandidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	// The question text is snapshotted on the answer row so later changes to
	// the interview cannot alter what the candidate was actually asked.
	questionText := interview.Questions[req.QuestionIndex]
	evaluation := s.gateway.EvaluateAnswer(ctx, questionText, req.AnswerText, candidate.JobRole)

	answer := &domain.Answer{
		InterviewID:   interview.ID,
		QuestionIndex: req.QuestionIndex,
		QuestionText:  questionText,
		AnswerText:    req.AnswerText,
		Score:         evaluation.Score,
		Feedback:      evaluation.Feedback,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	isLast := req.QuestionIndex == len(interview.Questions)-1
	if !isLast {
		nextIndex := req.QuestionIndex + 1
		if err := s.interviewRepo.Advance(ctx, interview.ID, nextIndex); err != nil {
			return nil, err
		}
		return &domain.SubmitAnswerResponse{
			Score:         evaluation.Score,
			Feedback:      evaluation.Feedback,
			Completed:     false,
			NextQuestion:  interview.Questions[nextIndex],
			QuestionIndex: &nextIndex,
		}, nil
	}

	summary, err := s.completeInterview(ctx, interview, candidate)
	if err != nil {
		return nil, err
	}

	return &domain.SubmitAnswerResponse{
		Score:     evaluation.Score,
		Feedback:  evaluation.Feedback,
		Completed: true,
		Summary:   summary,
	}, nil
}

func (s *interviewService) GetByID(ctx context.Context, id int64) (*domain.InterviewDetail, error) {
	interview, err := s.interviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	candidate, err := s.candidateRepo.FindByID(ctx, interview.CandidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	answers, err := s.answerRepo.FindByInterview(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.InterviewDetail{
		Interview: interview,
		Candidate: candidate,
		Answers:   answers,
	}

	if interview.Status == domain.InterviewStatusCompleted {
		evaluation, err := s.evaluationRepo.FindByInterview(ctx, id)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		detail.Evaluation = evaluation
	}

	return detail, nil
}

func (s *interviewService) ResultsByCandidate(ctx context.Context, candidateID int64) ([]domain.CandidateResult, error) {
	if _, err := s.candidateRepo.FindByID(ctx, candidateID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	interviews, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.CandidateResult, 0, len(interviews))
	for _, interview := range interviews {
		answers, err := s.answerRepo.FindByInterview(ctx, interview.ID)
		if err != nil {
			return nil, err
		}

		result := domain.CandidateResult{
			Interview: interview,
			Answers:   answers,
		}
		if interview.Status == domain.InterviewStatusCompleted {
			evaluation, err := s.evaluationRepo.FindByInterview(ctx, interview.ID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			result.Evaluation = evaluation
		}
		results = append(results, result)
	}
	return results, nil
}

// completeInterview aggregates the per-answer scores, asks the gateway for a
// final summary and writes the completed status together with the evaluation
// row in one transaction.
func (s *interviewService) completeInterview(ctx context.Context, interview *domain.Interview, candidate *domain.Candidate) (*domain.InterviewSummary, error) {
	answers, err := s.answerRepo.FindByInterview(ctx, interview.ID)
	if err != nil {
		return nil, err
	}

	records := make([]ai.AnswerRecord, len(answers))
	for i, a := range answers {
		records[i] = ai.AnswerRecord{
			Question: a.QuestionText,
			Answer:   a.AnswerText,
			Score:    a.Score,
			Feedback: a.Feedback,
		}
	}

	summary := s.gateway.GenerateSummary(ctx, candidate.Name, candidate.JobRole, records)

	technical, behavioral, overall := aggregateScores(answers)
	evaluation := &domain.Evaluation{
		InterviewID:      interview.ID,
		OverallScore:     overall,
		TechnicalScore:   technical,
		BehavioralScore:  behavioral,
		Strengths:        summary.Strengths,
		ImprovementAreas: summary.ImprovementAreas,
		Recommendation:   summary.Recommendation,
	}

	if err := s.interviewRepo.Complete(ctx, interview.ID, time.Now(), evaluation); err != nil {
		return nil, err
	}

	s.log.Info("interview completed",
		zap.Int64("interviewId", interview.ID),
		zap.Int("overallScore", overall),
		zap.String("recommendation", summary.Recommendation),
	)

	return &domain.InterviewSummary{
		Strengths:        summary.Strengths,
		ImprovementAreas: summary.ImprovementAreas,
		FinalRating:      summary.FinalRating,
		Recommendation:   summary.Recommendation,
	}, nil
}

func (s *interviewService) hasCompletedInterview(ctx context.Context, candidateID int64) (bool, error) {
	interviews, err := s.interviewRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return false, err
	}
	for _, interview := range interviews {
		if interview.Status == domain.InterviewStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// aggregateScores maps the 0-10 answer scores onto the 0-100 evaluation
// scale. Questions before the behavioral split count as technical, the rest
// as behavioral; an empty partition scores zero.
func aggregateScores(answers []domain.Answer) (technical, behavioral, overall int) {
	var techSum, techCount, behavSum, behavCount int
	for _, a := range answers {
		if a.QuestionIndex < ai.TechnicalQuestionCount {
			techSum += a.Score
			techCount++
		} else {
			behavSum += a.Score
			behavCount++
		}
	}

	technical = scaleAverage(techSum, techCount)
	behavioral = scaleAverage(behavSum, behavCount)
	overall = scaleAverage(techSum+behavSum, techCount+behavCount)
	return technical, behavioral, overall
}

func scaleAverage(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count) * 10))
}
