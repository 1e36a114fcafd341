package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCandidateAlreadyInvited = errors.New("candidate already has a pending invitation")
	ErrUserNotFound            = errors.New("user not found")
	ErrCannotDemoteSelf        = errors.New("admins cannot remove their own admin role")
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 2 * time.Minute
)

type adminService struct {
	candidateRepo  domain.CandidateRepository
	interviewRepo  domain.InterviewRepository
	evaluationRepo domain.EvaluationRepository
	userRepo       domain.UserRepository
	auditRepo      domain.AuditLogRepository
	usageRepo      domain.TokenUsageRepository
	invitationRepo domain.InvitationRepository
	cacheRepo      domain.CacheRepository
	emailService   domain.EmailService
	log            *zap.Logger
}

func NewAdminService(
	candidateRepo domain.CandidateRepository,
	interviewRepo domain.InterviewRepository,
	evaluationRepo domain.EvaluationRepository,
	userRepo domain.UserRepository,
	auditRepo domain.AuditLogRepository,
	usageRepo domain.TokenUsageRepository,
	invitationRepo domain.InvitationRepository,
	cacheRepo domain.CacheRepository,
	emailService domain.EmailService,
	log *zap.Logger,
) domain.AdminService {
	return &adminService{
		candidateRepo:  candidateRepo,
		interviewRepo:  interviewRepo,
		evaluationRepo: evaluationRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		usageRepo:      usageRepo,
		invitationRepo: invitationRepo,
		cacheRepo:      cacheRepo,
		emailService:   emailService,
		log:            log,
	}
}

func (s *adminService) Stats(ctx context.Context) (*domain.InterviewStats, error) {
	if cached, err := s.cacheRepo.Get(ctx, statsCacheKey); err == nil {
		var stats domain.InterviewStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.evaluationRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		s.log.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, nil
}

func (s *adminService) ListInterviews(ctx context.Context) ([]domain.InterviewWithResult, error) {
	return s.interviewRepo.FindAll(ctx)
}

func (s *adminService) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return s.candidateRepo.FindAll(ctx)
}

func (s *adminService) DeleteInterview(ctx context.Context, id int64, performedBy string) error {
	if err := s.interviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInterviewNotFound
		}
		return err
	}

	s.invalidateStats(ctx)
	s.audit(ctx, "delete_interview", "interview", id, performedBy)
	return nil
}

// DeleteCandidate removes the candidate (interviews, answers and
// evaluations cascade) and the login account tied to their email.
func (s *adminService) DeleteCandidate(ctx context.Context, id int64, performedBy string) error {
	candidate, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCandidateNotFound
		}
		return err
	}

	if err := s.candidateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCandidateNotFound
		}
		return err
	}

	if err := s.userRepo.DeleteByEmail(ctx, candidate.Email); err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.log.Warn("failed to delete candidate account",
			zap.String("email", candidate.Email),
			zap.Error(err),
		)
	}

	s.invalidateStats(ctx)
	s.audit(ctx, "delete_candidate", "candidate", id, performedBy)
	return nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *adminService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindByRole(ctx, domain.RoleAdmin)
}

func (s *adminService) PromoteAdmin(ctx context.Context, email, performedBy string) error {
	if err := s.userRepo.UpdateRole(ctx, email, domain.RoleAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	s.auditUser(ctx, "promote_admin", email, performedBy)
	return nil
}

func (s *adminService) DemoteAdmin(ctx context.Context, email, performedBy string) error {
	if email == performedBy {
		return ErrCannotDemoteSelf
	}

	if err := s.userRepo.UpdateRole(ctx, email, domain.RoleCandidate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	s.auditUser(ctx, "demote_admin", email, performedBy)
	return nil
}

func (s *adminService) Export(ctx context.Context) (*domain.ExportBundle, error) {
	interviews, err := s.interviewRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ExportBundle{
		Interviews: interviews,
		Candidates: candidates,
		ExportedAt: time.Now(),
	}, nil
}

func (s *adminService) DisqualifyCandidate(ctx context.Context, id int64, performedBy string) error {
	if err := s.candidateRepo.Disqualify(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCandidateNotFound
		}
		return err
	}

	s.audit(ctx, "disqualify_candidate", "candidate", id, performedBy)
	return nil
}

func (s *adminService) AuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	return s.auditRepo.Find(ctx, filter)
}

func (s *adminService) TokenUsageStats(ctx context.Context) ([]domain.TokenUsageStat, error) {
	return s.usageRepo.Stats(ctx)
}

func (s *adminService) SendInvitation(ctx context.Context, req *domain.SendInvitationRequest, performedBy string) (*domain.SendInvitationResponse, error) {
	if pending, err := s.hasPendingInvitation(ctx, req.Email); err != nil {
		return nil, err
	} else if pending {
		return nil, ErrCandidateAlreadyInvited
	}

	invitation := &domain.Invitation{
		Email:         req.Email,
		Token:         uuid.NewString(),
		JobRole:       req.JobRole,
		Skillset:      req.Skillset,
		Status:        domain.InvitationStatusPending,
		CandidateName: req.Name,
		Phone:         req.Phone,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}

	message := "Invitation sent"
	err := s.emailService.SendInterviewInvitation(ctx, req.Email, req.Name, req.JobRole, req.Skillset, invitation.Token)
	if err != nil {
		s.log.Warn("failed to send invitation email",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		message = "Invitation created but the email could not be delivered"
	}

	s.audit(ctx, "send_invitation", "invitation", invitation.ID, performedBy)

	return &domain.SendInvitationResponse{
		InvitationID: invitation.ID,
		Token:        invitation.Token,
		Message:      message,
	}, nil
}

func (s *adminService) hasPendingInvitation(ctx context.Context, email string) (bool, error) {
	invitations, err := s.invitationRepo.FindAll(ctx)
	if err != nil {
		return false, err
	}
	for _, inv := range invitations {
		if inv.Email == email && inv.Status == domain.InvitationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Delete(ctx, statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *adminService) audit(ctx context.Context, action, targetKind string, targetID int64, performedBy string) {
	s.writeAudit(ctx, action, targetKind+":"+strconv.FormatInt(targetID, 10), performedBy)
}

func (s *adminService) auditUser(ctx context.Context, action, email, performedBy string) {
	s.writeAudit(ctx, action, "user:"+email, performedBy)
}

func (s *adminService) writeAudit(ctx context.Context, action, target, performedBy string) {
	entry := &domain.AuditLog{
		Action:      action,
		Target:      target,
		PerformedBy: performedBy,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
