package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInvitation  = errors.New("invitation token is invalid or already used")
)

type authService struct {
	userRepo       domain.UserRepository
	candidateRepo  domain.CandidateRepository
	invitationRepo domain.InvitationRepository
	jwtManager     *jwt.JWTManager
	log            *zap.Logger
}

func NewAuthService(
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	invitationRepo domain.InvitationRepository,
	jwtManager *jwt.JWTManager,
	log *zap.Logger,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		candidateRepo:  candidateRepo,
		invitationRepo: invitationRepo,
		jwtManager:     jwtManager,
		log:            log,
	}
}

func (s *authService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if req.InvitationToken != "" {
		if err := s.acceptInvitation(ctx, req.Email, req.InvitationToken); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleCandidate,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role == domain.RoleCandidate {
		candidate, err := s.candidateRepo.FindByEmail(ctx, user.Email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if candidate != nil && candidate.Disqualified {
			return nil, ErrCandidateDisqualified
		}
	}

	return s.issueToken(user)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jwt.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) InvitationByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidInvitation
		}
		return nil, err
	}

	if invitation.Status != domain.InvitationStatusPending {
		return nil, ErrInvalidInvitation
	}
	return invitation, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if password == "" {
		return nil
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("seed admin account created", zap.String("email", email))
	return nil
}

func (s *authService) acceptInvitation(ctx context.Context, email, token string) error {
	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidInvitation
		}
		return err
	}

	if invitation.Status != domain.InvitationStatusPending || invitation.Email != email {
		return ErrInvalidInvitation
	}

	return s.invitationRepo.UpdateStatus(ctx, token, domain.InvitationStatusAccepted)
}

func (s *authService) issueToken(user *domain.User) (*domain.AuthResponse, error) {
	token, err := s.jwtManager.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{Token: token, User: *user}, nil
}
