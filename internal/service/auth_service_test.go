package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	seq   int64
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now()
	r.users[u.Email] = *u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	u, ok := r.users[email]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	r.users[email] = u
	return nil
}

func (r *fakeUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	if _, ok := r.users[email]; !ok {
		return sql.ErrNoRows
	}
	delete(r.users, email)
	return nil
}

type fakeInvitationRepo struct {
	seq         int64
	invitations map[string]domain.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]domain.Invitation)}
}

func (r *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	r.seq++
	inv.ID = r.seq
	inv.CreatedAt = time.Now()
	r.invitations[inv.Token] = *inv
	return nil
}

func (r *fakeInvitationRepo) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	inv, ok := r.invitations[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &inv, nil
}

func (r *fakeInvitationRepo) FindAll(ctx context.Context) ([]domain.Invitation, error) {
	out := make([]domain.Invitation, 0, len(r.invitations))
	for _, inv := range r.invitations {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvitationRepo) UpdateStatus(ctx context.Context, token string, status domain.InvitationStatus) error {
	inv, ok := r.invitations[token]
	if !ok {
		return sql.ErrNoRows
	}
	inv.Status = status
	r.invitations[token] = inv
	return nil
}

func newTestAuth(t *testing.T) (domain.AuthService, *fakeUserRepo, *fakeStore, *fakeInvitationRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	store := newFakeStore()
	invitationRepo := newFakeInvitationRepo()
	manager := jwt.NewJWTManager("test-secret", 24)
	svc := NewAuthService(userRepo, store, invitationRepo, manager, zap.NewNop())
	return svc, userRepo, store, invitationRepo
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	signup, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, domain.RoleCandidate, signup.User.Role)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	user, err := svc.ValidateToken(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", user.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupAcceptsInvitation(t *testing.T) {
	svc, _, _, invitationRepo := newTestAuth(t)

	invitation := &domain.Invitation{
		Email:  "jordan@example.com",
		Token:  "invite-token",
		Status: domain.InvitationStatusPending,
	}
	require.NoError(t, invitationRepo.Create(context.Background(), invitation))

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1", InvitationToken: "invite-token",
	})
	require.NoError(t, err)

	stored, err := invitationRepo.FindByToken(context.Background(), "invite-token")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusAccepted, stored.Status)
}

func TestSignupRejectsBadInvitation(t *testing.T) {
	svc, _, _, invitationRepo := newTestAuth(t)

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1", InvitationToken: "missing",
	})
	assert.ErrorIs(t, err, ErrInvalidInvitation)

	invitation := &domain.Invitation{
		Email:  "someone-else@example.com",
		Token:  "other-token",
		Status: domain.InvitationStatusPending,
	}
	require.NoError(t, invitationRepo.Create(context.Background(), invitation))

	_, err = svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1", InvitationToken: "other-token",
	})
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestInvitationByToken(t *testing.T) {
	svc, _, _, invitationRepo := newTestAuth(t)

	invitation := &domain.Invitation{
		Email:         "jordan@example.com",
		Token:         "invite-token",
		JobRole:       "backend",
		Status:        domain.InvitationStatusPending,
		CandidateName: "Jordan Smith",
	}
	require.NoError(t, invitationRepo.Create(context.Background(), invitation))

	found, err := svc.InvitationByToken(context.Background(), "invite-token")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", found.Email)
	assert.Equal(t, "Jordan Smith", found.CandidateName)
	assert.Equal(t, "backend", found.JobRole)
}

func TestInvitationByTokenUnknown(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	_, err := svc.InvitationByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestInvitationByTokenAlreadyAccepted(t *testing.T) {
	svc, _, _, invitationRepo := newTestAuth(t)

	invitation := &domain.Invitation{
		Email:  "jordan@example.com",
		Token:  "invite-token",
		Status: domain.InvitationStatusPending,
	}
	require.NoError(t, invitationRepo.Create(context.Background(), invitation))
	require.NoError(t, invitationRepo.UpdateStatus(context.Background(), "invite-token", domain.InvitationStatusAccepted))

	_, err := svc.InvitationByToken(context.Background(), "invite-token")
	assert.ErrorIs(t, err, ErrInvalidInvitation)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email: "jordan@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email: "nobody@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlocksDisqualifiedCandidate(t *testing.T) {
	svc, _, store, _ := newTestAuth(t)

	_, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	candidate := &domain.Candidate{Email: "jordan@example.com", Disqualified: true}
	require.NoError(t, store.Create(context.Background(), candidate))

	_, err = svc.Login(context.Background(), &domain.LoginRequest{
		Email: "jordan@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrCandidateDisqualified)
}

func TestEnsureAdmin(t *testing.T) {
	svc, userRepo, _, _ := newTestAuth(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "adminpass"))
	admin, err := userRepo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// Idempotent on the second boot.
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "adminpass"))
	assert.Len(t, userRepo.users, 1)
}

func TestEnsureAdminSkippedWithoutPassword(t *testing.T) {
	svc, userRepo, _, _ := newTestAuth(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", ""))
	assert.Empty(t, userRepo.users)
}
