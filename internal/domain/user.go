package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	InvitationToken string `json:"invitationToken"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByRole(ctx context.Context, role Role) ([]User, error)
	UpdateRole(ctx context.Context, email string, role Role) error
	DeleteByEmail(ctx context.Context, email string) error
}

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*User, error)
	// InvitationByToken returns a pending invitation so the signup page can
	// prefill the candidate's details.
	InvitationByToken(ctx context.Context, token string) (*Invitation, error)
	// EnsureAdmin creates the seed admin account on first boot. It is a
	// no-op when the account already exists or no password is configured.
	EnsureAdmin(ctx context.Context, email, password string) error
}
