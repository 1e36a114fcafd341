package domain

import (
	"context"
	"time"
)

// Settings keys consumed by the provider gateway and the TTS endpoint.
// Values are read per call, so an admin change takes effect immediately.
const (
	SettingAIProvider    = "ai_provider"
	SettingVoiceProvider = "voice_provider"
)

type SettingsRepository interface {
	// Get returns the empty string when the key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// VoiceProviderElevenLabs enables the text-to-speech endpoint; any other
// value (including unset) disables it.
const (
	VoiceProviderElevenLabs = "elevenlabs"
	VoiceProviderNone       = "none"
)

type UpdateProviderRequest struct {
	Provider string `json:"provider" validate:"required"`
}

type ProviderSettings struct {
	AIProvider    string `json:"aiProvider"`
	VoiceProvider string `json:"voiceProvider"`
}

type SettingsService interface {
	AIProvider(ctx context.Context) (string, error)
	SetAIProvider(ctx context.Context, provider, performedBy string) error
	VoiceProvider(ctx context.Context) (string, error)
	SetVoiceProvider(ctx context.Context, provider, performedBy string) error
}

type AuditLog struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"`
	Target      string    `json:"target"`
	PerformedBy string    `json:"performedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AuditLogFilter struct {
	Action      string
	PerformedBy string
	Date        string
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	Find(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error)
}

type TokenUsage struct {
	ID               int64     `json:"id"`
	Provider         string    `json:"provider"`
	Operation        string    `json:"operation"`
	PromptTokens     int       `json:"promptTokens"`
	CompletionTokens int       `json:"completionTokens"`
	CreatedAt        time.Time `json:"createdAt"`
}

type TokenUsageStat struct {
	Provider         string `json:"provider"`
	Calls            int64  `json:"calls"`
	PromptTokens     int64  `json:"promptTokens"`
	CompletionTokens int64  `json:"completionTokens"`
}

type TokenUsageRepository interface {
	Create(ctx context.Context, usage *TokenUsage) error
	Stats(ctx context.Context) ([]TokenUsageStat, error)
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
)

type Invitation struct {
	ID            int64            `json:"id"`
	CandidateID   *int64           `json:"candidateId,omitempty"`
	Email         string           `json:"email"`
	Token         string           `json:"token"`
	JobRole       string           `json:"jobRole"`
	Skillset      string           `json:"skillset"`
	Status        InvitationStatus `json:"status"`
	CandidateName string           `json:"candidateName"`
	Phone         string           `json:"phone"`
	ResumeText    string           `json:"resumeText"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation *Invitation) error
	FindByToken(ctx context.Context, token string) (*Invitation, error)
	FindAll(ctx context.Context) ([]Invitation, error)
	UpdateStatus(ctx context.Context, token string, status InvitationStatus) error
}

type SendInvitationRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	JobRole  string `json:"jobRole" validate:"required"`
	Skillset string `json:"skillset"`
}

type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SendInvitationResponse struct {
	InvitationID int64  `json:"invitationId"`
	Token        string `json:"token"`
	Message      string `json:"message"`
}

// ExportBundle is the JSON download of everything an admin can see.
type ExportBundle struct {
	Interviews []InterviewWithResult `json:"interviews"`
	Candidates []Candidate           `json:"candidates"`
	ExportedAt time.Time             `json:"exportedAt"`
}

type AdminService interface {
	Stats(ctx context.Context) (*InterviewStats, error)
	ListInterviews(ctx context.Context) ([]InterviewWithResult, error)
	ListCandidates(ctx context.Context) ([]Candidate, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListAdmins(ctx context.Context) ([]User, error)
	PromoteAdmin(ctx context.Context, email, performedBy string) error
	DemoteAdmin(ctx context.Context, email, performedBy string) error
	Export(ctx context.Context) (*ExportBundle, error)
	DeleteInterview(ctx context.Context, id int64, performedBy string) error
	DeleteCandidate(ctx context.Context, id int64, performedBy string) error
	DisqualifyCandidate(ctx context.Context, id int64, performedBy string) error
	AuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error)
	TokenUsageStats(ctx context.Context) ([]TokenUsageStat, error)
	SendInvitation(ctx context.Context, req *SendInvitationRequest, performedBy string) (*SendInvitationResponse, error)
}

type EmailService interface {
	SendInterviewInvitation(ctx context.Context, to, name, jobRole, skillset, token string) error
}

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
