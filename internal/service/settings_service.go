package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/ai"

	"go.uber.org/zap"
)

var (
	ErrInvalidAIProvider    = errors.New("ai provider must be one of: openai, gemini")
	ErrInvalidVoiceProvider = errors.New("voice provider must be one of: elevenlabs, none")
)

const (
	aiProviderCacheKey    = "settings:ai_provider"
	voiceProviderCacheKey = "settings:voice_provider"
	settingsCacheTTL      = 30 * time.Second
)

// SettingsService reads and writes the runtime provider settings. It also
// backs the AI gateway's provider resolution, so an admin switching
// providers takes effect on the next call within the cache TTL.
type SettingsService struct {
	settingsRepo domain.SettingsRepository
	cacheRepo    domain.CacheRepository
	auditRepo    domain.AuditLogRepository
	log          *zap.Logger
}

func NewSettingsService(
	settingsRepo domain.SettingsRepository,
	cacheRepo domain.CacheRepository,
	auditRepo domain.AuditLogRepository,
	log *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cacheRepo:    cacheRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// ActiveProvider implements ai.ProviderResolver. Unset or unreadable
// settings resolve to the default provider.
func (s *SettingsService) ActiveProvider(ctx context.Context) ai.Provider {
	value, err := s.AIProvider(ctx)
	if err != nil {
		s.log.Warn("provider setting unavailable, using default", zap.Error(err))
		return ai.ProviderOpenAI
	}
	provider := ai.Provider(value)
	if !provider.Valid() {
		return ai.ProviderOpenAI
	}
	return provider
}

func (s *SettingsService) AIProvider(ctx context.Context) (string, error) {
	value, err := s.cachedSetting(ctx, aiProviderCacheKey, domain.SettingAIProvider)
	if err != nil {
		return "", err
	}
	if value == "" {
		return string(ai.ProviderOpenAI), nil
	}
	return value, nil
}

func (s *SettingsService) SetAIProvider(ctx context.Context, provider, performedBy string) error {
	if !ai.Provider(provider).Valid() {
		return ErrInvalidAIProvider
	}
	if err := s.settingsRepo.Set(ctx, domain.SettingAIProvider, provider); err != nil {
		return err
	}
	s.invalidate(ctx, aiProviderCacheKey)
	s.audit(ctx, "update_setting", domain.SettingAIProvider+"="+provider, performedBy)
	return nil
}

func (s *SettingsService) VoiceProvider(ctx context.Context) (string, error) {
	value, err := s.cachedSetting(ctx, voiceProviderCacheKey, domain.SettingVoiceProvider)
	if err != nil {
		return "", err
	}
	if value == "" {
		return domain.VoiceProviderNone, nil
	}
	return value, nil
}

func (s *SettingsService) SetVoiceProvider(ctx context.Context, provider, performedBy string) error {
	if provider != domain.VoiceProviderElevenLabs && provider != domain.VoiceProviderNone {
		return ErrInvalidVoiceProvider
	}
	if err := s.settingsRepo.Set(ctx, domain.SettingVoiceProvider, provider); err != nil {
		return err
	}
	s.invalidate(ctx, voiceProviderCacheKey)
	s.audit(ctx, "update_setting", domain.SettingVoiceProvider+"="+provider, performedBy)
	return nil
}

func (s *SettingsService) cachedSetting(ctx context.Context, cacheKey, settingKey string) (string, error) {
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var value string
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			return value, nil
		}
	}

	value, err := s.settingsRepo.Get(ctx, settingKey)
	if err != nil {
		return "", err
	}

	if err := s.cacheRepo.Set(ctx, cacheKey, value, settingsCacheTTL); err != nil {
		s.log.Warn("failed to cache setting", zap.String("key", settingKey), zap.Error(err))
	}
	return value, nil
}

func (s *SettingsService) invalidate(ctx context.Context, cacheKey string) {
	if err := s.cacheRepo.Delete(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate setting cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func (s *SettingsService) audit(ctx context.Context, action, target, performedBy string) {
	entry := &domain.AuditLog{Action: action, Target: target, PerformedBy: performedBy}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
