package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSettingsRepo struct {
	values map[string]string
}

func (r *fakeSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeSettingsRepo) Set(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

type fakeCacheRepo struct {
	values map[string]string
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	value, ok := r.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(data)
	return nil
}

func (r *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

type fakeAuditRepo struct {
	logs []domain.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepo) Find(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	return r.logs, nil
}

func newTestSettings() (*SettingsService, *fakeSettingsRepo, *fakeCacheRepo, *fakeAuditRepo) {
	settingsRepo := &fakeSettingsRepo{values: make(map[string]string)}
	cacheRepo := &fakeCacheRepo{values: make(map[string]string)}
	auditRepo := &fakeAuditRepo{}
	svc := NewSettingsService(settingsRepo, cacheRepo, auditRepo, zap.NewNop())
	return svc, settingsRepo, cacheRepo, auditRepo
}

func TestActiveProviderDefaultsToOpenAI(t *testing.T) {
	svc, _, _, _ := newTestSettings()

	assert.Equal(t, ai.ProviderOpenAI, svc.ActiveProvider(context.Background()))
}

func TestActiveProviderFollowsSetting(t *testing.T) {
	svc, _, _, _ := newTestSettings()

	require.NoError(t, svc.SetAIProvider(context.Background(), "gemini", "admin@example.com"))
	assert.Equal(t, ai.ProviderGemini, svc.ActiveProvider(context.Background()))
}

func TestActiveProviderInvalidStoredValue(t *testing.T) {
	svc, settingsRepo, _, _ := newTestSettings()

	settingsRepo.values[domain.SettingAIProvider] = "claude"
	assert.Equal(t, ai.ProviderOpenAI, svc.ActiveProvider(context.Background()))
}

func TestSetAIProviderRejectsUnknown(t *testing.T) {
	svc, _, _, _ := newTestSettings()

	err := svc.SetAIProvider(context.Background(), "claude", "admin@example.com")
	assert.ErrorIs(t, err, ErrInvalidAIProvider)
}

func TestSetAIProviderInvalidatesCache(t *testing.T) {
	svc, _, cacheRepo, _ := newTestSettings()

	// Prime the cache with the default.
	_, err := svc.AIProvider(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.values, "settings:ai_provider")

	require.NoError(t, svc.SetAIProvider(context.Background(), "gemini", "admin@example.com"))

	value, err := svc.AIProvider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gemini", value)
}

func TestSetAIProviderWritesAuditLog(t *testing.T) {
	svc, _, _, auditRepo := newTestSettings()

	require.NoError(t, svc.SetAIProvider(context.Background(), "gemini", "admin@example.com"))
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "update_setting", auditRepo.logs[0].Action)
	assert.Equal(t, "admin@example.com", auditRepo.logs[0].PerformedBy)
}

func TestVoiceProviderDefaultsToNone(t *testing.T) {
	svc, _, _, _ := newTestSettings()

	value, err := svc.VoiceProvider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.VoiceProviderNone, value)
}

func TestSetVoiceProvider(t *testing.T) {
	svc, _, _, _ := newTestSettings()

	require.NoError(t, svc.SetVoiceProvider(context.Background(), "elevenlabs", "admin@example.com"))

	value, err := svc.VoiceProvider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.VoiceProviderElevenLabs, value)

	err = svc.SetVoiceProvider(context.Background(), "siri", "admin@example.com")
	assert.ErrorIs(t, err, ErrInvalidVoiceProvider)
}
