package use_cases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

func TestSendOTP_CooldownBlocksResend(t *testing.T) {
	store := newMockStore()
	backend := &mockBackend{}
	uc := NewAccountUseCase(store, backend, logger.NewLogger(), time.Minute)

	first, err := uc.SendOTP(context.Background(), testUserID, testToken, "email", "user@example.com")
	require.NoError(t, err)
	assert.True(t, first.Sent)
	assert.Equal(t, 60, first.CooldownSeconds)

	second, err := uc.SendOTP(context.Background(), testUserID, testToken, "email", "user@example.com")
	require.NoError(t, err)
	assert.False(t, second.Sent)
	assert.Greater(t, second.CooldownSeconds, 0)
}

func TestSetTheme_UnknownValueFallsBackToLight(t *testing.T) {
	store := newMockStore()
	uc := NewAccountUseCase(store, &mockBackend{}, logger.NewLogger(), time.Minute)

	require.NoError(t, uc.SetTheme(context.Background(), testUserID, "dark"))
	theme, _ := uc.GetTheme(context.Background(), testUserID)
	assert.Equal(t, "dark", theme)

	require.NoError(t, uc.SetTheme(context.Background(), testUserID, "neon"))
	theme, _ = uc.GetTheme(context.Background(), testUserID)
	assert.Equal(t, "light", theme)
}

func TestLogout_ClearsSession(t *testing.T) {
	store := newMockStore()
	store.themes[testUserID] = "dark"
	uc := NewAccountUseCase(store, &mockBackend{}, logger.NewLogger(), time.Minute)

	err := uc.Logout(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.Equal(t, 1, store.clearSessionCalls)
	assert.Empty(t, store.themes[testUserID])
}
