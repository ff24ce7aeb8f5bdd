package use_cases

import (
	"context"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// OTPResult reports a send-OTP attempt. When the resend cooldown is
// still running, CooldownSeconds carries the remaining wait.
type OTPResult struct {
	Sent            bool   `json:"sent"`
	Message         string `json:"message,omitempty"`
	CooldownSeconds int    `json:"cooldown_seconds,omitempty"`
}

// AccountUseCase covers the profile-adjacent flows: OTP verification,
// theme preference and logout.
type AccountUseCase struct {
	store   ports.UserStateStore
	backend ports.BackendAPI
	log     *logger.Logger

	otpCooldown time.Duration
}

func NewAccountUseCase(
	store ports.UserStateStore,
	backend ports.BackendAPI,
	log *logger.Logger,
	otpCooldown time.Duration,
) *AccountUseCase {
	return &AccountUseCase{
		store:       store,
		backend:     backend,
		log:         log,
		otpCooldown: otpCooldown,
	}
}

// SendOTP proxies the code request to the backend behind a server-side
// resend cooldown. The cooldown stands in for the countdown timer the
// original client ran in the browser.
func (uc *AccountUseCase) SendOTP(ctx context.Context, userID, token, channel, value string) (*OTPResult, error) {
	started, remaining, err := uc.store.StartOTPCooldown(ctx, userID, uc.otpCooldown)
	if err != nil {
		uc.log.Error("Failed to arm OTP cooldown", "error", err, "user_id", userID)
		return nil, err
	}
	if !started {
		return &OTPResult{
			Sent:            false,
			Message:         errors.ErrOTPCooldownActive.Error(),
			CooldownSeconds: int(remaining.Seconds()),
		}, nil
	}

	message, err := uc.backend.SendOTP(ctx, token, channel, value)
	if err != nil {
		return nil, err
	}

	return &OTPResult{
		Sent:            true,
		Message:         message,
		CooldownSeconds: int(uc.otpCooldown.Seconds()),
	}, nil
}

func (uc *AccountUseCase) VerifyOTP(ctx context.Context, token, channel, value, code string) error {
	return uc.backend.VerifyOTP(ctx, token, channel, value, code)
}

func (uc *AccountUseCase) GetTheme(ctx context.Context, userID string) (string, error) {
	return uc.store.GetTheme(ctx, userID)
}

func (uc *AccountUseCase) SetTheme(ctx context.Context, userID, theme string) error {
	if theme != "light" && theme != "dark" {
		theme = "light"
	}
	return uc.store.SetTheme(ctx, userID, theme)
}

// Logout tells the backend best effort, then wipes everything the user
// owns locally: cart, hold, payment session, last purchase, cached
// token and theme.
func (uc *AccountUseCase) Logout(ctx context.Context, userID, token string) error {
	if err := uc.backend.Logout(ctx, token); err != nil {
		uc.log.Warn("Backend logout failed", "error", err, "user_id", userID)
	}
	return uc.store.ClearSession(ctx, userID, token)
}
