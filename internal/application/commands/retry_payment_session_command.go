package commands

import (
	"context"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type RetryPaymentSessionCommand struct {
	UserID string
	Token  string
}

type RetryPaymentSessionHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewRetryPaymentSessionHandler(
	checkoutUseCase *use_cases.CheckoutUseCase,
	log *logger.Logger,
) *RetryPaymentSessionHandler {
	return &RetryPaymentSessionHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

func (h *RetryPaymentSessionHandler) Handle(ctx context.Context, cmd RetryPaymentSessionCommand) (*use_cases.CheckoutSummary, error) {
	h.log.Info("Retrying payment session", "user_id", cmd.UserID)

	summary, err := h.checkoutUseCase.RetryPaymentSession(ctx, cmd.UserID, cmd.Token)
	if err != nil {
		h.log.Error("Payment session retry failed", "error", err.Error(), "user_id", cmd.UserID)
		return nil, err
	}

	h.log.Info("Payment session retry completed", "user_id", cmd.UserID, "hold_id", summary.HoldID)

	return summary, nil
}
