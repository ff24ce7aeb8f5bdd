package commands

import (
	"context"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type BeginCheckoutCommand struct {
	UserID string
	Token  string
}

type BeginCheckoutHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewBeginCheckoutHandler(
	checkoutUseCase *use_cases.CheckoutUseCase,
	log *logger.Logger,
) *BeginCheckoutHandler {
	return &BeginCheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

func (h *BeginCheckoutHandler) Handle(ctx context.Context, cmd BeginCheckoutCommand) (*use_cases.CheckoutSummary, error) {
	h.log.Info("Processing checkout entry", "user_id", cmd.UserID)

	summary, err := h.checkoutUseCase.BeginCheckout(ctx, cmd.UserID, cmd.Token)
	if err != nil {
		h.log.Error("Checkout entry failed", "error", err.Error(), "user_id", cmd.UserID)
		return nil, err
	}

	h.log.Info("Checkout entry completed",
		"user_id", cmd.UserID,
		"hold_id", summary.HoldID,
		"total_amount", summary.TotalAmount,
		"reused", summary.Reused,
	)

	return summary, nil
}
