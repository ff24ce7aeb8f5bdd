package commands

import (
	"context"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type SubmitPaymentCommand struct {
	UserID string
	Token  string
}

type SubmitPaymentHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewSubmitPaymentHandler(
	checkoutUseCase *use_cases.CheckoutUseCase,
	log *logger.Logger,
) *SubmitPaymentHandler {
	return &SubmitPaymentHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

func (h *SubmitPaymentHandler) Handle(ctx context.Context, cmd SubmitPaymentCommand) (*use_cases.SubmitResult, error) {
	h.log.Info("Processing payment submission", "user_id", cmd.UserID)

	result, err := h.checkoutUseCase.SubmitPayment(ctx, cmd.UserID, cmd.Token)
	if err != nil {
		h.log.Error("Payment submission failed", "error", err.Error(), "user_id", cmd.UserID)
		return nil, err
	}

	h.log.Info("Payment submission completed",
		"user_id", cmd.UserID,
		"succeeded", result.Succeeded,
		"declined", result.Declined,
		"expired", result.Expired,
	)

	return result, nil
}
