package handlers

import (
	"errors"
	"net/http"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type ReceiptHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewReceiptHandler(checkoutUseCase *use_cases.CheckoutUseCase, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

// HandleReceipt serves the one-shot purchase record. The gateway's
// return-URL parameters must both check out; anything else is treated
// as an invalid arrival and answered without purchase data.
func (h *ReceiptHandler) HandleReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		paymentIntentID := r.URL.Query().Get("payment_intent")
		redirectStatus := r.URL.Query().Get("redirect_status")

		record, err := h.checkoutUseCase.Receipt(r.Context(), userID, paymentIntentID, redirectStatus)
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrReceiptInvalid):
				monitoring.RecordReceiptRejection("invalid")
			case errors.Is(err, domainErrors.ErrReceiptUnavailable):
				monitoring.RecordReceiptRejection("unavailable")
			}
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, record)
	}
}
