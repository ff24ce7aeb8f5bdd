package handlers

import (
	"net/http"

	"github.com/skillforge/checkout-service/internal/application/commands"
	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewCheckoutHandler(checkoutUseCase *use_cases.CheckoutUseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

// HandleBeginCheckout converts the cart into a hold plus payment
// session and returns the summary the payment widget renders.
func (h *CheckoutHandler) HandleBeginCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		token := middleware.TokenFromContext(r.Context())

		metrics := monitoring.NewCheckoutFunnelMetrics()
		metrics.RecordHoldAttempt()

		handler := commands.NewBeginCheckoutHandler(h.checkoutUseCase, h.log)
		summary, err := handler.Handle(r.Context(), commands.BeginCheckoutCommand{
			UserID: userID,
			Token:  token,
		})
		if err != nil {
			metrics.RecordHoldFailure(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		metrics.RecordHoldSuccess(summary.Reused)
		response.WriteSuccess(w, summary)
	}
}

// HandleRetryPaymentSession mints a new client secret for the current
// hold after a failed or abandoned session.
func (h *CheckoutHandler) HandleRetryPaymentSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		token := middleware.TokenFromContext(r.Context())

		handler := commands.NewRetryPaymentSessionHandler(h.checkoutUseCase, h.log)
		summary, err := handler.Handle(r.Context(), commands.RetryPaymentSessionCommand{
			UserID: userID,
			Token:  token,
		})
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, summary)
	}
}

// HandleSubmitPayment runs the freshness gate and confirms payment
// with the gateway when it passes.
func (h *CheckoutHandler) HandleSubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		token := middleware.TokenFromContext(r.Context())

		metrics := monitoring.NewCheckoutFunnelMetrics()
		metrics.RecordSubmission()

		handler := commands.NewSubmitPaymentHandler(h.checkoutUseCase, h.log)
		result, err := handler.Handle(r.Context(), commands.SubmitPaymentCommand{
			UserID: userID,
			Token:  token,
		})
		if err != nil {
			metrics.RecordSubmissionError(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		metrics.RecordSubmissionOutcome(result.Succeeded, result.Declined, result.Expired)
		switch {
		case result.Declined:
			response.WriteJSON(w, http.StatusPaymentRequired, response.Success(result))
		case result.Expired:
			response.WriteJSON(w, http.StatusConflict, response.Success(result))
		default:
			response.WriteSuccess(w, result)
		}
	}
}
