package use_cases

import (
	"context"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
	"github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/pkg/clock"
	"github.com/skillforge/checkout-service/internal/pkg/generator"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// CheckoutSummary is returned on checkout entry and on payment-session
// retry: the hold's financial breakdown plus the client secret the
// payment widget needs.
type CheckoutSummary struct {
	HoldID         string                `json:"hold_id"`
	Courses        []checkout.HoldCourse `json:"courses"`
	SubTotalAmount float64               `json:"subtotal_amount"`
	Taxes          float64               `json:"taxes"`
	DiscountAmount float64               `json:"discount_amount"`
	TotalAmount    float64               `json:"total_amount"`
	ClientSecret   string                `json:"client_secret"`
	ExpiresAt      time.Time             `json:"expires_at"`
	Reused         bool                  `json:"reused"`
}

// SubmitResult reports one submission attempt. Exactly one of
// Succeeded, Declined or Expired is set.
type SubmitResult struct {
	Succeeded       bool   `json:"succeeded"`
	Declined        bool   `json:"declined,omitempty"`
	Expired         bool   `json:"expired,omitempty"`
	Message         string `json:"message,omitempty"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	// ClientSecret is set on the expired path: the stale hold and
	// session were discarded and a fresh pair minted.
	ClientSecret string `json:"client_secret,omitempty"`
}

type CheckoutUseCase struct {
	store     ports.UserStateStore
	backend   ports.BackendAPI
	gateway   ports.PaymentGateway
	publisher ports.PurchasePublisher
	clk       clock.Clock
	gen       *generator.Generator
	log       *logger.Logger

	holdTTL         time.Duration
	freshnessWindow time.Duration
}

func NewCheckoutUseCase(
	store ports.UserStateStore,
	backend ports.BackendAPI,
	gateway ports.PaymentGateway,
	publisher ports.PurchasePublisher,
	clk clock.Clock,
	log *logger.Logger,
	holdTTL time.Duration,
	freshnessWindow time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		store:           store,
		backend:         backend,
		gateway:         gateway,
		publisher:       publisher,
		clk:             clk,
		gen:             generator.NewGenerator(),
		log:             log,
		holdTTL:         holdTTL,
		freshnessWindow: freshnessWindow,
	}
}

// BeginCheckout converts the current cart into a server-side hold and a
// gateway payment session. A fresh hold that still matches the cart is
// reused; anything stale or mismatched is discarded and re-minted.
func (uc *CheckoutUseCase) BeginCheckout(ctx context.Context, userID, token string) (*CheckoutSummary, error) {
	userCart, err := uc.store.GetCart(ctx, userID)
	if err != nil {
		uc.log.Error("Failed to load cart", "error", err, "user_id", userID)
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, errors.ErrCartEmpty
	}

	state, err := uc.store.GetCheckoutState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == checkout.StateSubmitting {
		return nil, errors.ErrCheckoutInProgress
	}

	now := uc.clk.Now()

	hold, err := uc.store.GetHold(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, err := uc.store.GetPaymentSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if hold != nil && session != nil &&
		hold.Fresh(now, uc.freshnessWindow) &&
		hold.MatchesCart(userCart.CourseIDs()) &&
		session.BelongsTo(hold.ID) {
		if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateAwaitingPayment); err != nil {
			return nil, err
		}
		return uc.summary(hold, session.ClientSecret, true), nil
	}

	return uc.mintHoldAndSession(ctx, userID, token, userCart.CourseIDs())
}

// RetryPaymentSession re-requests gateway authorization for the current
// hold. An expired hold routes back through hold creation first; the
// session token is never reused across holds.
func (uc *CheckoutUseCase) RetryPaymentSession(ctx context.Context, userID, token string) (*CheckoutSummary, error) {
	hold, err := uc.store.GetHold(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, errors.ErrHoldMissing
	}

	if !hold.Fresh(uc.clk.Now(), uc.freshnessWindow) {
		uc.log.Info("Hold expired on payment-session retry, re-minting", "user_id", userID, "hold_id", hold.ID)
		if err := uc.discardHold(ctx, userID); err != nil {
			return nil, err
		}
		return uc.BeginCheckout(ctx, userID, token)
	}

	return uc.createPaymentSession(ctx, userID, token, hold)
}

// SubmitPayment runs the freshness gate and, when it passes, confirms
// payment with the gateway. A stale hold aborts the submission,
// discards the stale pair and restarts hold creation instead of
// reaching the gateway.
func (uc *CheckoutUseCase) SubmitPayment(ctx context.Context, userID, token string) (*SubmitResult, error) {
	state, err := uc.store.GetCheckoutState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == checkout.StateSubmitting {
		return nil, errors.ErrCheckoutInProgress
	}
	if state != checkout.StateAwaitingPayment && state != checkout.StateFailed {
		return nil, errors.ErrSubmissionNotReady
	}

	hold, err := uc.store.GetHold(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, errors.ErrHoldMissing
	}

	session, err := uc.store.GetPaymentSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.BelongsTo(hold.ID) {
		return nil, errors.ErrPaymentSessionMissing
	}

	if !hold.Fresh(uc.clk.Now(), uc.freshnessWindow) {
		return uc.restartExpired(ctx, userID, token, hold)
	}

	if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateSubmitting); err != nil {
		return nil, err
	}

	confirmation, err := uc.gateway.Confirm(ctx, session.ClientSecret, uc.gen.IdempotencyKey())
	if err != nil {
		uc.log.Error("Gateway confirm failed", "error", err, "user_id", userID, "hold_id", hold.ID)
		if stateErr := uc.store.SetCheckoutState(ctx, userID, checkout.StateAwaitingPayment); stateErr != nil {
			uc.log.Error("Failed to restore checkout state", "error", stateErr, "user_id", userID)
		}
		return nil, errors.ErrGatewayUnavailable
	}

	if confirmation.Status != checkout.RedirectStatusSucceeded {
		uc.log.Warn("Payment declined",
			"user_id", userID,
			"hold_id", hold.ID,
			"status", confirmation.Status,
			"gateway_message", confirmation.Message,
		)
		// Hold and session stay cached; the user may resubmit while
		// the hold remains fresh.
		if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateAwaitingPayment); err != nil {
			return nil, err
		}
		return &SubmitResult{
			Declined: true,
			Message:  confirmation.Message,
		}, nil
	}

	record, err := checkout.NewPurchaseRecord(hold, confirmation.PaymentIntentID, uc.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.store.CompletePurchase(ctx, userID, record); err != nil {
		uc.log.Error("Failed to finalize purchase state", "error", err, "user_id", userID, "payment_intent_id", confirmation.PaymentIntentID)
		return nil, err
	}

	uc.publishCompleted(ctx, userID, hold, confirmation.PaymentIntentID, record.CompletedAt)

	uc.log.Info("Checkout succeeded",
		"user_id", userID,
		"hold_id", hold.ID,
		"payment_intent_id", confirmation.PaymentIntentID,
		"total_amount", hold.TotalAmount,
	)

	return &SubmitResult{
		Succeeded:       true,
		PaymentIntentID: confirmation.PaymentIntentID,
		RedirectURL:     "/receipt?payment_intent=" + confirmation.PaymentIntentID + "&redirect_status=" + checkout.RedirectStatusSucceeded,
	}, nil
}

// Receipt validates the gateway return-URL parameters and consumes the
// last-purchase record. Missing or mismatched confirmation markers are
// an invalid arrival, not a partial render.
func (uc *CheckoutUseCase) Receipt(ctx context.Context, userID, paymentIntentID, redirectStatus string) (*checkout.PurchaseRecord, error) {
	if paymentIntentID == "" || redirectStatus != checkout.RedirectStatusSucceeded {
		return nil, errors.ErrReceiptInvalid
	}

	record, err := uc.store.GetLastPurchase(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrReceiptUnavailable
	}
	if record.PaymentIntentID != paymentIntentID {
		uc.log.Warn("Receipt payment intent mismatch",
			"user_id", userID,
			"expected", record.PaymentIntentID,
			"got", paymentIntentID,
		)
		return nil, errors.ErrReceiptInvalid
	}

	// Consumed exactly once.
	if err := uc.store.ClearLastPurchase(ctx, userID); err != nil {
		uc.log.Error("Failed to clear consumed purchase record", "error", err, "user_id", userID)
	}

	if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateIdle); err != nil {
		uc.log.Error("Failed to reset checkout state", "error", err, "user_id", userID)
	}

	return record, nil
}

func (uc *CheckoutUseCase) mintHoldAndSession(ctx context.Context, userID, token string, courseIDs []string) (*CheckoutSummary, error) {
	if err := uc.discardHold(ctx, userID); err != nil {
		return nil, err
	}
	if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateHoldCreating); err != nil {
		return nil, err
	}

	hold, err := uc.backend.CreateEnrollment(ctx, token, courseIDs)
	if err != nil {
		uc.log.Error("Hold creation failed", "error", err, "user_id", userID)
		if stateErr := uc.store.SetCheckoutState(ctx, userID, checkout.StateIdle); stateErr != nil {
			uc.log.Error("Failed to reset checkout state", "error", stateErr, "user_id", userID)
		}
		return nil, uc.cascadeIfUnauthorized(ctx, userID, token, err)
	}

	if err := uc.store.SaveHold(ctx, userID, hold, uc.holdTTL); err != nil {
		uc.log.Error("Failed to cache hold", "error", err, "user_id", userID, "hold_id", hold.ID)
		return nil, err
	}

	return uc.createPaymentSession(ctx, userID, token, hold)
}

func (uc *CheckoutUseCase) createPaymentSession(ctx context.Context, userID, token string, hold *checkout.Hold) (*CheckoutSummary, error) {
	clientSecret, err := uc.backend.CreatePaymentIntent(ctx, token, hold.ID)
	if err != nil {
		uc.log.Error("Payment session creation failed", "error", err, "user_id", userID, "hold_id", hold.ID)
		// The hold stays cached; the user can retry the session while
		// the hold remains fresh.
		return nil, uc.cascadeIfUnauthorized(ctx, userID, token, err)
	}

	session, err := checkout.NewPaymentSession(clientSecret, hold.ID, uc.clk.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.store.SavePaymentSession(ctx, userID, session, uc.holdTTL); err != nil {
		uc.log.Error("Failed to cache payment session", "error", err, "user_id", userID, "hold_id", hold.ID)
		return nil, err
	}

	if err := uc.store.SetCheckoutState(ctx, userID, checkout.StateAwaitingPayment); err != nil {
		return nil, err
	}

	return uc.summary(hold, clientSecret, false), nil
}

func (uc *CheckoutUseCase) restartExpired(ctx context.Context, userID, token string, hold *checkout.Hold) (*SubmitResult, error) {
	uc.log.Info("Freshness gate rejected submission, re-minting hold",
		"user_id", userID,
		"hold_id", hold.ID,
		"hold_age_seconds", int(uc.clk.Since(hold.CreatedAt).Seconds()),
	)

	summary, err := uc.mintHoldAndSession(ctx, userID, token, hold.CourseIDs)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Expired:      true,
		Message:      "Your checkout session expired. A new session has been created, please try again.",
		ClientSecret: summary.ClientSecret,
	}, nil
}

func (uc *CheckoutUseCase) discardHold(ctx context.Context, userID string) error {
	if err := uc.store.ClearHold(ctx, userID); err != nil {
		return err
	}
	return uc.store.ClearPaymentSession(ctx, userID)
}

// cascadeIfUnauthorized implements the global auth-failure policy: an
// unauthorized answer from the backend wipes all cached user state so a
// dead token cannot keep a cart or hold alive.
func (uc *CheckoutUseCase) cascadeIfUnauthorized(ctx context.Context, userID, token string, err error) error {
	if err == errors.ErrUnauthorized {
		if clearErr := uc.store.ClearSession(ctx, userID, token); clearErr != nil {
			uc.log.Error("Failed to clear session on auth failure", "error", clearErr, "user_id", userID)
		}
	}
	return err
}

func (uc *CheckoutUseCase) publishCompleted(ctx context.Context, userID string, hold *checkout.Hold, paymentIntentID string, completedAt time.Time) {
	if uc.publisher == nil || !uc.publisher.Enabled() {
		return
	}

	event := ports.PurchaseCompletedEvent{
		UserID:          userID,
		PaymentIntentID: paymentIntentID,
		CourseIDs:       hold.CourseIDs,
		TotalAmount:     hold.TotalAmount,
		CompletedAt:     completedAt,
	}
	if err := uc.publisher.PublishPurchaseCompleted(ctx, event); err != nil {
		uc.log.Warn("Failed to publish purchase event", "error", err, "user_id", userID, "payment_intent_id", paymentIntentID)
	}
}

func (uc *CheckoutUseCase) summary(hold *checkout.Hold, clientSecret string, reused bool) *CheckoutSummary {
	return &CheckoutSummary{
		HoldID:         hold.ID,
		Courses:        hold.Courses,
		SubTotalAmount: hold.SubTotalAmount,
		Taxes:          hold.Taxes,
		DiscountAmount: hold.DiscountAmount,
		TotalAmount:    hold.TotalAmount,
		ClientSecret:   clientSecret,
		ExpiresAt:      hold.CreatedAt.Add(uc.freshnessWindow),
		Reused:         reused,
	}
}
