package use_cases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/pkg/clock"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

const (
	testUserID = "u1"
	testToken  = "tok-1"

	testHoldTTL         = 15 * time.Minute
	testFreshnessWindow = 10 * time.Minute
)

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	store     *mockStore
	backend   *mockBackend
	gateway   *mockGateway
	publisher *mockPublisher
	clk       *clock.MockClock
	useCase   *CheckoutUseCase
}

func newCheckoutFixture() *checkoutFixture {
	store := newMockStore()
	backend := &mockBackend{holdCreatedAt: testBase, holdTotal: 54.99}
	gateway := &mockGateway{
		confirmation: &ports.Confirmation{
			PaymentIntentID: "pi_1",
			Status:          checkout.RedirectStatusSucceeded,
		},
	}
	publisher := &mockPublisher{enabled: true}
	clk := clock.NewMockClock(testBase)

	useCase := NewCheckoutUseCase(
		store, backend, gateway, publisher, clk,
		logger.NewLogger(),
		testHoldTTL, testFreshnessWindow,
	)

	return &checkoutFixture{
		store:     store,
		backend:   backend,
		gateway:   gateway,
		publisher: publisher,
		clk:       clk,
		useCase:   useCase,
	}
}

func (f *checkoutFixture) seedCart(courseIDs ...string) {
	c := cart.NewCart()
	for _, id := range courseIDs {
		c.Add(cart.Item{CourseID: id})
	}
	f.store.carts[testUserID] = c
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	assert.ErrorIs(t, err, domainErrors.ErrCartEmpty)
	assert.Equal(t, 0, f.backend.enrollmentCalls)
}

func TestBeginCheckout_MintsHoldAndSession(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101", "go-201")

	summary, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.Equal(t, "hold-1", summary.HoldID)
	assert.Equal(t, "cs_hold-1", summary.ClientSecret)
	assert.False(t, summary.Reused)
	assert.Equal(t, 54.99, summary.TotalAmount)

	state, _ := f.store.GetCheckoutState(context.Background(), testUserID)
	assert.Equal(t, checkout.StateAwaitingPayment, state)
}

func TestBeginCheckout_ReusesFreshMatchingHold(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	f.clk.Advance(5 * time.Minute)
	summary, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.True(t, summary.Reused)
	assert.Equal(t, "hold-1", summary.HoldID)
	assert.Equal(t, 1, f.backend.enrollmentCalls)
	assert.Equal(t, 1, f.backend.intentCalls)
}

func TestBeginCheckout_StaleHoldIsReminted(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	f.clk.Advance(11 * time.Minute)
	f.backend.holdCreatedAt = f.clk.Now()

	summary, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.False(t, summary.Reused)
	assert.Equal(t, "hold-2", summary.HoldID)
	assert.Equal(t, 2, f.backend.enrollmentCalls)
}

func TestBeginCheckout_RejectedWhileSubmitting(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")
	f.store.states[testUserID] = checkout.StateSubmitting

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	assert.ErrorIs(t, err, domainErrors.ErrCheckoutInProgress)
}

func TestBeginCheckout_UnauthorizedTearsDownSession(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")
	f.backend.createEnrollmentErr = domainErrors.ErrUnauthorized

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)

	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
	assert.Equal(t, 1, f.store.clearSessionCalls)
}

func TestSubmitPayment_Success(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	result, err := f.useCase.SubmitPayment(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, "pi_1", result.PaymentIntentID)
	assert.Contains(t, result.RedirectURL, "payment_intent=pi_1")
	assert.Contains(t, result.RedirectURL, "redirect_status=succeeded")

	// Success-path cleanup ran once and atomically.
	assert.Equal(t, 1, f.store.completePurchaseCalls)
	assert.Nil(t, f.store.carts[testUserID])
	assert.Nil(t, f.store.holds[testUserID])
	require.NotNil(t, f.store.lastPurchases[testUserID])
	assert.Equal(t, "pi_1", f.store.lastPurchases[testUserID].PaymentIntentID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, testUserID, f.publisher.events[0].UserID)
}

func TestSubmitPayment_StaleHoldNeverReachesGateway(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	f.clk.Advance(11 * time.Minute)
	f.backend.holdCreatedAt = f.clk.Now()

	result, err := f.useCase.SubmitPayment(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.True(t, result.Expired)
	assert.False(t, result.Succeeded)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, "cs_hold-2", result.ClientSecret)

	// The stale pair was replaced without a single gateway call.
	assert.Equal(t, 0, f.gateway.confirmCalls)
	assert.Equal(t, 2, f.backend.enrollmentCalls)
}

func TestSubmitPayment_DeclinedKeepsHoldAndSession(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")
	f.gateway.confirmation = &ports.Confirmation{
		Status:  "failed",
		Message: "Your card was declined.",
	}

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	result, err := f.useCase.SubmitPayment(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.True(t, result.Declined)
	assert.Equal(t, "Your card was declined.", result.Message)

	// Hold and session survive a decline so the user can resubmit.
	assert.NotNil(t, f.store.holds[testUserID])
	assert.NotNil(t, f.store.sessions[testUserID])
	assert.Equal(t, 0, f.store.completePurchaseCalls)

	state, _ := f.store.GetCheckoutState(context.Background(), testUserID)
	assert.Equal(t, checkout.StateAwaitingPayment, state)
}

func TestSubmitPayment_GatewayUnavailableRestoresState(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	f.gateway.confirmErr = domainErrors.ErrGatewayUnavailable

	_, err = f.useCase.SubmitPayment(context.Background(), testUserID, testToken)

	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)

	state, _ := f.store.GetCheckoutState(context.Background(), testUserID)
	assert.Equal(t, checkout.StateAwaitingPayment, state)
}

func TestSubmitPayment_NotReady(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.useCase.SubmitPayment(context.Background(), testUserID, testToken)
	assert.ErrorIs(t, err, domainErrors.ErrSubmissionNotReady)

	f.store.states[testUserID] = checkout.StateSubmitting
	_, err = f.useCase.SubmitPayment(context.Background(), testUserID, testToken)
	assert.ErrorIs(t, err, domainErrors.ErrCheckoutInProgress)
}

func TestSubmitPayment_IdempotencyKeyPerAttempt(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")
	f.gateway.confirmation = &ports.Confirmation{Status: "failed", Message: "declined"}

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	_, err = f.useCase.SubmitPayment(context.Background(), testUserID, testToken)
	require.NoError(t, err)
	_, err = f.useCase.SubmitPayment(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	require.Len(t, f.gateway.idempotencyKeys, 2)
	assert.NotEqual(t, f.gateway.idempotencyKeys[0], f.gateway.idempotencyKeys[1])
}

func TestRetryPaymentSession_NoHold(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.useCase.RetryPaymentSession(context.Background(), testUserID, testToken)

	assert.ErrorIs(t, err, domainErrors.ErrHoldMissing)
}

func TestRetryPaymentSession_FreshHoldMintsNewSecret(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	summary, err := f.useCase.RetryPaymentSession(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.Equal(t, "hold-1", summary.HoldID)
	assert.Equal(t, 1, f.backend.enrollmentCalls)
	assert.Equal(t, 2, f.backend.intentCalls)
}

func TestRetryPaymentSession_StaleHoldRoutesThroughCheckout(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	f.clk.Advance(11 * time.Minute)
	f.backend.holdCreatedAt = f.clk.Now()

	summary, err := f.useCase.RetryPaymentSession(context.Background(), testUserID, testToken)

	require.NoError(t, err)
	assert.Equal(t, "hold-2", summary.HoldID)
	assert.Equal(t, 2, f.backend.enrollmentCalls)
}

func TestReceipt_ConsumedExactlyOnce(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("go-101")

	_, err := f.useCase.BeginCheckout(context.Background(), testUserID, testToken)
	require.NoError(t, err)
	_, err = f.useCase.SubmitPayment(context.Background(), testUserID, testToken)
	require.NoError(t, err)

	record, err := f.useCase.Receipt(context.Background(), testUserID, "pi_1", "succeeded")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", record.PaymentIntentID)

	state, _ := f.store.GetCheckoutState(context.Background(), testUserID)
	assert.Equal(t, checkout.StateIdle, state)

	_, err = f.useCase.Receipt(context.Background(), testUserID, "pi_1", "succeeded")
	assert.ErrorIs(t, err, domainErrors.ErrReceiptUnavailable)
}

func TestReceipt_InvalidParameters(t *testing.T) {
	f := newCheckoutFixture()
	record, err := checkout.NewPurchaseRecord(&checkout.Hold{
		ID: "hold-1", CreatedAt: testBase, CourseIDs: []string{"go-101"},
	}, "pi_1", testBase)
	require.NoError(t, err)
	f.store.lastPurchases[testUserID] = record

	_, err = f.useCase.Receipt(context.Background(), testUserID, "", "succeeded")
	assert.ErrorIs(t, err, domainErrors.ErrReceiptInvalid)

	_, err = f.useCase.Receipt(context.Background(), testUserID, "pi_1", "pending")
	assert.ErrorIs(t, err, domainErrors.ErrReceiptInvalid)

	_, err = f.useCase.Receipt(context.Background(), testUserID, "pi_other", "succeeded")
	assert.ErrorIs(t, err, domainErrors.ErrReceiptInvalid)

	// The record is only consumed by a valid arrival.
	assert.NotNil(t, f.store.lastPurchases[testUserID])
}
