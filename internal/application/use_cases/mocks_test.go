package use_cases

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
)

// mockStore implements ports.UserStateStore in memory.
type mockStore struct {
	carts         map[string]*cart.Cart
	holds         map[string]*checkout.Hold
	sessions      map[string]*checkout.PaymentSession
	states        map[string]checkout.State
	lastPurchases map[string]*checkout.PurchaseRecord
	themes        map[string]string
	tokens        map[string]string

	completePurchaseCalls int
	clearSessionCalls     int
	cooldownArmed         bool

	saveCartErr error
	getCartErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		carts:         make(map[string]*cart.Cart),
		holds:         make(map[string]*checkout.Hold),
		sessions:      make(map[string]*checkout.PaymentSession),
		states:        make(map[string]checkout.State),
		lastPurchases: make(map[string]*checkout.PurchaseRecord),
		themes:        make(map[string]string),
		tokens:        make(map[string]string),
	}
}

func (m *mockStore) GetCart(_ context.Context, userID string) (*cart.Cart, error) {
	if m.getCartErr != nil {
		return nil, m.getCartErr
	}
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	return cart.NewCart(), nil
}

func (m *mockStore) SaveCart(_ context.Context, userID string, c *cart.Cart) error {
	if m.saveCartErr != nil {
		return m.saveCartErr
	}
	m.carts[userID] = c
	return nil
}

func (m *mockStore) ClearCart(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

func (m *mockStore) GetHold(_ context.Context, userID string) (*checkout.Hold, error) {
	return m.holds[userID], nil
}

func (m *mockStore) SaveHold(_ context.Context, userID string, hold *checkout.Hold, _ time.Duration) error {
	m.holds[userID] = hold
	return nil
}

func (m *mockStore) ClearHold(_ context.Context, userID string) error {
	delete(m.holds, userID)
	return nil
}

func (m *mockStore) GetPaymentSession(_ context.Context, userID string) (*checkout.PaymentSession, error) {
	return m.sessions[userID], nil
}

func (m *mockStore) SavePaymentSession(_ context.Context, userID string, session *checkout.PaymentSession, _ time.Duration) error {
	m.sessions[userID] = session
	return nil
}

func (m *mockStore) ClearPaymentSession(_ context.Context, userID string) error {
	delete(m.sessions, userID)
	return nil
}

func (m *mockStore) GetCheckoutState(_ context.Context, userID string) (checkout.State, error) {
	if state, ok := m.states[userID]; ok {
		return state, nil
	}
	return checkout.StateIdle, nil
}

func (m *mockStore) SetCheckoutState(_ context.Context, userID string, state checkout.State) error {
	m.states[userID] = state
	return nil
}

func (m *mockStore) GetLastPurchase(_ context.Context, userID string) (*checkout.PurchaseRecord, error) {
	return m.lastPurchases[userID], nil
}

func (m *mockStore) SetLastPurchase(_ context.Context, userID string, record *checkout.PurchaseRecord) error {
	m.lastPurchases[userID] = record
	return nil
}

func (m *mockStore) ClearLastPurchase(_ context.Context, userID string) error {
	delete(m.lastPurchases, userID)
	return nil
}

func (m *mockStore) CompletePurchase(_ context.Context, userID string, record *checkout.PurchaseRecord) error {
	m.completePurchaseCalls++
	m.lastPurchases[userID] = record
	delete(m.carts, userID)
	delete(m.holds, userID)
	delete(m.sessions, userID)
	m.states[userID] = checkout.StateSucceeded
	return nil
}

func (m *mockStore) GetTheme(_ context.Context, userID string) (string, error) {
	if theme, ok := m.themes[userID]; ok {
		return theme, nil
	}
	return "light", nil
}

func (m *mockStore) SetTheme(_ context.Context, userID, theme string) error {
	m.themes[userID] = theme
	return nil
}

func (m *mockStore) CacheVerifiedToken(_ context.Context, token, userID string, _ time.Duration) error {
	m.tokens[token] = userID
	return nil
}

func (m *mockStore) LookupVerifiedToken(_ context.Context, token string) (string, error) {
	return m.tokens[token], nil
}

func (m *mockStore) StartOTPCooldown(_ context.Context, _ string, cooldown time.Duration) (bool, time.Duration, error) {
	if m.cooldownArmed {
		return false, cooldown / 2, nil
	}
	m.cooldownArmed = true
	return true, cooldown, nil
}

func (m *mockStore) ClearSession(_ context.Context, userID, token string) error {
	m.clearSessionCalls++
	delete(m.carts, userID)
	delete(m.holds, userID)
	delete(m.sessions, userID)
	delete(m.states, userID)
	delete(m.lastPurchases, userID)
	delete(m.themes, userID)
	delete(m.tokens, token)
	return nil
}

func (m *mockStore) SweepExpiredHolds(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

// mockBackend implements ports.BackendAPI.
type mockBackend struct {
	holdCreatedAt time.Time
	holdTotal     float64

	enrollmentCalls int
	intentCalls     int

	createEnrollmentErr error
	createIntentErr     error
}

func (m *mockBackend) CreateEnrollment(_ context.Context, _ string, courseIDs []string) (*checkout.Hold, error) {
	m.enrollmentCalls++
	if m.createEnrollmentErr != nil {
		return nil, m.createEnrollmentErr
	}

	hold, err := checkout.NewHold(fmt.Sprintf("hold-%d", m.enrollmentCalls), m.holdCreatedAt, courseIDs)
	if err != nil {
		return nil, err
	}
	hold.TotalAmount = m.holdTotal
	return hold, nil
}

func (m *mockBackend) CreatePaymentIntent(_ context.Context, _ string, holdID string) (string, error) {
	m.intentCalls++
	if m.createIntentErr != nil {
		return "", m.createIntentErr
	}
	return "cs_" + holdID, nil
}

func (m *mockBackend) VerifyToken(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (m *mockBackend) SendOTP(_ context.Context, _, _, _ string) (string, error) {
	return "code sent", nil
}

func (m *mockBackend) VerifyOTP(_ context.Context, _, _, _, _ string) error {
	return nil
}

func (m *mockBackend) Logout(_ context.Context, _ string) error {
	return nil
}

// mockGateway implements ports.PaymentGateway.
type mockGateway struct {
	confirmation *ports.Confirmation
	confirmErr   error

	confirmCalls    int
	idempotencyKeys []string
	secrets         []string
}

func (m *mockGateway) Confirm(_ context.Context, clientSecret, idempotencyKey string) (*ports.Confirmation, error) {
	m.confirmCalls++
	m.secrets = append(m.secrets, clientSecret)
	m.idempotencyKeys = append(m.idempotencyKeys, idempotencyKey)
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	return m.confirmation, nil
}

// mockPublisher implements ports.PurchasePublisher.
type mockPublisher struct {
	enabled bool
	events  []ports.PurchaseCompletedEvent
}

func (m *mockPublisher) Enabled() bool {
	return m.enabled
}

func (m *mockPublisher) PublishPurchaseCompleted(_ context.Context, event ports.PurchaseCompletedEvent) error {
	m.events = append(m.events, event)
	return nil
}
