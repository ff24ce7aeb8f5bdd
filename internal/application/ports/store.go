package ports

import (
	"context"
	"time"

	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
)

// UserStateStore is the durable per-user key-value state that survives
// reloads: cart contents, cached hold, payment session, checkout state,
// last-purchase snapshot, verified-token cache and theme preference.
//
// Reads fail open: a corrupted payload is discarded and the zero value
// returned. Writes may fail without aborting the current operation; the
// in-memory result stays authoritative for the request.
type UserStateStore interface {
	GetCart(ctx context.Context, userID string) (*cart.Cart, error)
	SaveCart(ctx context.Context, userID string, c *cart.Cart) error
	ClearCart(ctx context.Context, userID string) error

	GetHold(ctx context.Context, userID string) (*checkout.Hold, error)
	SaveHold(ctx context.Context, userID string, hold *checkout.Hold, ttl time.Duration) error
	ClearHold(ctx context.Context, userID string) error

	GetPaymentSession(ctx context.Context, userID string) (*checkout.PaymentSession, error)
	SavePaymentSession(ctx context.Context, userID string, session *checkout.PaymentSession, ttl time.Duration) error
	ClearPaymentSession(ctx context.Context, userID string) error

	GetCheckoutState(ctx context.Context, userID string) (checkout.State, error)
	SetCheckoutState(ctx context.Context, userID string, state checkout.State) error

	GetLastPurchase(ctx context.Context, userID string) (*checkout.PurchaseRecord, error)
	SetLastPurchase(ctx context.Context, userID string, record *checkout.PurchaseRecord) error
	ClearLastPurchase(ctx context.Context, userID string) error

	// CompletePurchase performs the success-path cleanup atomically
	// from the caller's perspective: write the purchase record, clear
	// the cart, drop the hold and payment session, and mark the
	// checkout state succeeded.
	CompletePurchase(ctx context.Context, userID string, record *checkout.PurchaseRecord) error

	GetTheme(ctx context.Context, userID string) (string, error)
	SetTheme(ctx context.Context, userID string, theme string) error

	CacheVerifiedToken(ctx context.Context, token, userID string, ttl time.Duration) error
	LookupVerifiedToken(ctx context.Context, token string) (string, error)

	// StartOTPCooldown arms the resend cooldown if it is not already
	// running. Returns false plus the remaining wait when it is.
	StartOTPCooldown(ctx context.Context, userID string, cooldown time.Duration) (bool, time.Duration, error)

	// ClearSession removes every key owned by the user: cart, hold,
	// payment session, checkout state, last purchase, cached token and
	// theme. Used on logout and on the unauthorized cascade.
	ClearSession(ctx context.Context, userID, token string) error

	// SweepExpiredHolds drops cached holds whose creation timestamp is
	// past the full backend TTL. Returns the number of holds removed.
	SweepExpiredHolds(ctx context.Context, ttl time.Duration) (int, error)
}
