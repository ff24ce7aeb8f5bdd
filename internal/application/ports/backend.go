package ports

import (
	"context"

	"github.com/skillforge/checkout-service/internal/domain/checkout"
)

// BackendAPI is the remote LMS backend. All business decisions
// (pricing, enrollment validity, authentication) live there; transport
// failures are normalized into domain errors before they reach
// application state.
type BackendAPI interface {
	// CreateEnrollment snapshots the given course IDs into a
	// server-side hold with a computed financial breakdown.
	CreateEnrollment(ctx context.Context, token string, courseIDs []string) (*checkout.Hold, error)

	// CreatePaymentIntent requests a gateway client secret scoped to
	// the hold.
	CreatePaymentIntent(ctx context.Context, token, holdID string) (string, error)

	// VerifyToken checks token liveness. A definitive "no" is reported
	// as (false, nil); transport trouble as an error.
	VerifyToken(ctx context.Context, token string) (bool, error)

	SendOTP(ctx context.Context, token, channel, value string) (string, error)
	VerifyOTP(ctx context.Context, token, channel, value, code string) error

	Logout(ctx context.Context, token string) error
}
