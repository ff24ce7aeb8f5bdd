package ports

import (
	"context"
)

// Confirmation is the gateway's answer to a confirm call. Status equals
// checkout.RedirectStatusSucceeded on success; Message carries the
// gateway's human-readable rejection verbatim otherwise.
type Confirmation struct {
	PaymentIntentID string
	Status          string
	Message         string
}

// PaymentGateway is the opaque external payment service. A client
// secret is consumed exactly once; retries carry an idempotency key so
// a duplicate confirm cannot double-charge.
type PaymentGateway interface {
	Confirm(ctx context.Context, clientSecret, idempotencyKey string) (*Confirmation, error)
}
