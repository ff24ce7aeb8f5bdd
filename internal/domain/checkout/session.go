package checkout

import (
	"errors"
	"time"
)

// PaymentSession is an opaque gateway authorization scoped to one hold.
// It is consumed exactly once by a successful confirmation; a consumed
// or expired session must never be reused.
type PaymentSession struct {
	ClientSecret string    `json:"client_secret"`
	HoldID       string    `json:"hold_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPaymentSession(clientSecret, holdID string, createdAt time.Time) (*PaymentSession, error) {
	if clientSecret == "" {
		return nil, errors.New("client secret cannot be empty")
	}
	if holdID == "" {
		return nil, errors.New("hold id cannot be empty")
	}

	return &PaymentSession{
		ClientSecret: clientSecret,
		HoldID:       holdID,
		CreatedAt:    createdAt,
	}, nil
}

// BelongsTo reports whether the session authorizes payment for the
// given hold.
func (s *PaymentSession) BelongsTo(holdID string) bool {
	return s.HoldID == holdID
}
