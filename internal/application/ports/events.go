package ports

import (
	"context"
	"time"
)

type PurchaseCompletedEvent struct {
	UserID          string    `json:"user_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	CourseIDs       []string  `json:"course_ids"`
	TotalAmount     float64   `json:"total_amount"`
	CompletedAt     time.Time `json:"completed_at"`
}

// PurchasePublisher emits purchase-completed events for downstream
// consumers (analytics, notifications). Publication is best effort and
// never blocks the checkout success path.
type PurchasePublisher interface {
	Enabled() bool
	PublishPurchaseCompleted(ctx context.Context, event PurchaseCompletedEvent) error
}
