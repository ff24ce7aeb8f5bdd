package checkout

import (
	"errors"
	"time"
)

// PurchaseRecord is the durable snapshot of the most recent completed
// order. It is written once on confirmed payment and consumed once by
// the receipt view.
type PurchaseRecord struct {
	Courses         []HoldCourse `json:"courses"`
	Buyer           BuyerDetails `json:"buyer"`
	SubTotalAmount  float64      `json:"subtotal_amount"`
	Taxes           float64      `json:"taxes"`
	DiscountAmount  float64      `json:"discount_amount"`
	TotalAmount     float64      `json:"total_amount"`
	PaymentIntentID string       `json:"payment_intent_id"`
	CompletedAt     time.Time    `json:"completed_at"`
}

// NewPurchaseRecord builds the receipt snapshot from the hold that was
// paid. Amounts come from the hold verbatim.
func NewPurchaseRecord(hold *Hold, paymentIntentID string, completedAt time.Time) (*PurchaseRecord, error) {
	if hold == nil {
		return nil, errors.New("hold cannot be nil")
	}
	if paymentIntentID == "" {
		return nil, errors.New("payment intent id cannot be empty")
	}

	courses := make([]HoldCourse, len(hold.Courses))
	copy(courses, hold.Courses)

	return &PurchaseRecord{
		Courses:         courses,
		Buyer:           hold.Buyer,
		SubTotalAmount:  hold.SubTotalAmount,
		Taxes:           hold.Taxes,
		DiscountAmount:  hold.DiscountAmount,
		TotalAmount:     hold.TotalAmount,
		PaymentIntentID: paymentIntentID,
		CompletedAt:     completedAt,
	}, nil
}
