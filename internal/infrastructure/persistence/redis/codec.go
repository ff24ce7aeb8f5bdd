package redis

import (
	"encoding/json"

	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
)

// Decode helpers fail open: a payload that does not parse yields
// (zero value, false) and the caller discards the key. A read must
// never crash the flow because of what a previous session wrote.

func DecodeCart(payload []byte) (*cart.Cart, bool) {
	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return cart.NewCart(), false
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return &c, true
}

func DecodeHold(payload []byte) (*checkout.Hold, bool) {
	var h checkout.Hold
	if err := json.Unmarshal(payload, &h); err != nil {
		return nil, false
	}
	if h.ID == "" || h.CreatedAt.IsZero() {
		return nil, false
	}
	return &h, true
}

func DecodePaymentSession(payload []byte) (*checkout.PaymentSession, bool) {
	var s checkout.PaymentSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false
	}
	if s.ClientSecret == "" || s.HoldID == "" {
		return nil, false
	}
	return &s, true
}

func DecodePurchaseRecord(payload []byte) (*checkout.PurchaseRecord, bool) {
	var r checkout.PurchaseRecord
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, false
	}
	if r.PaymentIntentID == "" {
		return nil, false
	}
	return &r, true
}
