package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
)

func TestDecodeCart_CorruptedPayloadFailsOpen(t *testing.T) {
	for _, payload := range [][]byte{
		[]byte("not json at all"),
		[]byte(`{"items": "should be an array"}`),
		[]byte(`[1, 2, 3]`),
	} {
		c, ok := DecodeCart(payload)
		assert.False(t, ok, "payload %q", payload)
		require.NotNil(t, c)
		assert.True(t, c.IsEmpty())
	}
}

func TestDecodeCart_RoundTrip(t *testing.T) {
	original := cart.NewCart()
	original.Add(cart.Item{CourseID: "go-101", Title: "Go Basics"})
	payload, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, ok := DecodeCart(payload)

	assert.True(t, ok)
	assert.True(t, decoded.Contains("go-101"))
}

func TestDecodeHold_MissingRequiredFields(t *testing.T) {
	hold, ok := DecodeHold([]byte(`{"course_ids": ["go-101"]}`))
	assert.False(t, ok)
	assert.Nil(t, hold)

	hold, ok = DecodeHold([]byte(`{"id": "hold-1"}`))
	assert.False(t, ok)
	assert.Nil(t, hold)

	hold, ok = DecodeHold([]byte(`garbage`))
	assert.False(t, ok)
	assert.Nil(t, hold)
}

func TestDecodeHold_Valid(t *testing.T) {
	original, err := checkout.NewHold("hold-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), []string{"go-101"})
	require.NoError(t, err)
	payload, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, ok := DecodeHold(payload)

	assert.True(t, ok)
	assert.Equal(t, original.ID, decoded.ID)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDecodePaymentSession_FailsOpen(t *testing.T) {
	session, ok := DecodePaymentSession([]byte(`{"hold_id": "hold-1"}`))
	assert.False(t, ok)
	assert.Nil(t, session)

	session, ok = DecodePaymentSession([]byte(`{"client_secret": "cs_1", "hold_id": "hold-1"}`))
	assert.True(t, ok)
	assert.Equal(t, "cs_1", session.ClientSecret)
}

func TestDecodePurchaseRecord_FailsOpen(t *testing.T) {
	record, ok := DecodePurchaseRecord([]byte(`{"total_amount": 10}`))
	assert.False(t, ok)
	assert.Nil(t, record)

	record, ok = DecodePurchaseRecord([]byte(`{"payment_intent_id": "pi_1"}`))
	assert.True(t, ok)
	assert.Equal(t, "pi_1", record.PaymentIntentID)
}
