package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/checkout-service/internal/config"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.BackendConfig{
		BaseURL:        serverURL,
		TimeoutSeconds: 2,
	}, logger.NewLogger())
}

func TestCreateEnrollment_MapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/enrollment", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "enrollment created",
			"response": {
				"_id": "enr-1",
				"_createdAtDate": "2025-06-01T12:00:00Z",
				"subTotalAmount": 49.99,
				"taxes": 5.0,
				"discountAmount": 0,
				"totalAmount": 54.99,
				"userDetails": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
				"enrollmentDetails": [{"courseId": "go-101", "courseName": "Go Basics", "price": 49.99}]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	hold, err := client.CreateEnrollment(context.Background(), "tok-1", []string{"go-101"})

	require.NoError(t, err)
	assert.Equal(t, "enr-1", hold.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), hold.CreatedAt)
	assert.Equal(t, []string{"go-101"}, hold.CourseIDs)
	assert.Equal(t, 54.99, hold.TotalAmount)
	assert.Equal(t, "Ada", hold.Buyer.FirstName)
	require.Len(t, hold.Courses, 1)
	assert.Equal(t, "Go Basics", hold.Courses[0].Title)
}

func TestCreateEnrollment_UnauthorizedIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateEnrollment(context.Background(), "dead-token", []string{"go-101"})

	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestCreateEnrollment_ServerErrorIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateEnrollment(context.Background(), "tok-1", []string{"go-101"})

	assert.ErrorIs(t, err, domainErrors.ErrBackendUnavailable)
}

func TestCreateEnrollment_TransportFailureIsNormalized(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.CreateEnrollment(context.Background(), "tok-1", []string{"go-101"})

	assert.ErrorIs(t, err, domainErrors.ErrBackendUnavailable)
}

func TestCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/create-payment-intent", r.URL.Path)
		w.Write([]byte(`{"success": true, "response": {"clientSecret": "cs_test_123"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	secret, err := client.CreatePaymentIntent(context.Background(), "tok-1", "enr-1")

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", secret)
}

func TestCreatePaymentIntent_EmptySecretFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "response": {}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreatePaymentIntent(context.Background(), "tok-1", "enr-1")

	assert.ErrorIs(t, err, domainErrors.ErrPaymentSessionFailed)
}

func TestVerifyToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/auth/verify", r.URL.Path)
		if calls == 1 {
			w.Write([]byte(`{"success": true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ok, err := client.VerifyToken(context.Background(), "live-token")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.VerifyToken(context.Background(), "dead-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateEnrollment_EnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "message": "course unavailable"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateEnrollment(context.Background(), "tok-1", []string{"go-101"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "course unavailable")
}
