package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domainErrors.ErrCartEmpty, http.StatusBadRequest},
		{domainErrors.ErrCourseNotFound, http.StatusNotFound},
		{domainErrors.ErrHoldMissing, http.StatusConflict},
		{domainErrors.ErrCheckoutInProgress, http.StatusConflict},
		{domainErrors.ErrGatewayUnavailable, http.StatusBadGateway},
		{domainErrors.ErrBackendUnavailable, http.StatusBadGateway},
		{domainErrors.ErrUnauthorized, http.StatusUnauthorized},
		{domainErrors.ErrReceiptInvalid, http.StatusUnauthorized},
		{domainErrors.ErrReceiptUnavailable, http.StatusUnauthorized},
		{domainErrors.ErrOTPCooldownActive, http.StatusTooManyRequests},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, resp := MapDomainError(tt.err)
		assert.Equal(t, tt.wantStatus, status, "error %v", tt.err)
		assert.NotEmpty(t, resp.Message)
	}
}

func TestWriteDomainError_UnauthorizedCarriesLoginRedirect(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDomainError(rec, domainErrors.ErrReceiptInvalid)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/login", body.RedirectTo)

	// No purchase data leaks on an invalid receipt arrival.
	assert.NotContains(t, rec.Body.String(), "payment_intent_id")
}

func TestWriteDomainError_NonAuthErrorsHaveNoRedirect(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDomainError(rec, domainErrors.ErrCartEmpty)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.RedirectTo)
}
