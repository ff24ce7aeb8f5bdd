package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrCartEmpty: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	domainErrors.ErrCourseNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Course not found",
	},
	domainErrors.ErrCourseNotInCart: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Course is not in the cart",
	},
	domainErrors.ErrHoldMissing: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "No enrollment hold exists for this checkout",
	},
	domainErrors.ErrHoldCreationFailed: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Could not reserve the selected courses",
	},
	domainErrors.ErrPaymentSessionMissing: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "No payment session exists for this checkout",
	},
	domainErrors.ErrPaymentSessionFailed: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Could not start a payment session",
	},
	domainErrors.ErrGatewayUnavailable: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Payment gateway is unavailable",
	},
	domainErrors.ErrSubmissionNotReady: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Checkout is not ready for payment submission",
	},
	domainErrors.ErrCheckoutInProgress: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "A payment submission is already in progress",
	},
	domainErrors.ErrReceiptUnavailable: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "No purchase record is available",
	},
	domainErrors.ErrReceiptInvalid: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Receipt request could not be validated",
	},
	domainErrors.ErrUnauthorized: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Authentication required",
	},
	domainErrors.ErrOTPCooldownActive: {
		HTTPStatus: http.StatusTooManyRequests,
		Status:     StatusError,
		Message:    "Please wait before requesting another code",
	},
	domainErrors.ErrBackendUnavailable: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Upstream service is unavailable",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message)
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error")
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	if statusCode == http.StatusUnauthorized {
		errorResponse.RedirectTo = "/login"
	}
	WriteJSON(w, statusCode, errorResponse)
}
