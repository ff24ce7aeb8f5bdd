package errors

import (
	"errors"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseNotInCart  = errors.New("course not in cart")

	ErrHoldMissing        = errors.New("no enrollment hold for this checkout")
	ErrHoldCreationFailed = errors.New("failed to create enrollment hold")

	ErrPaymentSessionMissing = errors.New("no payment session for this checkout")
	ErrPaymentSessionFailed  = errors.New("failed to initialize payment session")
	ErrGatewayUnavailable    = errors.New("payment gateway unavailable")

	ErrSubmissionNotReady = errors.New("checkout is not ready for submission")
	ErrCheckoutInProgress = errors.New("a checkout operation is already in progress")

	ErrReceiptUnavailable = errors.New("no purchase record to display")
	ErrReceiptInvalid     = errors.New("invalid receipt access")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrOTPCooldownActive  = errors.New("verification code was sent recently")
	ErrBackendUnavailable = errors.New("backend service unavailable")
)
