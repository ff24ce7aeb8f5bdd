package monitoring

// CheckoutFunnelMetrics groups the counters recorded across one
// checkout attempt so handlers do not reach for package globals.
type CheckoutFunnelMetrics struct{}

func NewCheckoutFunnelMetrics() *CheckoutFunnelMetrics {
	return &CheckoutFunnelMetrics{}
}

func (m *CheckoutFunnelMetrics) RecordHoldAttempt() {
	RecordHoldCreationAttempt()
}

func (m *CheckoutFunnelMetrics) RecordHoldSuccess(reused bool) {
	if reused {
		RecordHoldReused()
		return
	}
	RecordHoldCreationSuccess()
}

func (m *CheckoutFunnelMetrics) RecordHoldFailure(reason string) {
	RecordHoldCreationFailure(reason)
}

func (m *CheckoutFunnelMetrics) RecordSubmission() {
	RecordPaymentSubmission()
}

func (m *CheckoutFunnelMetrics) RecordSubmissionOutcome(succeeded, declined, expired bool) {
	switch {
	case succeeded:
		RecordPaymentSuccess()
	case expired:
		RecordStaleSubmission()
	case declined:
		RecordPaymentDeclined()
	}
}

func (m *CheckoutFunnelMetrics) RecordSubmissionError(reason string) {
	RecordPaymentFailure(reason)
}
