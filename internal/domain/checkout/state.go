package checkout

// State is the persisted position of a user's checkout flow. Requests
// are gated by the current state rather than by locks: a second
// operation of the same kind is rejected while one is pending.
type State string

const (
	StateIdle            State = "idle"
	StateHoldCreating    State = "hold_creating"
	StateAwaitingPayment State = "awaiting_payment"
	StateSubmitting      State = "submitting"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// RedirectStatusSucceeded is the gateway's success marker carried on
// the receipt return URL.
const RedirectStatusSucceeded = "succeeded"

var transitions = map[State][]State{
	StateIdle:            {StateHoldCreating},
	StateHoldCreating:    {StateAwaitingPayment, StateIdle},
	StateAwaitingPayment: {StateSubmitting, StateHoldCreating, StateIdle},
	StateSubmitting:      {StateSucceeded, StateFailed, StateHoldCreating},
	StateFailed:          {StateAwaitingPayment, StateHoldCreating, StateIdle},
	StateSucceeded:       {StateIdle},
}

func (s State) CanTransitionTo(target State) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the flow has finished for the current
// attempt. Failed is resubmittable, so only Succeeded is terminal.
func (s State) Terminal() bool {
	return s == StateSucceeded
}

func (s State) Valid() bool {
	switch s {
	case StateIdle, StateHoldCreating, StateAwaitingPayment, StateSubmitting, StateSucceeded, StateFailed:
		return true
	}
	return false
}
