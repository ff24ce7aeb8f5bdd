package checkout

import (
	"errors"
	"sort"
	"time"
)

// BuyerDetails is the backend's snapshot of the purchaser at hold
// creation time.
type BuyerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	PhoneCode string `json:"phone_code,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type HoldCourse struct {
	CourseID string  `json:"course_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
}

// Hold is a server-issued, time-limited claim on a set of courses at a
// fixed price. The client caches it for validity checks only; the
// backend remains the source of truth for all amounts.
type Hold struct {
	ID             string       `json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	CourseIDs      []string     `json:"course_ids"`
	Courses        []HoldCourse `json:"courses"`
	Buyer          BuyerDetails `json:"buyer"`
	SubTotalAmount float64      `json:"subtotal_amount"`
	Taxes          float64      `json:"taxes"`
	DiscountAmount float64      `json:"discount_amount"`
	TotalAmount    float64      `json:"total_amount"`
}

func NewHold(id string, createdAt time.Time, courseIDs []string) (*Hold, error) {
	if id == "" {
		return nil, errors.New("hold id cannot be empty")
	}
	if createdAt.IsZero() {
		return nil, errors.New("hold creation time cannot be zero")
	}
	if len(courseIDs) == 0 {
		return nil, errors.New("hold course ids cannot be empty")
	}

	return &Hold{
		ID:        id,
		CreatedAt: createdAt,
		CourseIDs: courseIDs,
	}, nil
}

// Fresh reports whether the hold is still inside the conservative
// client-side window. The window is deliberately shorter than the
// backend TTL so a submission started near the edge cannot land on an
// already-expired hold.
func (h *Hold) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(h.CreatedAt) < window
}

// Expired reports whether the hold is past the full backend TTL.
func (h *Hold) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(h.CreatedAt) >= ttl
}

// MatchesCart reports whether the hold was minted from exactly the
// given set of course IDs, ignoring order.
func (h *Hold) MatchesCart(courseIDs []string) bool {
	if len(h.CourseIDs) != len(courseIDs) {
		return false
	}

	held := make([]string, len(h.CourseIDs))
	copy(held, h.CourseIDs)
	wanted := make([]string, len(courseIDs))
	copy(wanted, courseIDs)
	sort.Strings(held)
	sort.Strings(wanted)

	for i := range held {
		if held[i] != wanted[i] {
			return false
		}
	}
	return true
}
