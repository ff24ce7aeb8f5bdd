package catalog

import (
	"time"
)

// Course is the storefront's read model of a purchasable course. The
// catalog database is a mirror of the backend's course data; this
// service never writes to it outside of migrations.
type Course struct {
	ID              string
	Title           string
	Description     string
	Price           *float64
	Category        string
	InstructorName  string
	ImageURL        string
	Level           int
	Language        string
	DurationMinutes int
	IsFeatured      bool
	AverageRating   float64
	TotalReviews    int
	CreatedAt       time.Time
}

// Filter narrows a catalog listing. Zero values mean "no constraint";
// Limit falls back to a server-side default when unset.
type Filter struct {
	Limit        int
	Offset       int
	SearchTerm   string
	Category     string
	MinPrice     *float64
	MaxPrice     *float64
	FeaturedOnly bool
}

const DefaultPageSize = 20

func (f *Filter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
