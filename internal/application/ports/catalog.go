package ports

import (
	"context"

	"github.com/skillforge/checkout-service/internal/domain/catalog"
)

type CourseRepository interface {
	ListCourses(ctx context.Context, filter catalog.Filter) ([]*catalog.Course, int, error)
	GetCourseByID(ctx context.Context, id string) (*catalog.Course, error)
}
