package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/skillforge/checkout-service/internal/domain/catalog"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// CourseReader is the slice of the catalog repository these handlers
// need.
type CourseReader interface {
	ListCourses(ctx context.Context, filter catalog.Filter) ([]*catalog.Course, int, error)
	GetCourseByID(ctx context.Context, id string) (*catalog.Course, error)
}

type CatalogHandler struct {
	courses CourseReader
	log     *logger.Logger
}

func NewCatalogHandler(courses CourseReader, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		courses: courses,
		log:     log,
	}
}

type courseListResponse struct {
	Courses []*catalog.Course `json:"courses"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

func (h *CatalogHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	courses, total, err := h.courses.ListCourses(r.Context(), filter)
	if err != nil {
		h.log.Error("Failed to list courses", "error", err)
		response.WriteDomainError(w, err)
		return
	}
	if courses == nil {
		courses = []*catalog.Course{}
	}

	response.WriteSuccess(w, courseListResponse{
		Courses: courses,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (h *CatalogHandler) HandleGetCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	course, err := h.courses.GetCourseByID(r.Context(), courseID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, course)
}

func parseFilter(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	filter := catalog.Filter{
		SearchTerm: q.Get("search"),
		Category:   q.Get("category"),
	}

	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(q.Get("is_featured")); err == nil && v {
		filter.FeaturedOnly = true
	}

	filter.Normalize()
	return filter
}
