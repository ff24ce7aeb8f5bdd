package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skillforge/checkout-service/internal/domain/catalog"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(conn *Connection) *CourseRepository {
	return &CourseRepository{
		db: conn.GetDB(),
	}
}

const courseColumns = `id, title, description, price, category, instructor_name, image_url,
		level, language, duration_minutes, is_featured, average_rating, total_reviews, created_at`

func (r *CourseRepository) ListCourses(ctx context.Context, filter catalog.Filter) ([]*catalog.Course, int, error) {
	filter.Normalize()

	var conditions []string
	var args []interface{}

	if filter.SearchTerm != "" {
		args = append(args, "%"+strings.ToLower(filter.SearchTerm)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "is_featured = TRUE")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM courses" + where
	var total int
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "courses", countQuery, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(
		"SELECT %s FROM courses%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		courseColumns, where, limitPos, offsetPos,
	)

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "courses", query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*catalog.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*catalog.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "courses", query, id)

	course, err := scanCourseRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrCourseNotFound
		}
		return nil, err
	}

	return course, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourse(rows *sql.Rows) (*catalog.Course, error) {
	return scanCourseRow(rows)
}

func scanCourseRow(row rowScanner) (*catalog.Course, error) {
	var c catalog.Course
	var price sql.NullFloat64
	var description, category, instructorName, imageURL, language sql.NullString

	err := row.Scan(
		&c.ID, &c.Title, &description, &price, &category, &instructorName, &imageURL,
		&c.Level, &language, &c.DurationMinutes, &c.IsFeatured, &c.AverageRating, &c.TotalReviews, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		c.Price = &price.Float64
	}
	c.Description = description.String
	c.Category = category.String
	c.InstructorName = instructorName.String
	c.ImageURL = imageURL.String
	c.Language = language.String

	return &c, nil
}
