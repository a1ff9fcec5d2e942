package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/dberrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ITestimonialRepository defines testimonial persistence
type ITestimonialRepository interface {
	ListTestimonials(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error)
	GetTestimonial(ctx context.Context, id int64) (*models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *models.Testimonial) (int64, error)
	UpdateTestimonial(ctx context.Context, t *models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id int64) error
}

var testimonialColumns = []string{
	"t.id", "t.student_name", "t.course_id", "COALESCE(c.title, '')", "t.content", "t.rating", "t.is_featured", "t.created_at",
}

// TestimonialRepository handles testimonial database operations
type TestimonialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTestimonialRepository creates a new TestimonialRepository
func NewTestimonialRepository(db *pgxpool.Pool) *TestimonialRepository {
	return &TestimonialRepository{db: db, sb: newBuilder()}
}

func scanTestimonial(row scanner) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	err := row.Scan(&t.ID, &t.StudentName, &t.CourseID, &t.CourseTitle, &t.Content, &t.Rating, &t.IsFeatured, &t.CreatedAt)
	return t, err
}

func (r *TestimonialRepository) selectTestimonials() squirrel.SelectBuilder {
	return r.sb.Select(testimonialColumns...).From("testimonials t").LeftJoin("courses c ON c.id = t.course_id")
}

// ListTestimonials lists testimonials newest first
func (r *TestimonialRepository) ListTestimonials(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error) {
	q := r.selectTestimonials().OrderBy("t.created_at DESC")
	if featuredOnly {
		q = q.Where(squirrel.Eq{"t.is_featured": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list testimonials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing testimonials")
		return nil, fmt.Errorf("error listing testimonials: %w", err)
	}
	defer rows.Close()

	out := []*models.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning testimonial: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTestimonial retrieves a testimonial
func (r *TestimonialRepository) GetTestimonial(ctx context.Context, id int64) (*models.Testimonial, error) {
	sql, args, err := r.selectTestimonials().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get testimonial query: %w", err)
	}
	t, err := scanTestimonial(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting testimonial: %w", err)
	}
	return t, nil
}

// CreateTestimonial inserts a testimonial
func (r *TestimonialRepository) CreateTestimonial(ctx context.Context, t *models.Testimonial) (int64, error) {
	sql, args, err := r.sb.Insert("testimonials").
		Columns("student_name", "course_id", "content", "rating", "is_featured").
		Values(t.StudentName, t.CourseID, t.Content, t.Rating, t.IsFeatured).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create testimonial query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error creating testimonial: %w", err)
	}
	return t.ID, nil
}

// UpdateTestimonial replaces a testimonial's fields
func (r *TestimonialRepository) UpdateTestimonial(ctx context.Context, t *models.Testimonial) error {
	sql, args, err := r.sb.Update("testimonials").
		SetMap(map[string]interface{}{
			"student_name": t.StudentName,
			"course_id":    t.CourseID,
			"content":      t.Content,
			"rating":       t.Rating,
			"is_featured":  t.IsFeatured,
		}).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update testimonial query: %w", err)
	}
	err = execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
	if dberrors.IsForeignKeyViolation(err) {
		return apperrors.ErrCourseNotFound
	}
	return err
}

// DeleteTestimonial removes a testimonial
func (r *TestimonialRepository) DeleteTestimonial(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("testimonials").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete testimonial query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
