package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var courseColumns = []string{
	"id", "title", "short_title", "description", "short_description", "duration", "credits", "level",
	"deposit_amount", "monthly_payment", "total_payment", "assessment_fee", "fee", "registration_fee",
	"curriculum", "prerequisites", "requirements", "career_opportunities",
	"image", "image_url", "course_pdf", "course_pdf_url",
	"is_featured", "is_active", "is_math_required", "display_order", "created_at", "updated_at",
}

var requirementColumns = []string{"id", "course_id", "requirement_type", "description", "is_required", "sort_order"}

// CourseRepository handles course and course requirement database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanCourse(row scanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.Title, &c.ShortTitle, &c.Description, &c.ShortDescription, &c.Duration, &c.Credits, &c.Level,
		&c.DepositAmount, &c.MonthlyPayment, &c.TotalPayment, &c.AssessmentFee, &c.Fee, &c.RegistrationFee,
		&c.Curriculum, &c.Prerequisites, &c.Requirements, &c.CareerOpportunities,
		&c.Image, &c.ImageURL, &c.CoursePDF, &c.CoursePDFURL,
		&c.IsFeatured, &c.IsActive, &c.IsMathRequired, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func courseValues(c *models.Course) map[string]interface{} {
	return map[string]interface{}{
		"title":                c.Title,
		"short_title":          c.ShortTitle,
		"description":          c.Description,
		"short_description":    c.ShortDescription,
		"duration":             c.Duration,
		"credits":              c.Credits,
		"level":                c.Level,
		"deposit_amount":       c.DepositAmount,
		"monthly_payment":      c.MonthlyPayment,
		"total_payment":        c.TotalPayment,
		"assessment_fee":       c.AssessmentFee,
		"fee":                  c.Fee,
		"registration_fee":     c.RegistrationFee,
		"curriculum":           c.Curriculum,
		"prerequisites":        c.Prerequisites,
		"requirements":         c.Requirements,
		"career_opportunities": c.CareerOpportunities,
		"image":                c.Image,
		"image_url":            c.ImageURL,
		"course_pdf":           c.CoursePDF,
		"course_pdf_url":       c.CoursePDFURL,
		"is_featured":          c.IsFeatured,
		"is_active":            c.IsActive,
		"is_math_required":     c.IsMathRequired,
		"display_order":        c.DisplayOrder,
	}
}

func (r *CourseRepository) queryCourses(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// CreateCourse inserts a course and returns its id
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		SetMap(courseValues(course)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("title", course.Title).Msg("Error creating course")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return course.ID, nil
}

// GetCourseByID retrieves a course with its requirements
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	if course.RequirementsList, err = r.ListRequirements(ctx, id); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses lists courses by display order, newest first within the same order
func (r *CourseRepository) ListCourses(ctx context.Context, includeInactive bool) ([]*models.Course, error) {
	q := r.sb.Select(courseColumns...).From("courses").OrderBy("display_order ASC", "created_at DESC")
	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	courses, err := r.queryCourses(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return courses, nil
	}

	ids := make([]int64, len(courses))
	byID := make(map[int64]*models.Course, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
		byID[c.ID] = c
		c.RequirementsList = []models.CourseRequirement{}
	}

	reqs, err := r.listRequirementsWhere(ctx, squirrel.Eq{"course_id": ids})
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		if c, ok := byID[req.CourseID]; ok {
			c.RequirementsList = append(c.RequirementsList, req)
		}
	}
	return courses, nil
}

// UpdateCourse replaces the editable columns of a course
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	values := courseValues(course)
	values["updated_at"] = time.Now()

	sql, args, err := r.sb.Update("courses").
		SetMap(values).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeactivateCourse hides a course from the public catalog; rows are never hard deleted
func (r *CourseRepository) DeactivateCourse(ctx context.Context, id int64) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_active": false})
}

// SetCoursePDF records the storage path of a course outline
func (r *CourseRepository) SetCoursePDF(ctx context.Context, id int64, path string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"course_pdf": path})
}

func (r *CourseRepository) updateColumns(ctx context.Context, id int64, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	sql, args, err := r.sb.Update("courses").SetMap(values).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error updating course columns")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CountActiveCourses counts courses visible in the public catalog
func (r *CourseRepository) CountActiveCourses(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("courses").Where(squirrel.Eq{"is_active": true}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting active courses: %w", err)
	}
	return count, nil
}

// FindCoursesByTitleFragment matches without LIKE so fragments containing % or _ are literal
func (r *CourseRepository) FindCoursesByTitleFragment(ctx context.Context, fragment string) ([]*models.Course, error) {
	return r.queryCourses(ctx, titleFragmentQuery(r.sb, fragment))
}

// titleFragmentQuery selects every course whose title contains fragment, lowest id first
func titleFragmentQuery(sb squirrel.StatementBuilderType, fragment string) squirrel.SelectBuilder {
	return sb.Select(courseColumns...).
		From("courses").
		Where("POSITION(LOWER(?) IN LOWER(title)) > 0", fragment).
		OrderBy("id ASC")
}

// FindCourseByTitle returns apperrors.ErrCourseNotFound when nothing matches
func (r *CourseRepository) FindCourseByTitle(ctx context.Context, title string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where("LOWER(title) = LOWER(?)", title).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error finding course by title: %w", err)
	}
	return course, nil
}

func (r *CourseRepository) listRequirementsWhere(ctx context.Context, pred interface{}) ([]models.CourseRequirement, error) {
	sql, args, err := r.sb.Select(requirementColumns...).
		From("course_requirements").
		Where(pred).
		OrderBy("course_id ASC", "sort_order ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build requirements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying course requirements")
		return nil, fmt.Errorf("error querying course requirements: %w", err)
	}
	defer rows.Close()

	reqs := []models.CourseRequirement{}
	for rows.Next() {
		var req models.CourseRequirement
		if err := rows.Scan(&req.ID, &req.CourseID, &req.RequirementType, &req.Description, &req.IsRequired, &req.Order); err != nil {
			return nil, fmt.Errorf("error scanning course requirement: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ListRequirements returns the requirements of a course in display order
func (r *CourseRepository) ListRequirements(ctx context.Context, courseID int64) ([]models.CourseRequirement, error) {
	return r.listRequirementsWhere(ctx, squirrel.Eq{"course_id": courseID})
}

// GetRequirement retrieves a single requirement
func (r *CourseRepository) GetRequirement(ctx context.Context, id int64) (*models.CourseRequirement, error) {
	reqs, err := r.listRequirementsWhere(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperrors.ErrCourseRequirementNotFound
	}
	return &reqs[0], nil
}

// CreateRequirement inserts a requirement for an existing course
func (r *CourseRepository) CreateRequirement(ctx context.Context, req *models.CourseRequirement) (int64, error) {
	sql, args, err := r.sb.Insert("course_requirements").
		Columns("course_id", "requirement_type", "description", "is_required", "sort_order").
		Values(req.CourseID, req.RequirementType, req.Description, req.IsRequired, req.Order).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create requirement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&req.ID); err != nil {
		logger.Error().Err(err).Int64("courseID", req.CourseID).Msg("Error creating course requirement")
		return 0, fmt.Errorf("error creating course requirement: %w", err)
	}
	return req.ID, nil
}

// UpdateRequirement replaces a requirement's editable fields
func (r *CourseRepository) UpdateRequirement(ctx context.Context, req *models.CourseRequirement) error {
	sql, args, err := r.sb.Update("course_requirements").
		SetMap(map[string]interface{}{
			"requirement_type": req.RequirementType,
			"description":      req.Description,
			"is_required":      req.IsRequired,
			"sort_order":       req.Order,
		}).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update requirement query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course requirement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseRequirementNotFound
	}
	return nil
}

// DeleteRequirement removes a requirement
func (r *CourseRepository) DeleteRequirement(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("course_requirements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete requirement query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course requirement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseRequirementNotFound
	}
	return nil
}
