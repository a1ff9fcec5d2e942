package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"regexp"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/coursepdf"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// CourseService defines the interface for catalog operations
type CourseService interface {
	ListCourses(ctx context.Context, includeInactive bool) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (*models.Course, error)
	// DeactivateCourse hides a course; courses are never hard-deleted
	DeactivateCourse(ctx context.Context, id int64) error

	ListRequirements(ctx context.Context, courseID int64) ([]models.CourseRequirement, error)
	CreateRequirement(ctx context.Context, courseID int64, req *dto.CourseRequirementRequest) (*models.CourseRequirement, error)
	UpdateRequirement(ctx context.Context, id int64, req *dto.CourseRequirementRequest) (*models.CourseRequirement, error)
	DeleteRequirement(ctx context.Context, id int64) error

	GetCoursePDF(ctx context.Context, id int64) (*dto.CoursePDFResponse, error)
	UploadCoursePDF(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Course, error)
	// GenerateOutlines renders an outline PDF for every course lacking one,
	// or for all courses when force is set. It returns the number generated.
	GenerateOutlines(ctx context.Context, force bool) (int, error)
}

type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	storage    filestorage.Storage
	pdf        *coursepdf.Generator
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, storage filestorage.Storage, pdf *coursepdf.Generator, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		storage:    storage,
		pdf:        pdf,
		logger:     logger.With().Str("component", "course_service").Logger(),
	}
}

// decorate fills the public URLs of stored files
func (s *courseServiceImpl) decorate(c *models.Course) *models.Course {
	if c == nil {
		return nil
	}
	if c.Image != nil && *c.Image != "" && c.ImageURL == "" {
		c.ImageURL = s.storage.URL(*c.Image)
	}
	if c.CoursePDF != nil && *c.CoursePDF != "" {
		c.CoursePDFURL = s.storage.URL(*c.CoursePDF)
	}
	return c
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, includeInactive bool) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		s.decorate(c)
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(course), nil
}

func applyCourseRequest(c *models.Course, req *dto.CourseRequest) {
	c.Title = strings.TrimSpace(req.Title)
	c.ShortTitle = req.ShortTitle
	c.Description = req.Description
	c.ShortDescription = req.ShortDescription
	c.Duration = req.Duration
	c.Credits = req.Credits
	c.Level = models.CourseLevel(req.Level)
	if c.Level == "" {
		c.Level = models.CourseLevelBeginner
	}
	c.DepositAmount = req.DepositAmount
	c.MonthlyPayment = req.MonthlyPayment
	c.TotalPayment = req.TotalPayment
	c.AssessmentFee = req.AssessmentFee
	c.Fee = req.Fee
	c.RegistrationFee = req.RegistrationFee
	c.Curriculum = req.Curriculum
	c.Prerequisites = req.Prerequisites
	c.Requirements = req.Requirements
	c.CareerOpportunities = req.CareerOpportunities
	c.ImageURL = req.ImageURL
	c.CoursePDFURL = req.CoursePDFURL
	c.IsFeatured = req.IsFeatured
	c.IsActive = req.IsActive == nil || *req.IsActive
	c.IsMathRequired = req.IsMathRequired
	c.DisplayOrder = req.DisplayOrder
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{}
	applyCourseRequest(course, req)
	if _, err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return s.GetCourse(ctx, course.ID)
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCourseRequest(course, req)
	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, id)
}

func (s *courseServiceImpl) DeactivateCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.DeactivateCourse(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deactivated")
	return nil
}

func (s *courseServiceImpl) ListRequirements(ctx context.Context, courseID int64) ([]models.CourseRequirement, error) {
	return s.courseRepo.ListRequirements(ctx, courseID)
}

func applyRequirementRequest(r *models.CourseRequirement, req *dto.CourseRequirementRequest) {
	r.RequirementType = models.RequirementType(req.RequirementType)
	r.Description = strings.TrimSpace(req.Description)
	r.IsRequired = req.IsRequired == nil || *req.IsRequired
	r.Order = req.Order
}

func (s *courseServiceImpl) CreateRequirement(ctx context.Context, courseID int64, req *dto.CourseRequirementRequest) (*models.CourseRequirement, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	r := &models.CourseRequirement{CourseID: courseID}
	applyRequirementRequest(r, req)
	if _, err := s.courseRepo.CreateRequirement(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *courseServiceImpl) UpdateRequirement(ctx context.Context, id int64, req *dto.CourseRequirementRequest) (*models.CourseRequirement, error) {
	r, err := s.courseRepo.GetRequirement(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRequirementRequest(r, req)
	if err := s.courseRepo.UpdateRequirement(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *courseServiceImpl) DeleteRequirement(ctx context.Context, id int64) error {
	return s.courseRepo.DeleteRequirement(ctx, id)
}

func (s *courseServiceImpl) GetCoursePDF(ctx context.Context, id int64) (*dto.CoursePDFResponse, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.HasPDF() {
		return nil, apperrors.ErrCoursePDFNotFound
	}
	return &dto.CoursePDFResponse{PDFURL: course.CoursePDFURL, Title: course.Title}, nil
}

func (s *courseServiceImpl) UploadCoursePDF(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.NewValidationError("Validation failed", map[string]string{"file": "a PDF file is required"})
	}

	relPath, err := filestorage.SaveUpload(ctx, s.storage, file, filestorage.DirCoursePDFs, filestorage.PDFExtensions)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.SetCoursePDF(ctx, id, relPath); err != nil {
		return nil, err
	}
	s.replaced(ctx, course.CoursePDF, relPath)
	return s.GetCourse(ctx, id)
}

// replaced deletes the previous file of a slot, best-effort
func (s *courseServiceImpl) replaced(ctx context.Context, old *string, current string) {
	if old == nil || *old == "" || *old == current {
		return
	}
	if err := s.storage.Delete(ctx, *old); err != nil {
		s.logger.Warn().Err(err).Str("path", *old).Msg("Failed to delete replaced course file")
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

func (s *courseServiceImpl) GenerateOutlines(ctx context.Context, force bool) (int, error) {
	if s.pdf == nil {
		return 0, fmt.Errorf("course pdf generator not configured")
	}
	courses, err := s.courseRepo.ListCourses(ctx, true)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, course := range courses {
		if course.HasPDF() && !force {
			s.logger.Debug().Int64("courseID", course.ID).Msg("Course already has a PDF, skipping")
			continue
		}

		var buf bytes.Buffer
		if err := s.pdf.Render(&buf, course); err != nil {
			return generated, fmt.Errorf("course %d: %w", course.ID, err)
		}
		relPath := path.Join(filestorage.DirCoursePDFs, fmt.Sprintf("%s-outline.pdf", slugify(course.Title)))
		if err := s.storage.Save(ctx, relPath, &buf); err != nil {
			return generated, fmt.Errorf("course %d: %w", course.ID, err)
		}
		if err := s.courseRepo.SetCoursePDF(ctx, course.ID, relPath); err != nil {
			return generated, err
		}
		generated++
		s.logger.Info().Int64("courseID", course.ID).Str("path", relPath).Msg("Course outline generated")
	}
	return generated, nil
}
