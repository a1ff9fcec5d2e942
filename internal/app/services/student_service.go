package services

import (
	"context"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// StudentService defines the interface for student record management.
// Students are only created by approving an application.
type StudentService interface {
	ListStudents(ctx context.Context, status *models.StudentStatus, page, size int) (*dto.StudentListResponse, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, courseRepo repositories.ICourseRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		logger:      logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentServiceImpl) ListStudents(ctx context.Context, status *models.StudentStatus, page, size int) (*dto.StudentListResponse, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.NewBadRequestError("invalid student status")
	}
	_, size = helpers.CalculateOffsetLimit(page, size)
	if page < 1 {
		page = helpers.DefaultPage
	}
	students, total, err := s.studentRepo.ListStudents(ctx, status, page, size)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return &dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

func (s *studentServiceImpl) apply(ctx context.Context, st *models.Student, req *dto.StudentRequest) error {
	st.Name = strings.TrimSpace(req.Name)
	st.Surname = strings.TrimSpace(req.Surname)
	st.Email = strings.ToLower(strings.TrimSpace(req.Email))
	st.Phone = strings.TrimSpace(req.Phone)
	st.Address = req.Address
	st.CertificateID = req.CertificateID
	st.CompletionDate = req.CompletionDate
	if req.EnrollmentDate != nil {
		st.EnrollmentDate = *req.EnrollmentDate
	}
	if req.Status != "" {
		st.Status = models.StudentStatus(req.Status)
	}
	st.CourseID, st.CourseTitle = nil, ""
	if req.CourseID != nil {
		course, err := s.courseRepo.GetCourseByID(ctx, *req.CourseID)
		if err != nil {
			return err
		}
		id := course.ID
		st.CourseID = &id
		st.CourseTitle = course.Title
	}
	return nil
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	st, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, st, req); err != nil {
		return nil, err
	}
	if err := s.studentRepo.UpdateStudent(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
