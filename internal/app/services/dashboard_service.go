package services

import (
	"context"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories"
)

// DashboardService aggregates the admin landing page counters
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardServiceImpl struct {
	appRepo     repositories.IApplicationRepository
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(appRepo repositories.IApplicationRepository, studentRepo repositories.IStudentRepository, courseRepo repositories.ICourseRepository) DashboardService {
	return &dashboardServiceImpl{appRepo: appRepo, studentRepo: studentRepo, courseRepo: courseRepo}
}

func (s *dashboardServiceImpl) Stats(ctx context.Context) (*models.DashboardStats, error) {
	apps, err := s.appRepo.ApplicationStats(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.CountActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalApplications:    apps.Total,
		PendingApplications:  apps.Pending,
		ApprovedApplications: apps.Approved,
		TotalStudents:        students,
		ActiveCourses:        courses,
	}, nil
}
