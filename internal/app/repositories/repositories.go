package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/db"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ICourseRepository defines catalog persistence
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, includeInactive bool) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeactivateCourse(ctx context.Context, id int64) error
	SetCoursePDF(ctx context.Context, id int64, path string) error
	CountActiveCourses(ctx context.Context) (int64, error)

	// FindCoursesByTitleFragment returns courses whose title contains fragment
	// (case-insensitive), lowest id first.
	FindCoursesByTitleFragment(ctx context.Context, fragment string) ([]*models.Course, error)
	// FindCourseByTitle returns the lowest-id course whose title equals title (case-insensitive).
	FindCourseByTitle(ctx context.Context, title string) (*models.Course, error)

	ListRequirements(ctx context.Context, courseID int64) ([]models.CourseRequirement, error)
	GetRequirement(ctx context.Context, id int64) (*models.CourseRequirement, error)
	CreateRequirement(ctx context.Context, req *models.CourseRequirement) (int64, error)
	UpdateRequirement(ctx context.Context, req *models.CourseRequirement) error
	DeleteRequirement(ctx context.Context, id int64) error
}

// IApplicationRepository defines application persistence
type IApplicationRepository interface {
	CreateApplication(ctx context.Context, app *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error)
	UpdateApplication(ctx context.Context, app *models.Application) error
	SetApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	RejectApplication(ctx context.Context, id int64, reason *string) error
	SetFeeVerified(ctx context.Context, id int64, verified bool) error
	SetApplicationDocuments(ctx context.Context, id int64, docs models.DocumentSet) error
	DeleteApplication(ctx context.Context, id int64) error
	ApplicationStats(ctx context.Context) (models.ApplicationStats, error)
}

// IStudentRepository defines student persistence
type IStudentRepository interface {
	// CreateStudent returns apperrors.ErrStudentExists when the application already has a student.
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByApplicationID(ctx context.Context, applicationID int64) (*models.Student, error)
	ListStudents(ctx context.Context, status *models.StudentStatus, page, size int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	CountStudents(ctx context.Context) (int64, error)
}

// IAdminRepository defines back-office account persistence
type IAdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, admin *models.AdminUser) (int64, error)
	UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64) error
}

// scanner is implemented by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository          *CourseRepository
	ApplicationRepository     *ApplicationRepository
	StudentRepository         *StudentRepository
	AdminRepository           *AdminRepository
	TeamMemberRepository      *TeamMemberRepository
	GalleryRepository         *GalleryRepository
	NewsletterRepository      *NewsletterRepository
	NewsRepository            *NewsRepository
	DirectorMessageRepository *DirectorMessageRepository
	TestimonialRepository     *TestimonialRepository
	VideoRepository           *VideoRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	pg := &db.PostgresDB{Pool: pool}
	return &Repositories{
		CourseRepository:          NewCourseRepository(pool),
		ApplicationRepository:     NewApplicationRepository(pool),
		StudentRepository:         NewStudentRepository(pool),
		AdminRepository:           NewAdminRepository(pool),
		TeamMemberRepository:      NewTeamMemberRepository(pool),
		GalleryRepository:         NewGalleryRepository(pool),
		NewsletterRepository:      NewNewsletterRepository(pool),
		NewsRepository:            NewNewsRepository(pool),
		DirectorMessageRepository: NewDirectorMessageRepository(pg),
		TestimonialRepository:     NewTestimonialRepository(pool),
		VideoRepository:           NewVideoRepository(pool),
	}
}

// execAffectingOne runs a write and returns notFound when no row matched
func execAffectingOne(ctx context.Context, q db.Querier, sql string, args []interface{}, notFound error) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing write query")
		return fmt.Errorf("error executing write: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
