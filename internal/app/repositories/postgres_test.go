package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bathudi/admissions/internal/app/migrations"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool migrates a throwaway schema on the database named by TEST_DATABASE_URL
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	admin, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, "../../../migrations")
	require.NoError(t, err)
	return pool
}

func createCourse(t *testing.T, repo *CourseRepository, title string, active bool) int64 {
	t.Helper()
	id, err := repo.CreateCourse(context.Background(), &models.Course{
		Title:    title,
		Level:    models.CourseLevelBeginner,
		IsActive: active,
	})
	require.NoError(t, err)
	return id
}

func createApplication(t *testing.T, repo *ApplicationRepository, name, email string, status models.ApplicationStatus) *models.Application {
	t.Helper()
	app := &models.Application{
		Name:    name,
		Surname: "Dlamini",
		Country: models.DefaultCountry,
		Mobile:  "0821234567",
		Email:   email,
		Address: "12 Main Road",
		Status:  status,
	}
	_, err := repo.CreateApplication(context.Background(), app)
	require.NoError(t, err)
	return app
}

func TestPostgres_FindCoursesByTitleFragment(t *testing.T) {
	pool := newTestPool(t)
	repo := NewCourseRepository(pool)
	ctx := context.Background()

	first := createCourse(t, repo, "Automotive Engine Repairer", true)
	second := createCourse(t, repo, "Diesel ENGINE Mechanic", false)
	createCourse(t, repo, "Welding", true)
	literal := createCourse(t, repo, "Fitter 100% Practical", true)

	found, err := repo.FindCoursesByTitleFragment(ctx, "engine")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, first, found[0].ID, "lowest id first")
	assert.Equal(t, second, found[1].ID, "inactive courses still match")

	found, err = repo.FindCoursesByTitleFragment(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, literal, found[0].ID)

	found, err = repo.FindCoursesByTitleFragment(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, found, "underscore is not a wildcard")

	exact, err := repo.FindCourseByTitle(ctx, "welding")
	require.NoError(t, err)
	assert.Equal(t, "Welding", exact.Title)

	_, err = repo.FindCourseByTitle(ctx, "Weld")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestPostgres_ListApplicationsSearchIsLiteral(t *testing.T) {
	pool := newTestPool(t)
	repo := NewApplicationRepository(pool)
	ctx := context.Background()

	createApplication(t, repo, "Thabo", "thabo_m@example.com", models.StatusPending)
	createApplication(t, repo, "Lerato", "leratoxm@example.com", models.StatusPending)
	createApplication(t, repo, "Sipho", "sipho@example.com", models.StatusApproved)

	apps, total, err := repo.ListApplications(ctx, models.ApplicationFilter{Search: "o_m", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, apps, 1)
	assert.Equal(t, "Thabo", apps[0].Name)

	_, total, err = repo.ListApplications(ctx, models.ApplicationFilter{Search: "%", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Zero(t, total)

	status := models.StatusPending
	apps, total, err = repo.ListApplications(ctx, models.ApplicationFilter{Status: &status, Search: "EXAMPLE", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, apps, 2)
	assert.Equal(t, "Lerato", apps[0].Name, "newest first")
}

func TestPostgres_ApplicationStats(t *testing.T) {
	pool := newTestPool(t)
	repo := NewApplicationRepository(pool)
	ctx := context.Background()

	createApplication(t, repo, "A", "a@example.com", models.StatusPending)
	createApplication(t, repo, "B", "b@example.com", models.StatusPending)
	approved := createApplication(t, repo, "C", "c@example.com", models.StatusApproved)
	createApplication(t, repo, "D", "d@example.com", models.StatusRejected)
	createApplication(t, repo, "E", "e@example.com", models.StatusContacted)
	require.NoError(t, repo.SetFeeVerified(ctx, approved.ID, true))

	stats, err := repo.ApplicationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStats{
		Total:       5,
		Pending:     2,
		Approved:    1,
		Rejected:    1,
		Contacted:   1,
		FeeVerified: 1,
	}, stats)
}

func TestPostgres_CreateStudentOncePerApplication(t *testing.T) {
	pool := newTestPool(t)
	apps := NewApplicationRepository(pool)
	students := NewStudentRepository(pool)
	ctx := context.Background()

	app := createApplication(t, apps, "Thabo", "thabo@example.com", models.StatusApproved)

	id, err := students.CreateStudent(ctx, models.NewStudentFromApplication(app, time.Now()))
	require.NoError(t, err)
	assert.NotZero(t, id)

	again := models.NewStudentFromApplication(app, time.Now())
	other := "STU9999"
	again.StudentNumber = &other
	_, err = students.CreateStudent(ctx, again)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStudentExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := students.GetStudentByApplicationID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, models.StudentNumberFor(app.ID), *stored.StudentNumber)
}
