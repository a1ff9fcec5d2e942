package seed

import (
	"context"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories/inmem"
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCourses_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewCourseStore()

	res, err := SeedCourses(ctx, store, Catalog(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 4}, res)

	res, err = SeedCourses(ctx, store, Catalog(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 4}, res)

	courses, err := store.ListCourses(ctx, true)
	require.NoError(t, err)
	require.Len(t, courses, 4)

	for _, c := range courses {
		reqs, err := store.ListRequirements(ctx, c.ID)
		require.NoError(t, err)
		want := 4
		if c.IsMathRequired {
			want = 5
		}
		assert.Len(t, reqs, want, c.Title)
	}
}

func TestSeedCourses_PreservesOperatorChanges(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewCourseStore()

	_, err := SeedCourses(ctx, store, Catalog(), zerolog.Nop())
	require.NoError(t, err)

	course, err := store.FindCourseByTitle(ctx, "occupational certificate: automotive workshop assistant")
	require.NoError(t, err)
	require.NoError(t, store.DeactivateCourse(ctx, course.ID))
	require.NoError(t, store.SetCoursePDF(ctx, course.ID, "course_pdfs/workshop.pdf"))

	_, err = SeedCourses(ctx, store, Catalog(), zerolog.Nop())
	require.NoError(t, err)

	got, err := store.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.CoursePDF)
	assert.Equal(t, "course_pdfs/workshop.pdf", *got.CoursePDF)
}

func TestStandardRequirements(t *testing.T) {
	c := &models.Course{Prerequisites: "Grade 10", RegistrationFee: 200}
	reqs := StandardRequirements(c)
	require.Len(t, reqs, 4)
	assert.Equal(t, "Grade 10 certificate", reqs[1].Description)
	assert.Equal(t, "Registration fee of R200.00", reqs[2].Description)
	assert.False(t, reqs[3].IsRequired)

	c.IsMathRequired = true
	reqs = StandardRequirements(c)
	require.Len(t, reqs, 5)
	assert.Equal(t, models.RequirementMaths, reqs[3].RequirementType)
}

func TestCatalog_FormKeysResolve(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewCourseStore()
	_, err := SeedCourses(ctx, store, Catalog(), zerolog.Nop())
	require.NoError(t, err)

	resolver := services.NewCourseResolver(store, services.ResolverConfig{KeyMapping: config.DefaultCourseKeyMapping()}, zerolog.Nop())
	for key := range config.DefaultCourseKeyMapping() {
		assert.NotNil(t, resolver.Resolve(ctx, key), key)
	}
}
