// Package seed loads the standard course catalog.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// Result counts the outcome of a seeding run
type Result struct {
	Created int
	Updated int
	Failed  int
}

// StandardRequirements returns the entry requirements every course gets
func StandardRequirements(c *models.Course) []models.CourseRequirement {
	prereq := c.Prerequisites
	if prereq == "" {
		prereq = "School certificate"
	}
	reqs := []models.CourseRequirement{
		{RequirementType: models.RequirementIDCopy, Description: "Certified copy of ID document", IsRequired: true, Order: 1},
		{RequirementType: models.RequirementMatric, Description: prereq + " certificate", IsRequired: true, Order: 2},
		{RequirementType: models.RequirementFee, Description: fmt.Sprintf("Registration fee of R%.2f", c.RegistrationFee), IsRequired: true, Order: 3},
	}
	if c.IsMathRequired {
		reqs = append(reqs, models.CourseRequirement{
			RequirementType: models.RequirementMaths, Description: "Mathematics minimum requirement", IsRequired: true, Order: 4,
		})
	}
	return append(reqs, models.CourseRequirement{
		RequirementType: models.RequirementOther, Description: "Valid driver's license recommended", IsRequired: false, Order: 5,
	})
}

// SeedCourses upserts courses keyed by title, then their standard requirements
// keyed by (course, requirement type). A failing course is logged and counted;
// the run continues with the next one.
func SeedCourses(ctx context.Context, repo repositories.ICourseRepository, courses []models.Course, lgr zerolog.Logger) (Result, error) {
	var res Result
	var finalErr error

	for i := range courses {
		course := courses[i]
		created, err := upsertCourse(ctx, repo, &course)
		if err == nil {
			err = upsertRequirements(ctx, repo, &course)
		}
		if err != nil {
			lgr.Error().Err(err).Str("title", course.Title).Msg("Error seeding course")
			res.Failed++
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			res.Created++
			lgr.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")
		} else {
			res.Updated++
			lgr.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course updated")
		}
	}

	lgr.Info().Int("created", res.Created).Int("updated", res.Updated).Int("failed", res.Failed).Msg("Course seeding complete")
	return res, finalErr
}

// upsertCourse sets course.ID and reports whether a new row was created.
// Uploaded files and the active flag of an existing course are preserved.
func upsertCourse(ctx context.Context, repo repositories.ICourseRepository, course *models.Course) (bool, error) {
	existing, err := repo.FindCourseByTitle(ctx, course.Title)
	if errors.Is(err, apperrors.ErrCourseNotFound) {
		id, err := repo.CreateCourse(ctx, course)
		if err != nil {
			return false, fmt.Errorf("create course: %w", err)
		}
		course.ID = id
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("find course: %w", err)
	}

	course.ID = existing.ID
	course.Image = existing.Image
	course.ImageURL = existing.ImageURL
	course.CoursePDF = existing.CoursePDF
	course.CoursePDFURL = existing.CoursePDFURL
	course.IsActive = existing.IsActive
	if err := repo.UpdateCourse(ctx, course); err != nil {
		return false, fmt.Errorf("update course: %w", err)
	}
	return false, nil
}

func upsertRequirements(ctx context.Context, repo repositories.ICourseRepository, course *models.Course) error {
	current, err := repo.ListRequirements(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("list requirements: %w", err)
	}
	byType := make(map[models.RequirementType]models.CourseRequirement, len(current))
	for _, r := range current {
		if _, seen := byType[r.RequirementType]; !seen {
			byType[r.RequirementType] = r
		}
	}

	for _, want := range StandardRequirements(course) {
		want.CourseID = course.ID
		if have, ok := byType[want.RequirementType]; ok {
			want.ID = have.ID
			if err := repo.UpdateRequirement(ctx, &want); err != nil {
				return fmt.Errorf("update %s requirement: %w", want.RequirementType, err)
			}
			continue
		}
		if _, err := repo.CreateRequirement(ctx, &want); err != nil {
			return fmt.Errorf("create %s requirement: %w", want.RequirementType, err)
		}
	}
	return nil
}
