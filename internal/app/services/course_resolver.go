package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ResolverConfig maps application-form course keys to course title fragments
type ResolverConfig struct {
	KeyMapping map[string]string
}

// CourseResolver turns the course key sent by the application form into a catalog course
type CourseResolver interface {
	// Resolve returns nil when key matches no course. Store failures are
	// logged and reported as unresolved.
	Resolve(ctx context.Context, key string) *models.Course
}

type courseResolverImpl struct {
	courseRepo repositories.ICourseRepository
	mapping    map[string]string
	logger     zerolog.Logger
}

// NewCourseResolver creates a new CourseResolver
func NewCourseResolver(courseRepo repositories.ICourseRepository, cfg ResolverConfig, logger zerolog.Logger) CourseResolver {
	mapping := make(map[string]string, len(cfg.KeyMapping))
	for k, v := range cfg.KeyMapping {
		mapping[strings.TrimSpace(k)] = v
	}
	return &courseResolverImpl{
		courseRepo: courseRepo,
		mapping:    mapping,
		logger:     logger.With().Str("component", "course_resolver").Logger(),
	}
}

func (r *courseResolverImpl) Resolve(ctx context.Context, key string) *models.Course {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	if fragment, ok := r.mapping[key]; ok {
		courses, err := r.courseRepo.FindCoursesByTitleFragment(ctx, fragment)
		if err != nil {
			r.logger.Error().Err(err).Str("key", key).Msg("Course lookup by title fragment failed")
			return nil
		}
		if len(courses) > 0 {
			if len(courses) > 1 {
				r.logger.Debug().Str("key", key).Int("matches", len(courses)).Int64("courseID", courses[0].ID).
					Msg("Several courses match, using the lowest id")
			}
			return courses[0]
		}
	}

	course, err := r.courseRepo.FindCourseByTitle(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			r.logger.Error().Err(err).Str("key", key).Msg("Course lookup by title failed")
			return nil
		}
		r.logger.Warn().Str("key", key).Msg("Course key could not be resolved")
		return nil
	}
	return course
}
