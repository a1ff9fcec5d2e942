// Package inmem provides map-backed stores that satisfy the repository
// interfaces. They back service and controller tests.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
)

// CourseStore is an in-memory ICourseRepository
type CourseStore struct {
	mu           sync.RWMutex
	courses      map[int64]*models.Course
	requirements map[int64]*models.CourseRequirement
	nextID       int64
	nextReqID    int64

	// Err, when set, is returned by every lookup
	Err error
}

// NewCourseStore creates an empty CourseStore
func NewCourseStore() *CourseStore {
	return &CourseStore{
		courses:      map[int64]*models.Course{},
		requirements: map[int64]*models.CourseRequirement{},
	}
}

func copyCourse(c *models.Course) *models.Course {
	cp := *c
	cp.RequirementsList = append([]models.CourseRequirement(nil), c.RequirementsList...)
	return &cp
}

// CreateCourse stores a course and assigns its id
func (s *CourseStore) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	course.ID = s.nextID
	now := time.Now()
	course.CreatedAt, course.UpdatedAt = now, now
	s.courses[course.ID] = copyCourse(course)
	return course.ID, nil
}

// GetCourseByID returns a course with its requirements
func (s *CourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	out := copyCourse(c)
	out.RequirementsList = s.requirementsOf(id)
	return out, nil
}

// ListCourses orders by display order, then newest first
func (s *CourseStore) ListCourses(_ context.Context, includeInactive bool) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Course{}
	for _, c := range s.courses {
		if !includeInactive && !c.IsActive {
			continue
		}
		cp := copyCourse(c)
		cp.RequirementsList = s.requirementsOf(c.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateCourse replaces a stored course
func (s *CourseStore) UpdateCourse(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	course.CreatedAt = old.CreatedAt
	course.UpdatedAt = time.Now()
	s.courses[course.ID] = copyCourse(course)
	return nil
}

// DeactivateCourse clears is_active
func (s *CourseStore) DeactivateCourse(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.IsActive = false
	return nil
}

// SetCoursePDF records the stored outline path
func (s *CourseStore) SetCoursePDF(_ context.Context, id int64, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.CoursePDF = &path
	return nil
}

// CountActiveCourses counts active courses
func (s *CourseStore) CountActiveCourses(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.courses {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}

// FindCoursesByTitleFragment matches case-insensitively, lowest id first
func (s *CourseStore) FindCoursesByTitleFragment(_ context.Context, fragment string) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	needle := strings.ToLower(fragment)
	out := []*models.Course{}
	for _, c := range s.courses {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			out = append(out, copyCourse(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindCourseByTitle matches the whole title case-insensitively
func (s *CourseStore) FindCourseByTitle(_ context.Context, title string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var best *models.Course
	for _, c := range s.courses {
		if strings.EqualFold(c.Title, title) && (best == nil || c.ID < best.ID) {
			best = c
		}
	}
	if best == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return copyCourse(best), nil
}

func (s *CourseStore) requirementsOf(courseID int64) []models.CourseRequirement {
	out := []models.CourseRequirement{}
	for _, r := range s.requirements {
		if r.CourseID == courseID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListRequirements lists a course's requirements in order
func (s *CourseStore) ListRequirements(_ context.Context, courseID int64) ([]models.CourseRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.courses[courseID]; !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.requirementsOf(courseID), nil
}

// GetRequirement returns one requirement
func (s *CourseStore) GetRequirement(_ context.Context, id int64) (*models.CourseRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requirements[id]
	if !ok {
		return nil, apperrors.ErrCourseRequirementNotFound
	}
	cp := *r
	return &cp, nil
}

// CreateRequirement stores a requirement for an existing course
func (s *CourseStore) CreateRequirement(_ context.Context, req *models.CourseRequirement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[req.CourseID]; !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	s.nextReqID++
	req.ID = s.nextReqID
	cp := *req
	s.requirements[req.ID] = &cp
	return req.ID, nil
}

// UpdateRequirement replaces a requirement
func (s *CourseStore) UpdateRequirement(_ context.Context, req *models.CourseRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requirements[req.ID]; !ok {
		return apperrors.ErrCourseRequirementNotFound
	}
	cp := *req
	s.requirements[req.ID] = &cp
	return nil
}

// DeleteRequirement removes a requirement
func (s *CourseStore) DeleteRequirement(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requirements[id]; !ok {
		return apperrors.ErrCourseRequirementNotFound
	}
	delete(s.requirements, id)
	return nil
}
