package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
)

// StudentStore is an in-memory IStudentRepository. It enforces the same
// one-student-per-application rule as the unique constraint in Postgres.
type StudentStore struct {
	mu       sync.RWMutex
	students map[int64]*models.Student
	nextID   int64
}

// NewStudentStore creates an empty StudentStore
func NewStudentStore() *StudentStore {
	return &StudentStore{students: map[int64]*models.Student{}}
}

// CreateStudent stores a student unless the application already has one
func (s *StudentStore) CreateStudent(_ context.Context, student *models.Student) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student.ApplicationID != nil {
		for _, existing := range s.students {
			if existing.ApplicationID != nil && *existing.ApplicationID == *student.ApplicationID {
				return 0, apperrors.ErrStudentExists
			}
		}
	}
	s.nextID++
	student.ID = s.nextID
	cp := *student
	s.students[student.ID] = &cp
	return student.ID, nil
}

// GetStudentByID returns one student
func (s *StudentStore) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

// GetStudentByApplicationID returns the student enrolled from an application
func (s *StudentStore) GetStudentByApplicationID(_ context.Context, applicationID int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ApplicationID != nil && *st.ApplicationID == applicationID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// ListStudents pages students, newest enrollment first
func (s *StudentStore) ListStudents(_ context.Context, status *models.StudentStatus, page, size int) ([]*models.Student, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := []*models.Student{}
	for _, st := range s.students {
		if status != nil && st.Status != *status {
			continue
		}
		cp := *st
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].EnrollmentDate.Equal(all[j].EnrollmentDate) {
			return all[i].EnrollmentDate.After(all[j].EnrollmentDate)
		}
		return all[i].ID > all[j].ID
	})
	start, end := helpers.CalculateSliceIndices(page, size, len(all))
	return all[start:end], int64(len(all)), nil
}

// UpdateStudent replaces a student
func (s *StudentStore) UpdateStudent(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *student
	s.students[student.ID] = &cp
	return nil
}

// DeleteStudent removes a student
func (s *StudentStore) DeleteStudent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

// CountStudents counts all students
func (s *StudentStore) CountStudents(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.students)), nil
}
