package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
)

// ApplicationStore is an in-memory IApplicationRepository
type ApplicationStore struct {
	mu     sync.RWMutex
	apps   map[int64]*models.Application
	nextID int64

	// Now stamps applied_date on create; defaults to time.Now
	Now func() time.Time
	// DocumentsErr, when set, fails SetApplicationDocuments
	DocumentsErr error
}

// NewApplicationStore creates an empty ApplicationStore
func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{apps: map[int64]*models.Application{}, Now: time.Now}
}

func copyApplication(a *models.Application) *models.Application {
	cp := *a
	cp.Documents = models.DocumentSet{}
	for k, v := range a.Documents {
		cp.Documents[k] = v
	}
	return &cp
}

// CreateApplication stores an application and assigns its id
func (s *ApplicationStore) CreateApplication(_ context.Context, app *models.Application) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	app.ID = s.nextID
	if app.AppliedDate.IsZero() {
		app.AppliedDate = s.Now()
	}
	s.apps[app.ID] = copyApplication(app)
	return app.ID, nil
}

// GetApplicationByID returns a copy of the stored application
func (s *ApplicationStore) GetApplicationByID(_ context.Context, id int64) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return copyApplication(a), nil
}

func matchesFilter(a *models.Application, f models.ApplicationFilter) bool {
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.FeeVerified != nil && a.FeeVerified != *f.FeeVerified {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		for _, field := range []string{a.Name, a.Surname, a.Email, a.Mobile} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
	return true
}

// ListApplications filters and pages newest first
func (s *ApplicationStore) ListApplications(_ context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := []*models.Application{}
	for _, a := range s.apps {
		if matchesFilter(a, filter) {
			all = append(all, copyApplication(a))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].AppliedDate.Equal(all[j].AppliedDate) {
			return all[i].AppliedDate.After(all[j].AppliedDate)
		}
		return all[i].ID > all[j].ID
	})
	start, end := helpers.CalculateSliceIndices(filter.Page, filter.PageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (s *ApplicationStore) mutate(id int64, fn func(a *models.Application)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	fn(a)
	return nil
}

// UpdateApplication saves the admin-editable fields
func (s *ApplicationStore) UpdateApplication(_ context.Context, app *models.Application) error {
	return s.mutate(app.ID, func(a *models.Application) {
		status, reason, fee, applied, docs := a.Status, a.RejectionReason, a.FeeVerified, a.AppliedDate, a.Documents
		*a = *copyApplication(app)
		a.Status, a.RejectionReason, a.FeeVerified, a.AppliedDate, a.Documents = status, reason, fee, applied, docs
	})
}

// SetApplicationStatus changes only the status
func (s *ApplicationStore) SetApplicationStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	return s.mutate(id, func(a *models.Application) { a.Status = status })
}

// RejectApplication sets the rejected status and stores reason as given
func (s *ApplicationStore) RejectApplication(_ context.Context, id int64, reason *string) error {
	return s.mutate(id, func(a *models.Application) {
		a.Status = models.StatusRejected
		if reason == nil {
			a.RejectionReason = nil
			return
		}
		r := *reason
		a.RejectionReason = &r
	})
}

// SetFeeVerified sets the registration fee flag
func (s *ApplicationStore) SetFeeVerified(_ context.Context, id int64, verified bool) error {
	return s.mutate(id, func(a *models.Application) { a.FeeVerified = verified })
}

// SetApplicationDocuments replaces the document paths
func (s *ApplicationStore) SetApplicationDocuments(_ context.Context, id int64, docs models.DocumentSet) error {
	if s.DocumentsErr != nil {
		return s.DocumentsErr
	}
	return s.mutate(id, func(a *models.Application) {
		a.Documents = models.DocumentSet{}
		for k, v := range docs {
			if v != "" {
				a.Documents[k] = v
			}
		}
	})
}

// DeleteApplication removes an application
func (s *ApplicationStore) DeleteApplication(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}

// ApplicationStats counts applications per status
func (s *ApplicationStore) ApplicationStats(_ context.Context) (models.ApplicationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st models.ApplicationStats
	for _, a := range s.apps {
		st.Total++
		switch a.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusApproved:
			st.Approved++
		case models.StatusRejected:
			st.Rejected++
		case models.StatusContacted:
			st.Contacted++
		}
		if a.FeeVerified {
			st.FeeVerified++
		}
	}
	return st, nil
}
