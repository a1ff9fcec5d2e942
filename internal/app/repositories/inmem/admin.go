package inmem

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
)

// AdminStore is an in-memory IAdminRepository
type AdminStore struct {
	mu     sync.Mutex
	admins map[string]*models.AdminUser
	nextID int64
}

// NewAdminStore creates an empty AdminStore
func NewAdminStore() *AdminStore {
	return &AdminStore{admins: map[string]*models.AdminUser{}}
}

// GetAdminByEmail looks an admin up by lower-cased email
func (s *AdminStore) GetAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *a
	return &cp, nil
}

// CreateAdmin stores an admin; emails are unique
func (s *AdminStore) CreateAdmin(_ context.Context, admin *models.AdminUser) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(admin.Email)
	if _, ok := s.admins[key]; ok {
		return 0, apperrors.ErrResourceAlreadyExists
	}
	s.nextID++
	admin.ID = s.nextID
	admin.Email = key
	admin.CreatedAt = time.Now()
	cp := *admin
	s.admins[key] = &cp
	return admin.ID, nil
}

func (s *AdminStore) byID(id int64) *models.AdminUser {
	for _, a := range s.admins {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// UpdateAdminPassword replaces the password hash
func (s *AdminStore) UpdateAdminPassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.byID(id)
	if a == nil {
		return apperrors.ErrResourceNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

// TouchLastLogin stamps the last login time
func (s *AdminStore) TouchLastLogin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.byID(id)
	if a == nil {
		return apperrors.ErrResourceNotFound
	}
	now := time.Now()
	a.LastLoginAt = &now
	return nil
}
