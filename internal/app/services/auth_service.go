package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/app/repositories"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// minPasswordLength applies to admin accounts created from the CLI
const minPasswordLength = 8

// AuthService handles back-office authentication
type AuthService struct {
	adminRepo  repositories.IAdminRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.IAdminRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		logger:     logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks the credentials of an admin and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", email).Msg("Failed admin login")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(admin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.adminRepo.TouchLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn().Err(err).Int64("adminID", admin.ID).Msg("Failed to record last login")
	}

	s.logger.Info().Int64("adminID", admin.ID).Msg("Admin logged in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Admin: toAdminResponse(admin),
	}, nil
}

// EnsureAdmin creates the admin account, or resets its password when it
// already exists. created reports which of the two happened.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, fullName string) (admin *models.AdminUser, created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, apperrors.NewValidationError("Validation failed", map[string]string{"email": "email is required"})
	}
	if len(password) < minPasswordLength {
		return nil, false, apperrors.NewValidationError("Validation failed",
			map[string]string{"password": fmt.Sprintf("password must be at least %d characters", minPasswordLength)})
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.adminRepo.GetAdminByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.adminRepo.UpdateAdminPassword(ctx, existing.ID, hash); err != nil {
			return nil, false, err
		}
		existing.PasswordHash = hash
		s.logger.Info().Int64("adminID", existing.ID).Msg("Admin password reset")
		return existing, false, nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, false, err
	}

	admin = &models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if _, err := s.adminRepo.CreateAdmin(ctx, admin); err != nil {
		return nil, false, err
	}
	s.logger.Info().Int64("adminID", admin.ID).Msg("Admin created")
	return admin, true, nil
}

func toAdminResponse(a *models.AdminUser) dto.AdminResponse {
	return dto.AdminResponse{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     string(a.Role),
	}
}
