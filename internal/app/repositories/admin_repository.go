package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/dberrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository handles admin account database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: newBuilder(),
	}
}

// GetAdminByEmail looks up an account by its lower-cased email
func (r *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	sql, args, err := r.sb.Select("id", "email", "password_hash", "full_name", "role", "is_active", "last_login_at", "created_at", "updated_at").
		From("admin_users").
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	a := &models.AdminUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.IsActive, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning admin row")
		return nil, fmt.Errorf("error getting admin by email: %w", err)
	}
	return a, nil
}

// CreateAdmin inserts an account; duplicate emails yield apperrors.ErrResourceAlreadyExists
func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *models.AdminUser) (int64, error) {
	sql, args, err := r.sb.Insert("admin_users").
		Columns("email", "password_hash", "full_name", "role", "is_active").
		Values(strings.ToLower(strings.TrimSpace(admin.Email)), admin.PasswordHash, admin.FullName, admin.Role, admin.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admin_users_email_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating admin: %w", err)
	}
	return admin.ID, nil
}

// UpdateAdminPassword replaces the password hash
func (r *AdminRepository) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admin_users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// TouchLastLogin records a successful login
func (r *AdminRepository) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}
