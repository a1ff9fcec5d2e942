package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ITeamMemberRepository defines team member persistence
type ITeamMemberRepository interface {
	ListTeamMembers(ctx context.Context, includeInactive bool) ([]*models.TeamMember, error)
	GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error)
	UpdateTeamMember(ctx context.Context, m *models.TeamMember) error
	DeleteTeamMember(ctx context.Context, id int64) error
}

var teamMemberColumns = []string{
	"id", "name", "position", "bio", "email", "phone", "image", "sort_order", "is_active",
	"facebook", "twitter", "linkedin", "created_at",
}

// TeamMemberRepository handles team member database operations
type TeamMemberRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeamMemberRepository creates a new TeamMemberRepository
func NewTeamMemberRepository(db *pgxpool.Pool) *TeamMemberRepository {
	return &TeamMemberRepository{db: db, sb: newBuilder()}
}

func scanTeamMember(row scanner) (*models.TeamMember, error) {
	m := &models.TeamMember{}
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.Email, &m.Phone, &m.Image, &m.Order, &m.IsActive,
		&m.Facebook, &m.Twitter, &m.LinkedIn, &m.CreatedAt)
	return m, err
}

func teamMemberValues(m *models.TeamMember) map[string]interface{} {
	return map[string]interface{}{
		"name":       m.Name,
		"position":   m.Position,
		"bio":        m.Bio,
		"email":      m.Email,
		"phone":      m.Phone,
		"image":      m.Image,
		"sort_order": m.Order,
		"is_active":  m.IsActive,
		"facebook":   m.Facebook,
		"twitter":    m.Twitter,
		"linkedin":   m.LinkedIn,
	}
}

// ListTeamMembers lists members by display order, then name
func (r *TeamMemberRepository) ListTeamMembers(ctx context.Context, includeInactive bool) ([]*models.TeamMember, error) {
	q := r.sb.Select(teamMemberColumns...).From("team_members").OrderBy("sort_order ASC", "name ASC")
	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list team members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing team members")
		return nil, fmt.Errorf("error listing team members: %w", err)
	}
	defer rows.Close()

	members := []*models.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetTeamMember retrieves a member
func (r *TeamMemberRepository) GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	sql, args, err := r.sb.Select(teamMemberColumns...).From("team_members").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get team member query: %w", err)
	}
	m, err := scanTeamMember(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting team member: %w", err)
	}
	return m, nil
}

// CreateTeamMember inserts a member
func (r *TeamMemberRepository) CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error) {
	sql, args, err := r.sb.Insert("team_members").SetMap(teamMemberValues(m)).Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create team member query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error creating team member")
		return 0, fmt.Errorf("error creating team member: %w", err)
	}
	return m.ID, nil
}

// UpdateTeamMember replaces a member's fields
func (r *TeamMemberRepository) UpdateTeamMember(ctx context.Context, m *models.TeamMember) error {
	sql, args, err := r.sb.Update("team_members").SetMap(teamMemberValues(m)).Where(squirrel.Eq{"id": m.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update team member query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}

// DeleteTeamMember removes a member
func (r *TeamMemberRepository) DeleteTeamMember(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("team_members").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete team member query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
