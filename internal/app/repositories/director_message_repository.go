package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/db"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// IDirectorMessageRepository defines director message persistence.
// At most one message is active at any time.
type IDirectorMessageRepository interface {
	ListDirectorMessages(ctx context.Context) ([]*models.DirectorMessage, error)
	GetDirectorMessage(ctx context.Context, id int64) (*models.DirectorMessage, error)
	GetActiveDirectorMessage(ctx context.Context) (*models.DirectorMessage, error)
	// CreateDirectorMessage deactivates every other message first when msg is active.
	CreateDirectorMessage(ctx context.Context, msg *models.DirectorMessage) (int64, error)
	UpdateDirectorMessage(ctx context.Context, msg *models.DirectorMessage) error
	ActivateDirectorMessage(ctx context.Context, id int64) error
	DeleteDirectorMessage(ctx context.Context, id int64) error
}

var directorColumns = []string{"id", "quote", "video_file", "video_url", "is_active", "created_at", "updated_at"}

// DirectorMessageRepository handles director message database operations
type DirectorMessageRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewDirectorMessageRepository creates a new DirectorMessageRepository
func NewDirectorMessageRepository(pg *db.PostgresDB) *DirectorMessageRepository {
	return &DirectorMessageRepository{db: pg, sb: newBuilder()}
}

func scanDirectorMessage(row scanner) (*models.DirectorMessage, error) {
	m := &models.DirectorMessage{}
	err := row.Scan(&m.ID, &m.Quote, &m.VideoFile, &m.VideoURL, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *DirectorMessageRepository) getOne(ctx context.Context, pred interface{}) (*models.DirectorMessage, error) {
	sql, args, err := r.sb.Select(directorColumns...).From("director_messages").Where(pred).
		OrderBy("updated_at DESC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get director message query: %w", err)
	}
	m, err := scanDirectorMessage(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting director message: %w", err)
	}
	return m, nil
}

// ListDirectorMessages lists every message, newest first
func (r *DirectorMessageRepository) ListDirectorMessages(ctx context.Context) ([]*models.DirectorMessage, error) {
	sql, args, err := r.sb.Select(directorColumns...).From("director_messages").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list director messages query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing director messages")
		return nil, fmt.Errorf("error listing director messages: %w", err)
	}
	defer rows.Close()

	msgs := []*models.DirectorMessage{}
	for rows.Next() {
		m, err := scanDirectorMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning director message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// GetDirectorMessage retrieves a message
func (r *DirectorMessageRepository) GetDirectorMessage(ctx context.Context, id int64) (*models.DirectorMessage, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetActiveDirectorMessage returns apperrors.ErrNoActiveDirectorMessage when none is active
func (r *DirectorMessageRepository) GetActiveDirectorMessage(ctx context.Context) (*models.DirectorMessage, error) {
	m, err := r.getOne(ctx, squirrel.Eq{"is_active": true})
	if errors.Is(err, apperrors.ErrContentNotFound) {
		return nil, apperrors.ErrNoActiveDirectorMessage
	}
	return m, err
}

func (r *DirectorMessageRepository) deactivateOthers(ctx context.Context, q db.Querier, keepID int64) error {
	sql, args, err := r.sb.Update("director_messages").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.And{squirrel.Eq{"is_active": true}, squirrel.NotEq{"id": keepID}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate director messages query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deactivating director messages: %w", err)
	}
	return nil
}

// CreateDirectorMessage inserts a message inside a transaction
func (r *DirectorMessageRepository) CreateDirectorMessage(ctx context.Context, msg *models.DirectorMessage) (int64, error) {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if msg.IsActive {
			if err := r.deactivateOthers(ctx, tx, 0); err != nil {
				return err
			}
		}

		sql, args, err := r.sb.Insert("director_messages").
			Columns("quote", "video_file", "video_url", "is_active").
			Values(msg.Quote, msg.VideoFile, msg.VideoURL, msg.IsActive).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create director message query: %w", err)
		}
		return tx.QueryRow(ctx, sql, args...).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating director message")
		return 0, fmt.Errorf("error creating director message: %w", err)
	}
	return msg.ID, nil
}

// UpdateDirectorMessage replaces a message; activating it deactivates the rest
func (r *DirectorMessageRepository) UpdateDirectorMessage(ctx context.Context, msg *models.DirectorMessage) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if msg.IsActive {
			if err := r.deactivateOthers(ctx, tx, msg.ID); err != nil {
				return err
			}
		}
		sql, args, err := r.sb.Update("director_messages").
			SetMap(map[string]interface{}{
				"quote":      msg.Quote,
				"video_file": msg.VideoFile,
				"video_url":  msg.VideoURL,
				"is_active":  msg.IsActive,
				"updated_at": time.Now(),
			}).
			Where(squirrel.Eq{"id": msg.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update director message query: %w", err)
		}
		return execAffectingOne(ctx, tx, sql, args, apperrors.ErrContentNotFound)
	})
}

// ActivateDirectorMessage makes id the only active message
func (r *DirectorMessageRepository) ActivateDirectorMessage(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.deactivateOthers(ctx, tx, id); err != nil {
			return err
		}
		sql, args, err := r.sb.Update("director_messages").
			Set("is_active", true).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build activate director message query: %w", err)
		}
		return execAffectingOne(ctx, tx, sql, args, apperrors.ErrContentNotFound)
	})
}

// DeleteDirectorMessage removes a message
func (r *DirectorMessageRepository) DeleteDirectorMessage(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("director_messages").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete director message query: %w", err)
	}
	return execAffectingOne(ctx, r.db.Pool, sql, args, apperrors.ErrContentNotFound)
}
