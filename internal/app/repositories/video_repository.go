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

// IVideoRepository defines video library persistence
type IVideoRepository interface {
	ListVideos(ctx context.Context, includeInactive bool) ([]*models.Video, error)
	GetVideo(ctx context.Context, id int64) (*models.Video, error)
	CreateVideo(ctx context.Context, v *models.Video) (int64, error)
	UpdateVideo(ctx context.Context, v *models.Video) error
	DeleteVideo(ctx context.Context, id int64) error
}

var videoColumns = []string{"id", "title", "description", "video_file", "video_url", "thumbnail", "is_active", "created_at"}

// VideoRepository handles video database operations
type VideoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{db: db, sb: newBuilder()}
}

func scanVideo(row scanner) (*models.Video, error) {
	v := &models.Video{}
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.VideoFile, &v.VideoURL, &v.Thumbnail, &v.IsActive, &v.CreatedAt)
	return v, err
}

// ListVideos lists videos newest first
func (r *VideoRepository) ListVideos(ctx context.Context, includeInactive bool) ([]*models.Video, error) {
	q := r.sb.Select(videoColumns...).From("videos").OrderBy("created_at DESC")
	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list videos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing videos")
		return nil, fmt.Errorf("error listing videos: %w", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// GetVideo retrieves a video
func (r *VideoRepository) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	sql, args, err := r.sb.Select(videoColumns...).From("videos").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get video query: %w", err)
	}
	v, err := scanVideo(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting video: %w", err)
	}
	return v, nil
}

// CreateVideo inserts a video
func (r *VideoRepository) CreateVideo(ctx context.Context, v *models.Video) (int64, error) {
	sql, args, err := r.sb.Insert("videos").
		Columns("title", "description", "video_file", "video_url", "thumbnail", "is_active").
		Values(v.Title, v.Description, v.VideoFile, v.VideoURL, v.Thumbnail, v.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create video query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&v.ID, &v.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error creating video")
		return 0, fmt.Errorf("error creating video: %w", err)
	}
	return v.ID, nil
}

// UpdateVideo replaces a video's fields
func (r *VideoRepository) UpdateVideo(ctx context.Context, v *models.Video) error {
	sql, args, err := r.sb.Update("videos").
		SetMap(map[string]interface{}{
			"title":       v.Title,
			"description": v.Description,
			"video_file":  v.VideoFile,
			"video_url":   v.VideoURL,
			"thumbnail":   v.Thumbnail,
			"is_active":   v.IsActive,
		}).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update video query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}

// DeleteVideo removes a video
func (r *VideoRepository) DeleteVideo(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("videos").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete video query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
