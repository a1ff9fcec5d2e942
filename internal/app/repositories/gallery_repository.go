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

// IGalleryRepository defines gallery persistence
type IGalleryRepository interface {
	ListGalleryImages(ctx context.Context, category *models.GalleryCategory, includeInactive bool) ([]*models.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id int64) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, img *models.GalleryImage) (int64, error)
	UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id int64) error
}

var galleryColumns = []string{"id", "title", "description", "image", "category", "upload_date", "is_active"}

// GalleryRepository handles gallery image database operations
type GalleryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{db: db, sb: newBuilder()}
}

func scanGalleryImage(row scanner) (*models.GalleryImage, error) {
	g := &models.GalleryImage{}
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Image, &g.Category, &g.UploadDate, &g.IsActive)
	return g, err
}

// ListGalleryImages lists images newest first, optionally filtered by category
func (r *GalleryRepository) ListGalleryImages(ctx context.Context, category *models.GalleryCategory, includeInactive bool) ([]*models.GalleryImage, error) {
	q := r.sb.Select(galleryColumns...).From("gallery_images").OrderBy("upload_date DESC", "id DESC")
	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if category != nil {
		q = q.Where(squirrel.Eq{"category": *category})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list gallery query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing gallery images")
		return nil, fmt.Errorf("error listing gallery images: %w", err)
	}
	defer rows.Close()

	images := []*models.GalleryImage{}
	for rows.Next() {
		g, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning gallery image: %w", err)
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

// GetGalleryImage retrieves an image
func (r *GalleryRepository) GetGalleryImage(ctx context.Context, id int64) (*models.GalleryImage, error) {
	sql, args, err := r.sb.Select(galleryColumns...).From("gallery_images").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get gallery image query: %w", err)
	}
	g, err := scanGalleryImage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting gallery image: %w", err)
	}
	return g, nil
}

// CreateGalleryImage inserts an image
func (r *GalleryRepository) CreateGalleryImage(ctx context.Context, img *models.GalleryImage) (int64, error) {
	sql, args, err := r.sb.Insert("gallery_images").
		Columns("title", "description", "image", "category", "is_active").
		Values(img.Title, img.Description, img.Image, img.Category, img.IsActive).
		Suffix("RETURNING id, upload_date").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create gallery image query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&img.ID, &img.UploadDate); err != nil {
		logger.Error().Err(err).Msg("Error creating gallery image")
		return 0, fmt.Errorf("error creating gallery image: %w", err)
	}
	return img.ID, nil
}

// UpdateGalleryImage replaces an image's fields
func (r *GalleryRepository) UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	sql, args, err := r.sb.Update("gallery_images").
		SetMap(map[string]interface{}{
			"title":       img.Title,
			"description": img.Description,
			"image":       img.Image,
			"category":    img.Category,
			"is_active":   img.IsActive,
		}).
		Where(squirrel.Eq{"id": img.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update gallery image query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}

// DeleteGalleryImage removes an image row
func (r *GalleryRepository) DeleteGalleryImage(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("gallery_images").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete gallery image query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
