package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// INewsRepository defines news post persistence
type INewsRepository interface {
	ListNewsPosts(ctx context.Context, includeUnpublished bool) ([]*models.NewsPost, error)
	GetNewsPost(ctx context.Context, id int64) (*models.NewsPost, error)
	CreateNewsPost(ctx context.Context, post *models.NewsPost) (int64, error)
	UpdateNewsPost(ctx context.Context, post *models.NewsPost) error
	DeleteNewsPost(ctx context.Context, id int64) error
}

var newsColumns = []string{"id", "title", "preview_text", "content", "image", "is_published", "created_at", "updated_at"}

// NewsRepository handles news post database operations
type NewsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{db: db, sb: newBuilder()}
}

func scanNewsPost(row scanner) (*models.NewsPost, error) {
	p := &models.NewsPost{}
	err := row.Scan(&p.ID, &p.Title, &p.PreviewText, &p.Content, &p.Image, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListNewsPosts lists posts newest first
func (r *NewsRepository) ListNewsPosts(ctx context.Context, includeUnpublished bool) ([]*models.NewsPost, error) {
	q := r.sb.Select(newsColumns...).From("news_posts").OrderBy("created_at DESC")
	if !includeUnpublished {
		q = q.Where(squirrel.Eq{"is_published": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list news query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing news posts")
		return nil, fmt.Errorf("error listing news posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.NewsPost{}
	for rows.Next() {
		p, err := scanNewsPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning news post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetNewsPost retrieves a post
func (r *NewsRepository) GetNewsPost(ctx context.Context, id int64) (*models.NewsPost, error) {
	sql, args, err := r.sb.Select(newsColumns...).From("news_posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get news post query: %w", err)
	}
	p, err := scanNewsPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting news post: %w", err)
	}
	return p, nil
}

// CreateNewsPost inserts a post
func (r *NewsRepository) CreateNewsPost(ctx context.Context, post *models.NewsPost) (int64, error) {
	sql, args, err := r.sb.Insert("news_posts").
		Columns("title", "preview_text", "content", "image", "is_published").
		Values(post.Title, post.PreviewText, post.Content, post.Image, post.IsPublished).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create news post query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error creating news post")
		return 0, fmt.Errorf("error creating news post: %w", err)
	}
	return post.ID, nil
}

// UpdateNewsPost replaces a post's fields
func (r *NewsRepository) UpdateNewsPost(ctx context.Context, post *models.NewsPost) error {
	sql, args, err := r.sb.Update("news_posts").
		SetMap(map[string]interface{}{
			"title":        post.Title,
			"preview_text": post.PreviewText,
			"content":      post.Content,
			"image":        post.Image,
			"is_published": post.IsPublished,
			"updated_at":   time.Now(),
		}).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update news post query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}

// DeleteNewsPost removes a post
func (r *NewsRepository) DeleteNewsPost(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("news_posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete news post query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
