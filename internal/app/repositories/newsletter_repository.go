package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/dberrors"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// INewsletterRepository defines mailing list persistence
type INewsletterRepository interface {
	ListSubscriptions(ctx context.Context, includeInactive bool) ([]*models.NewsletterSubscription, error)
	CreateSubscription(ctx context.Context, sub *models.NewsletterSubscription) (int64, error)
	SetSubscriptionActive(ctx context.Context, id int64, active bool) error
	DeleteSubscription(ctx context.Context, id int64) error
}

// NewsletterRepository handles newsletter subscription database operations
type NewsletterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNewsletterRepository creates a new NewsletterRepository
func NewNewsletterRepository(db *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{db: db, sb: newBuilder()}
}

// ListSubscriptions lists subscriptions newest first
func (r *NewsletterRepository) ListSubscriptions(ctx context.Context, includeInactive bool) ([]*models.NewsletterSubscription, error) {
	q := r.sb.Select("id", "email", "subscribed_at", "is_active").From("newsletter_subscriptions").OrderBy("subscribed_at DESC")
	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subscriptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing newsletter subscriptions")
		return nil, fmt.Errorf("error listing subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*models.NewsletterSubscription{}
	for rows.Next() {
		s := &models.NewsletterSubscription{}
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt, &s.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CreateSubscription stores a lower-cased email; duplicates yield apperrors.ErrAlreadySubscribed
func (r *NewsletterRepository) CreateSubscription(ctx context.Context, sub *models.NewsletterSubscription) (int64, error) {
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sql, args, err := r.sb.Insert("newsletter_subscriptions").
		Columns("email", "is_active").
		Values(sub.Email, sub.IsActive).
		Suffix("RETURNING id, subscribed_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subscription query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&sub.ID, &sub.SubscribedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "newsletter_subscriptions_email_key") {
			return 0, apperrors.ErrAlreadySubscribed
		}
		return 0, fmt.Errorf("error creating subscription: %w", err)
	}
	return sub.ID, nil
}

// SetSubscriptionActive toggles a subscription
func (r *NewsletterRepository) SetSubscriptionActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("newsletter_subscriptions").Set("is_active", active).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subscription query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}

// DeleteSubscription removes a subscription
func (r *NewsletterRepository) DeleteSubscription(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("newsletter_subscriptions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subscription query: %w", err)
	}
	return execAffectingOne(ctx, r.db, sql, args, apperrors.ErrContentNotFound)
}
