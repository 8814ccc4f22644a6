package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/database"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// newsletterRepo is the concrete implementation of NewsletterRepository
type newsletterRepo struct {
	db *database.DB
}

// NewNewsletterRepo creates a new newsletter repository
func NewNewsletterRepo(db *database.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

// List returns sent editions, newest first.
func (r *newsletterRepo) List(ctx context.Context, limit, offset int) ([]models.NewsletterEdition, error) {
	q := psql.Select("id", "slug", "subject", "preview_text", "sent_at").
		From("newsletter_editions").
		Where(squirrel.Eq{"status": "sent"}).
		Where("sent_at IS NOT NULL").
		OrderBy("sent_at DESC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build newsletters query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query newsletters: %w", err)
	}
	defer rows.Close()

	var editions []models.NewsletterEdition
	for rows.Next() {
		var edition models.NewsletterEdition
		err := rows.Scan(&edition.ID, &edition.Slug, &edition.Subject, &edition.PreviewText, &edition.SentAt)
		if err != nil {
			return nil, err
		}
		editions = append(editions, edition)
	}
	return editions, rows.Err()
}

// Count returns the number of sent editions.
func (r *newsletterRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM newsletter_editions WHERE status = 'sent' AND sent_at IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count newsletters: %w", err)
	}
	return count, nil
}
