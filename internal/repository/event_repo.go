package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/database"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	db *database.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{db: db}
}

const eventColumns = `e.id, e.slug, e.title, e.venue_name, e.image_url, e.is_featured,
	e.category_id, c.slug, e.neighborhood_id, n.slug, e.area_id, a.slug, e.start_at, e.end_at`

func eventSelect() squirrel.SelectBuilder {
	return psql.Select(eventColumns).
		From("events e").
		LeftJoin("categories c ON c.id = e.category_id").
		LeftJoin("neighborhoods n ON n.id = e.neighborhood_id").
		LeftJoin("areas a ON a.id = e.area_id").
		Where(squirrel.Eq{"e.status": "published"})
}

func applyEventFilters(q squirrel.SelectBuilder, f engine.FilterSpec) squirrel.SelectBuilder {
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"c.slug": f.Category})
	}
	if f.Neighborhood != "" {
		q = q.Where(squirrel.Eq{"n.slug": f.Neighborhood})
	}
	if f.Area != "" {
		q = q.Where(squirrel.Eq{"a.slug": f.Area})
	}
	if f.Featured {
		q = q.Where(squirrel.Eq{"e.is_featured": true})
	}
	if f.Upcoming {
		q = q.Where("e.start_at >= NOW()")
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.venue_name": pattern},
		})
	}
	return q
}

// List returns events matching the filter. Upcoming pools order soonest
// first; otherwise newest first. The id tie-break keeps ordering stable.
func (r *eventRepo) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Event, error) {
	q := applyEventFilters(eventSelect(), f)
	if f.Upcoming {
		q = q.OrderBy("e.start_at ASC", "e.id ASC")
	} else {
		q = q.OrderBy("e.start_at DESC", "e.id ASC")
	}
	q = q.Limit(uint64(limit)).Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Count returns the number of events matching the filter.
func (r *eventRepo) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	q := applyEventFilters(psql.Select("COUNT(*)").
		From("events e").
		LeftJoin("categories c ON c.id = e.category_id").
		LeftJoin("neighborhoods n ON n.id = e.neighborhood_id").
		LeftJoin("areas a ON a.id = e.area_id").
		Where(squirrel.Eq{"e.status": "published"}), f)

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build events count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// GetBySlug retrieves a single event; nil when absent.
func (r *eventRepo) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	query, args, err := eventSelect().Where(squirrel.Eq{"e.slug": slug}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	var categoryID, categorySlug sql.NullString
	var neighborhoodID, neighborhoodSlug sql.NullString
	var areaID, areaSlug sql.NullString
	var endAt sql.NullTime

	err := row.Scan(
		&event.ID, &event.Slug, &event.Title, &event.VenueName, &event.ImageURL, &event.IsFeatured,
		&categoryID, &categorySlug,
		&neighborhoodID, &neighborhoodSlug,
		&areaID, &areaSlug,
		&event.StartAt, &endAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	event.CategoryID = categoryID.String
	event.CategorySlug = categorySlug.String
	event.NeighborhoodID = neighborhoodID.String
	event.NeighborhoodSlug = neighborhoodSlug.String
	event.AreaID = areaID.String
	event.AreaSlug = areaSlug.String
	if endAt.Valid {
		event.EndAt = &endAt.Time
	}
	return event, nil
}
