package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/database"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// psql builds every query with Postgres placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostRepository fetches story pools. All reads; pool ordering is part of
// the contract (stable for identical FilterSpecs).
type PostRepository interface {
	List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, f engine.FilterSpec) (int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
}

// EventRepository fetches event pools.
type EventRepository interface {
	List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Event, error)
	Count(ctx context.Context, f engine.FilterSpec) (int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
}

// BusinessRepository fetches directory listing pools.
type BusinessRepository interface {
	List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Business, error)
	Count(ctx context.Context, f engine.FilterSpec) (int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
}

// VideoRepository fetches media pools.
type VideoRepository interface {
	List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Video, error)
}

// NewsletterRepository fetches the newsletter archive.
type NewsletterRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.NewsletterEdition, error)
	Count(ctx context.Context) (int, error)
}

// TaxonomyRepository resolves slugs and feeds the filter-validation cache.
type TaxonomyRepository interface {
	LoadIndex(ctx context.Context) (*engine.TaxonomyIndex, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListNeighborhoods(ctx context.Context, areaSlug string) ([]models.Neighborhood, error)
	GetAreaBySlug(ctx context.Context, slug string) (*models.Area, error)
	GetNeighborhoodBySlug(ctx context.Context, slug string) (*models.Neighborhood, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post       PostRepository
	Event      EventRepository
	Business   BusinessRepository
	Video      VideoRepository
	Newsletter NewsletterRepository
	Taxonomy   TaxonomyRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:       NewPostRepo(db),
		Event:      NewEventRepo(db),
		Business:   NewBusinessRepo(db),
		Video:      NewVideoRepo(db),
		Newsletter: NewNewsletterRepo(db),
		Taxonomy:   NewTaxonomyRepo(db),
	}
}
