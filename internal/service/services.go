package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/validation"
)

// PageService composes the landing pages: fan-out pool fetches, then the
// sequential rank/allocate/fallback/interleave pass.
type PageService interface {
	Home(ctx context.Context) (*models.HomePage, error)
	Area(ctx context.Context, slug string) (*models.AreaPage, error)
	Neighborhood(ctx context.Context, slug string) (*models.AreaPage, error)
}

// StoryService serves the stories archive.
type StoryService interface {
	Archive(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.StoriesPage, error)
}

// EventService serves event listings and the related-events rail.
type EventService interface {
	Upcoming(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.EventsPage, error)
	Related(ctx context.Context, slug string) ([]models.Event, error)
}

// DirectoryService serves the business directory.
type DirectoryService interface {
	Listings(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.DirectoryPage, error)
}

// NewsletterService serves the newsletter archive.
type NewsletterService interface {
	Archive(ctx context.Context, limit, offset int) (*models.NewsletterArchive, error)
}

// Services holds all service interfaces
type Services struct {
	Page       PageService
	Story      StoryService
	Event      EventService
	Directory  DirectoryService
	Newsletter NewsletterService
	Taxonomy   *TaxonomyCache
	Validator  *validation.FilterValidator
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewFilterValidator(log)
	pools := newPoolFetcher(repos, cfg.Fetch.Timeout, log)

	return &Services{
		Page:       newPageService(pools, cfg.Layout, log),
		Story:      newStoryService(pools, validator, cfg.Layout, log),
		Event:      newEventService(pools, validator, cfg.Layout, log),
		Directory:  newDirectoryService(pools, validator, log),
		Newsletter: newNewsletterService(repos, cfg.Layout, log),
		Taxonomy:   NewTaxonomyCache(repos.Taxonomy, validator, cfg.Fetch.TaxonomyRefresh, log),
		Validator:  validator,
	}
}
