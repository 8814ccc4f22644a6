package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/validation"
)

// TaxonomyCache keeps the filter validator's slug index warm. It loads
// the index once at startup and refreshes it on an interval in the
// background; a failed refresh keeps the previous index.
type TaxonomyCache struct {
	repo      repository.TaxonomyRepository
	validator *validation.FilterValidator
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	log       zerolog.Logger
}

// NewTaxonomyCache creates the refresher.
func NewTaxonomyCache(repo repository.TaxonomyRepository, validator *validation.FilterValidator, interval time.Duration, log zerolog.Logger) *TaxonomyCache {
	return &TaxonomyCache{
		repo:      repo,
		validator: validator,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		log:       log.With().Str("component", "taxonomy_cache").Logger(),
	}
}

// Start runs the refresh loop until Stop is called or ctx is canceled.
// Meant to run on its own goroutine.
func (c *TaxonomyCache) Start(ctx context.Context) {
	defer close(c.doneCh)

	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Refresh(ctx)
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends the refresh loop and waits for it to exit.
func (c *TaxonomyCache) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// Categories lists all categories for filter UIs.
func (c *TaxonomyCache) Categories(ctx context.Context) ([]models.Category, error) {
	return c.repo.ListCategories(ctx)
}

// Areas lists all areas for filter UIs.
func (c *TaxonomyCache) Areas(ctx context.Context) ([]models.Area, error) {
	return c.repo.ListAreas(ctx)
}

// Neighborhoods lists neighborhoods, optionally scoped to one area.
func (c *TaxonomyCache) Neighborhoods(ctx context.Context, areaSlug string) ([]models.Neighborhood, error) {
	return c.repo.ListNeighborhoods(ctx, areaSlug)
}

// Refresh loads the taxonomy index and swaps it into the validator.
func (c *TaxonomyCache) Refresh(ctx context.Context) {
	index, err := c.repo.LoadIndex(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Taxonomy refresh failed, keeping previous index")
		return
	}
	c.validator.SetIndex(index)
	c.log.Debug().
		Int("categories", len(index.Categories)).
		Int("areas", len(index.Areas)).
		Int("neighborhoods", len(index.NeighborhoodArea)).
		Msg("Taxonomy index refreshed")
}
