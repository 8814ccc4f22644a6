package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/validation"
)

// directoryService is the concrete implementation of DirectoryService
type directoryService struct {
	pools     *poolFetcher
	validator *validation.FilterValidator
	log       zerolog.Logger
}

// newDirectoryService creates a new DirectoryService
func newDirectoryService(pools *poolFetcher, validator *validation.FilterValidator, log zerolog.Logger) *directoryService {
	return &directoryService{
		pools:     pools,
		validator: validator,
		log:       log.With().Str("service", "directory").Logger(),
	}
}

// Listings serves one page of the business directory. Ordering is
// tier-ranked in the store query, so paging across requests stays
// consistent for the same FilterSpec.
func (s *directoryService) Listings(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.DirectoryPage, error) {
	f = s.validator.Sanitize(f)

	var businesses []models.Business
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	fetchPool(s.pools, gctx, g, "directory_listings", &businesses, func(fctx context.Context) ([]models.Business, error) {
		return s.pools.repos.Business.List(fctx, f, limit, offset)
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.pools.timeout)
		defer cancel()
		n, err := s.pools.repos.Business.Count(fctx, f)
		if err != nil {
			s.log.Error().Err(err).Msg("Directory count failed, defaulting to zero")
			return nil
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("directory pools: %w", err)
	}

	return &models.DirectoryPage{
		Businesses: businesses,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
