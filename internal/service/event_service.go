package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/validation"
)

// eventService is the concrete implementation of EventService
type eventService struct {
	pools     *poolFetcher
	validator *validation.FilterValidator
	layout    config.Layout
	log       zerolog.Logger
}

// newEventService creates a new EventService
func newEventService(pools *poolFetcher, validator *validation.FilterValidator, layout config.Layout, log zerolog.Logger) *eventService {
	return &eventService{
		pools:     pools,
		validator: validator,
		layout:    layout,
		log:       log.With().Str("service", "event").Logger(),
	}
}

// Upcoming serves one page of the events listing.
func (s *eventService) Upcoming(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.EventsPage, error) {
	f = s.validator.Sanitize(f)
	f.Upcoming = true

	var events []models.Event
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	fetchPool(s.pools, gctx, g, "events_upcoming", &events, func(fctx context.Context) ([]models.Event, error) {
		return s.pools.repos.Event.List(fctx, f, limit, offset)
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.pools.timeout)
		defer cancel()
		n, err := s.pools.repos.Event.Count(fctx, f)
		if err != nil {
			s.log.Error().Err(err).Msg("Events count failed, defaulting to zero")
			return nil
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("events pools: %w", err)
	}

	return &models.EventsPage{
		Events: events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// relatedChain ranks candidates by affinity with the anchor event: same
// neighborhood, then same category, then the featured flag, then soonest
// start.
func relatedChain(anchor models.Event) engine.Chain[models.Event] {
	return engine.Chain[models.Event]{
		Predicates: []func(models.Event) bool{
			func(e models.Event) bool {
				return anchor.NeighborhoodID != "" && e.NeighborhoodID == anchor.NeighborhoodID
			},
			func(e models.Event) bool {
				return anchor.CategoryID != "" && e.CategoryID == anchor.CategoryID
			},
			func(e models.Event) bool { return e.IsFeatured },
		},
		Date:  func(e models.Event) time.Time { return e.StartAt },
		Order: engine.DateAsc,
	}
}

// Related returns the events rail for an event detail page. The anchor
// itself is pre-claimed in the used set so it can never appear in its own
// rail. A missing anchor returns nil (routing-level not found).
func (s *eventService) Related(ctx context.Context, slug string) ([]models.Event, error) {
	anchor, err := s.pools.repos.Event.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve event %q: %w", slug, err)
	}
	if anchor == nil {
		return nil, nil
	}

	// One pool, generous limit: ranking decides what surfaces.
	var candidates []models.Event
	g, gctx := errgroup.WithContext(ctx)
	s.pools.events(gctx, g, "related_events", engine.FilterSpec{Upcoming: true}, s.layout.Related.PoolLimit, &candidates)
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("related pool: %w", err)
	}

	used := engine.NewUsedIDSet()
	used.Add(anchor.ID)

	ranked := engine.Rank(candidates, relatedChain(*anchor))
	rail := engine.Allocate(engine.Section{Name: "related_events", Target: s.layout.Related.Target}, used, ranked)
	return rail.Items, nil
}
