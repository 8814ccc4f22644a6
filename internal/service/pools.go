package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
)

// poolFetcher runs the fan-out half of a page render: every pool fetch is
// issued concurrently under its own timeout, and a failed or timed-out
// fetch degrades to an empty pool instead of failing the page. Only a
// genuine data dependency (slug resolution before a dependent fetch) is
// sequenced outside the group.
type poolFetcher struct {
	repos   *repository.Repositories
	timeout time.Duration
	log     zerolog.Logger
}

func newPoolFetcher(repos *repository.Repositories, timeout time.Duration, log zerolog.Logger) *poolFetcher {
	return &poolFetcher{
		repos:   repos,
		timeout: timeout,
		log:     log.With().Str("component", "pool_fetcher").Logger(),
	}
}

// fetchPool schedules one isolated pool fetch on the group. The
// destination is only read after the group is waited on.
func fetchPool[T any](p *poolFetcher, ctx context.Context, g *errgroup.Group, name string, dst *[]T, fetch func(context.Context) ([]T, error)) {
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		items, err := fetch(fctx)
		if err != nil {
			p.log.Error().Err(err).Str("pool", name).Msg("Pool fetch failed, degrading to empty")
			return nil
		}
		*dst = items
		return nil
	})
}

func (p *poolFetcher) posts(ctx context.Context, g *errgroup.Group, name string, f engine.FilterSpec, limit int, dst *[]models.Post) {
	fetchPool(p, ctx, g, name, dst, func(fctx context.Context) ([]models.Post, error) {
		return p.repos.Post.List(fctx, f, limit, 0)
	})
}

func (p *poolFetcher) events(ctx context.Context, g *errgroup.Group, name string, f engine.FilterSpec, limit int, dst *[]models.Event) {
	fetchPool(p, ctx, g, name, dst, func(fctx context.Context) ([]models.Event, error) {
		return p.repos.Event.List(fctx, f, limit, 0)
	})
}

func (p *poolFetcher) businesses(ctx context.Context, g *errgroup.Group, name string, f engine.FilterSpec, limit int, dst *[]models.Business) {
	fetchPool(p, ctx, g, name, dst, func(fctx context.Context) ([]models.Business, error) {
		return p.repos.Business.List(fctx, f, limit, 0)
	})
}

func (p *poolFetcher) videos(ctx context.Context, g *errgroup.Group, name string, f engine.FilterSpec, limit int, dst *[]models.Video) {
	fetchPool(p, ctx, g, name, dst, func(fctx context.Context) ([]models.Video, error) {
		return p.repos.Video.List(fctx, f, limit, 0)
	})
}
