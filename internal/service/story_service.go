package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/validation"
)

// storyService is the concrete implementation of StoryService
type storyService struct {
	pools     *poolFetcher
	validator *validation.FilterValidator
	layout    config.Layout
	log       zerolog.Logger
}

// newStoryService creates a new StoryService
func newStoryService(pools *poolFetcher, validator *validation.FilterValidator, layout config.Layout, log zerolog.Logger) *storyService {
	return &storyService{
		pools:     pools,
		validator: validator,
		layout:    layout,
		log:       log.With().Str("service", "story").Logger(),
	}
}

// Archive serves one page of the stories archive: filtered posts
// interleaved with matching videos, plus the filtered total for paging.
// The total comes from its own query so "load more" can tell whether more
// rows exist without refetching what the client already has.
func (s *storyService) Archive(ctx context.Context, f engine.FilterSpec, limit, offset int) (*models.StoriesPage, error) {
	f = s.validator.Sanitize(f)

	var posts []models.Post
	var videos []models.Video
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	s.pools.posts(gctx, g, "archive_posts", f, limit, &posts)
	s.pools.videos(gctx, g, "archive_videos", f, s.layout.Feed.MaxVideos, &videos)
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.pools.timeout)
		defer cancel()
		n, err := s.pools.repos.Post.Count(fctx, f)
		if err != nil {
			s.log.Error().Err(err).Msg("Archive count failed, defaulting to zero")
			return nil
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("archive pools: %w", err)
	}

	used := engine.NewUsedIDSet()
	feed := buildFeed(engine.Rank(posts, latestDesc()), videos, used, s.layout.Feed)

	return &models.StoriesPage{
		Feed:   feed,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
