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
)

// pageService is the concrete implementation of PageService
type pageService struct {
	pools  *poolFetcher
	layout config.Layout
	log    zerolog.Logger
}

// newPageService creates a new PageService
func newPageService(pools *poolFetcher, layout config.Layout, log zerolog.Logger) *pageService {
	return &pageService{
		pools:  pools,
		layout: layout,
		log:    log.With().Str("service", "page").Logger(),
	}
}

// latestDesc ranks a post pool featured-first, newest-first.
func latestDesc() engine.Chain[models.Post] {
	return engine.Chain[models.Post]{
		Predicates: []func(models.Post) bool{
			func(p models.Post) bool { return p.IsFeatured },
		},
		Date:  func(p models.Post) time.Time { return p.PublishedAt },
		Order: engine.DateDesc,
	}
}

// Home composes the homepage: hero and editor's picks from the featured
// pool with the latest pool as fallback, upcoming events, and the
// article/video feed from whatever the top sections did not claim.
func (s *pageService) Home(ctx context.Context) (*models.HomePage, error) {
	home := s.layout.Home

	var featured, latest []models.Post
	var events []models.Event
	var videos []models.Video

	// Fetch enough latest posts to backfill the top sections and still
	// populate the feed after dedup.
	latestLimit := home.FeedArticles + home.HeroTarget + home.PicksTarget

	g, gctx := errgroup.WithContext(ctx)
	s.pools.posts(gctx, g, "home_featured", engine.FilterSpec{Featured: true}, home.HeroTarget+home.PicksTarget, &featured)
	s.pools.posts(gctx, g, "home_latest", engine.FilterSpec{}, latestLimit, &latest)
	s.pools.events(gctx, g, "home_events", engine.FilterSpec{Upcoming: true}, home.EventsTarget, &events)
	s.pools.videos(gctx, g, "home_videos", engine.FilterSpec{}, s.layout.Feed.MaxVideos, &videos)
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("home pools: %w", err)
	}

	rankedFeatured := engine.Rank(featured, latestDesc())
	rankedLatest := engine.Rank(latest, latestDesc())

	used := engine.NewUsedIDSet()
	hero := engine.Allocate(engine.Section{Name: "hero", Target: home.HeroTarget}, used, rankedFeatured, rankedLatest)
	picks := engine.Allocate(engine.Section{Name: "editors_picks", Target: home.PicksTarget}, used, rankedFeatured, rankedLatest)
	upcoming := engine.Allocate(engine.Section{Name: "upcoming_events", Target: home.EventsTarget}, used, events)

	page := &models.HomePage{
		Hero:           hero.Items,
		EditorsPicks:   picks.Items,
		UpcomingEvents: upcoming.Items,
		Feed:           buildFeed(rankedLatest, videos, used, s.layout.Feed),
	}
	if len(hero.Items) > 0 {
		page.HeroKicker = pickKicker(hero.Items[0].Slug)
	}

	if hero.Empty() || picks.Empty() {
		s.log.Warn().
			Bool("hero_empty", hero.Empty()).
			Bool("picks_empty", picks.Empty()).
			Msg("Homepage section rendering empty state")
	}

	return page, nil
}

// Area composes an area landing page.
func (s *pageService) Area(ctx context.Context, slug string) (*models.AreaPage, error) {
	area, err := s.pools.repos.Taxonomy.GetAreaBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve area %q: %w", slug, err)
	}
	if area == nil {
		return nil, nil
	}

	tiers := []engine.FilterSpec{{Area: area.Slug}, {}}
	return s.composeLanding(ctx, *area, nil, tiers)
}

// Neighborhood composes a neighborhood landing page. The fallback chain
// runs one tier narrower than the area page: neighborhood, then the parent
// area, then city-wide.
func (s *pageService) Neighborhood(ctx context.Context, slug string) (*models.AreaPage, error) {
	neighborhood, err := s.pools.repos.Taxonomy.GetNeighborhoodBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve neighborhood %q: %w", slug, err)
	}
	if neighborhood == nil {
		return nil, nil
	}

	area, err := s.pools.repos.Taxonomy.GetAreaBySlug(ctx, neighborhood.AreaSlug)
	if err != nil {
		return nil, fmt.Errorf("resolve area %q: %w", neighborhood.AreaSlug, err)
	}
	if area == nil {
		area = &models.Area{Slug: neighborhood.AreaSlug}
	}

	tiers := []engine.FilterSpec{
		{Neighborhood: neighborhood.Slug},
		{Area: neighborhood.AreaSlug},
		{},
	}
	return s.composeLanding(ctx, *area, neighborhood, tiers)
}

// composeLanding fills the shared landing-page sections. tiers is the
// page's fallback chain, narrowest filter first, ending city-wide; each
// section drains the chain in order under the shared used set.
func (s *pageService) composeLanding(ctx context.Context, area models.Area, neighborhood *models.Neighborhood, tiers []engine.FilterSpec) (*models.AreaPage, error) {
	layout := s.layout.Area

	bizTiers := make([][]models.Business, len(tiers))
	postTiers := make([][]models.Post, len(tiers))
	videoTiers := make([][]models.Video, len(tiers))
	eventTiers := make([][]models.Event, len(tiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		name := fmt.Sprintf("landing_tier_%d", i)
		upcoming := tier
		upcoming.Upcoming = true
		s.pools.businesses(gctx, g, name+"_businesses", tier, layout.SpotlightTarget, &bizTiers[i])
		s.pools.posts(gctx, g, name+"_posts", tier, layout.StoriesTarget, &postTiers[i])
		s.pools.videos(gctx, g, name+"_videos", tier, layout.VideosTarget, &videoTiers[i])
		s.pools.events(gctx, g, name+"_events", upcoming, layout.EventsTarget, &eventTiers[i])
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("landing pools: %w", err)
	}

	rankedPostTiers := make([][]models.Post, len(postTiers))
	for i, tier := range postTiers {
		rankedPostTiers[i] = engine.Rank(tier, latestDesc())
	}

	used := engine.NewUsedIDSet()
	spotlight := engine.Allocate(engine.Section{Name: "spotlight", Target: layout.SpotlightTarget}, used, bizTiers...)
	stories := engine.Allocate(engine.Section{Name: "stories", Target: layout.StoriesTarget}, used, rankedPostTiers...)
	videos := engine.Allocate(engine.Section{Name: "videos", Target: layout.VideosTarget}, used, videoTiers...)
	events := engine.Allocate(engine.Section{Name: "upcoming_events", Target: layout.EventsTarget}, used, eventTiers...)

	return &models.AreaPage{
		Area:           area,
		Neighborhood:   neighborhood,
		Spotlight:      spotlight.Items,
		Stories:        stories.Items,
		Videos:         videos.Items,
		UpcomingEvents: events.Items,
	}, nil
}
