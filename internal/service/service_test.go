package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/mocks"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/service"
)

type testHarness struct {
	services       *service.Services
	postRepo       *mocks.MockPostRepository
	eventRepo      *mocks.MockEventRepository
	businessRepo   *mocks.MockBusinessRepository
	videoRepo      *mocks.MockVideoRepository
	newsletterRepo *mocks.MockNewsletterRepository
	taxonomyRepo   *mocks.MockTaxonomyRepository
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	postRepo := mocks.NewMockPostRepository()
	eventRepo := mocks.NewMockEventRepository()
	businessRepo := mocks.NewMockBusinessRepository()
	videoRepo := mocks.NewMockVideoRepository()
	newsletterRepo := mocks.NewMockNewsletterRepository()
	taxonomyRepo := mocks.NewMockTaxonomyRepository()

	repos := &repository.Repositories{
		Post:       postRepo,
		Event:      eventRepo,
		Business:   businessRepo,
		Video:      videoRepo,
		Newsletter: newsletterRepo,
		Taxonomy:   taxonomyRepo,
	}

	cfg := &config.Config{
		Fetch: config.FetchConfig{
			Timeout:         time.Second,
			MaxPageSize:     48,
			DefaultPageSize: 12,
			TaxonomyRefresh: time.Minute,
		},
		Layout: config.DefaultLayout(),
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)

	return &testHarness{
		services:       services,
		postRepo:       postRepo,
		eventRepo:      eventRepo,
		businessRepo:   businessRepo,
		videoRepo:      videoRepo,
		newsletterRepo: newsletterRepo,
		taxonomyRepo:   taxonomyRepo,
	}
}

func at(daysFromNow int) time.Time {
	return time.Now().AddDate(0, 0, daysFromNow)
}

func post(id string, daysAgo int, featured bool) models.Post {
	return models.Post{
		ID:          id,
		Slug:        id,
		Title:       "Post " + id,
		IsFeatured:  featured,
		PublishedAt: at(-daysAgo),
	}
}

func upcomingEvent(id string, daysAhead int) models.Event {
	return models.Event{
		ID:      id,
		Slug:    id,
		Title:   "Event " + id,
		StartAt: at(daysAhead),
	}
}

func TestHomeSectionsAreDisjoint(t *testing.T) {
	h := newTestHarness(t)
	h.postRepo.Posts = []models.Post{
		post("p1", 1, true),
		post("p2", 2, false),
		post("p3", 3, true),
		post("p4", 4, false),
		post("p5", 5, false),
		post("p6", 6, false),
	}
	h.eventRepo.Events = []models.Event{upcomingEvent("e1", 1), upcomingEvent("e2", 2)}
	h.videoRepo.Videos = []models.Video{{ID: "v1", Slug: "v1", PublishedAt: at(-1)}}

	page, err := h.services.Page.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	if len(page.Hero) != 1 || page.Hero[0].ID != "p1" {
		t.Errorf("hero = %v, want [p1]", page.Hero)
	}
	if len(page.EditorsPicks) != 3 {
		t.Fatalf("picks length = %d, want 3", len(page.EditorsPicks))
	}
	if page.EditorsPicks[0].ID != "p3" {
		t.Errorf("first pick = %s, want the remaining featured post p3", page.EditorsPicks[0].ID)
	}

	seen := map[string]bool{}
	for _, p := range page.Hero {
		seen[p.ID] = true
	}
	for _, p := range page.EditorsPicks {
		if seen[p.ID] {
			t.Errorf("post %s appears in both hero and picks", p.ID)
		}
		seen[p.ID] = true
	}
	for _, item := range page.Feed {
		if seen[item.ID] {
			t.Errorf("feed repeats %s from a top section", item.ID)
		}
	}

	if len(page.UpcomingEvents) != 2 {
		t.Errorf("upcoming events length = %d, want 2", len(page.UpcomingEvents))
	}
}

func TestHomeFeedInterleavesVideos(t *testing.T) {
	h := newTestHarness(t)
	// Ten posts beyond the hero+picks claim, so the feed has full groups.
	for i := 1; i <= 14; i++ {
		h.postRepo.Posts = append(h.postRepo.Posts, post(postID(i), i, false))
	}
	h.videoRepo.Videos = []models.Video{
		{ID: "v1", Slug: "v1", PublishedAt: at(-1)},
		{ID: "v2", Slug: "v2", PublishedAt: at(-2)},
	}

	page, err := h.services.Page.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	// Four articles, a video, four articles, a video, then the remainder.
	if len(page.Feed) < 10 {
		t.Fatalf("feed length = %d, want at least 10", len(page.Feed))
	}
	if page.Feed[4].Kind != engine.FeedVideo {
		t.Errorf("feed[4].Kind = %s, want video", page.Feed[4].Kind)
	}
	if page.Feed[9].Kind != engine.FeedVideo {
		t.Errorf("feed[9].Kind = %s, want video", page.Feed[9].Kind)
	}
	for i, item := range page.Feed {
		if i != 4 && i != 9 && item.Kind != engine.FeedArticle {
			t.Errorf("feed[%d].Kind = %s, want article", i, item.Kind)
		}
	}
}

func TestHomeKickerIsDeterministic(t *testing.T) {
	h := newTestHarness(t)
	h.postRepo.Posts = []models.Post{post("p1", 1, true)}

	first, err := h.services.Page.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}
	if first.HeroKicker == "" {
		t.Fatal("hero kicker is empty")
	}

	for i := 0; i < 5; i++ {
		again, err := h.services.Page.Home(context.Background())
		if err != nil {
			t.Fatalf("Home() error = %v", err)
		}
		if again.HeroKicker != first.HeroKicker {
			t.Errorf("kicker changed between renders: %q then %q", first.HeroKicker, again.HeroKicker)
		}
	}
}

func TestHomeDegradesFailedPoolToEmptySection(t *testing.T) {
	h := newTestHarness(t)
	h.postRepo.ListErr = errors.New("connection refused")
	h.eventRepo.Events = []models.Event{upcomingEvent("e1", 1)}

	page, err := h.services.Page.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v, want graceful degradation", err)
	}

	if len(page.Hero) != 0 {
		t.Errorf("hero length = %d, want 0 when the post pool fails", len(page.Hero))
	}
	if len(page.UpcomingEvents) != 1 {
		t.Errorf("upcoming events length = %d, want 1 from the healthy pool", len(page.UpcomingEvents))
	}
}

func TestAreaPageFallsBackToCityWide(t *testing.T) {
	h := newTestHarness(t)
	h.taxonomyRepo.AreaList = []models.Area{{ID: "a1", Slug: "westside", Name: "Westside"}}
	h.businessRepo.Businesses = []models.Business{
		{ID: "w1", Slug: "w1", Name: "W1", Tier: "sponsor", AreaSlug: "westside"},
		{ID: "w2", Slug: "w2", Name: "W2", Tier: "premium", AreaSlug: "westside"},
		{ID: "c1", Slug: "c1", Name: "C1", Tier: "standard", AreaSlug: "eastside"},
		{ID: "c2", Slug: "c2", Name: "C2", Tier: "standard", AreaSlug: "eastside"},
		{ID: "c3", Slug: "c3", Name: "C3", Tier: "free", AreaSlug: "eastside"},
		{ID: "c4", Slug: "c4", Name: "C4", Tier: "free", AreaSlug: "eastside"},
	}

	page, err := h.services.Page.Area(context.Background(), "westside")
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if page == nil {
		t.Fatal("Area() returned nil for a known area")
	}

	if len(page.Spotlight) != 6 {
		t.Fatalf("spotlight length = %d, want 6 after city-wide fallback", len(page.Spotlight))
	}
	if page.Spotlight[0].ID != "w1" || page.Spotlight[1].ID != "w2" {
		t.Errorf("spotlight leads with %s, %s, want the in-area businesses first",
			page.Spotlight[0].ID, page.Spotlight[1].ID)
	}
	seen := map[string]bool{}
	for _, b := range page.Spotlight {
		if seen[b.ID] {
			t.Errorf("spotlight repeats %s across fallback tiers", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestAreaPageUnknownSlugReturnsNil(t *testing.T) {
	h := newTestHarness(t)

	page, err := h.services.Page.Area(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if page != nil {
		t.Errorf("Area() = %+v, want nil for an unknown slug", page)
	}
}

func TestNeighborhoodPagePrefersNeighborhoodContent(t *testing.T) {
	h := newTestHarness(t)
	h.taxonomyRepo.AreaList = []models.Area{{ID: "a1", Slug: "westside", Name: "Westside"}}
	h.taxonomyRepo.NeighborhoodsL = []models.Neighborhood{
		{ID: "n1", Slug: "west-midtown", Name: "West Midtown", AreaID: "a1", AreaSlug: "westside"},
	}
	h.postRepo.Posts = []models.Post{
		{ID: "pn", Slug: "pn", NeighborhoodSlug: "west-midtown", AreaSlug: "westside", PublishedAt: at(-3)},
		{ID: "pa", Slug: "pa", AreaSlug: "westside", PublishedAt: at(-1)},
		{ID: "pc", Slug: "pc", AreaSlug: "eastside", PublishedAt: at(-2)},
	}

	page, err := h.services.Page.Neighborhood(context.Background(), "west-midtown")
	if err != nil {
		t.Fatalf("Neighborhood() error = %v", err)
	}
	if page == nil {
		t.Fatal("Neighborhood() returned nil for a known slug")
	}
	if page.Neighborhood == nil || page.Neighborhood.Slug != "west-midtown" {
		t.Fatalf("page.Neighborhood = %+v, want west-midtown", page.Neighborhood)
	}

	if len(page.Stories) != 3 {
		t.Fatalf("stories length = %d, want 3", len(page.Stories))
	}
	if page.Stories[0].ID != "pn" {
		t.Errorf("stories lead with %s, want the neighborhood post despite its age", page.Stories[0].ID)
	}
}

func TestStoriesArchiveReturnsFilteredTotal(t *testing.T) {
	h := newTestHarness(t)
	h.postRepo.Posts = []models.Post{
		post("p1", 1, false),
		post("p2", 2, false),
		post("p3", 3, false),
	}

	page, err := h.services.Story.Archive(context.Background(), engine.FilterSpec{}, 2, 0)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	if page.Total != 3 {
		t.Errorf("total = %d, want 3", page.Total)
	}
	if len(page.Feed) != 2 {
		t.Errorf("feed length = %d, want the requested page of 2", len(page.Feed))
	}
	if page.Limit != 2 || page.Offset != 0 {
		t.Errorf("envelope = limit %d offset %d, want 2/0", page.Limit, page.Offset)
	}
}

func TestRelatedEventsRankByAffinity(t *testing.T) {
	h := newTestHarness(t)
	anchor := models.Event{
		ID: "anchor", Slug: "anchor", Title: "Anchor",
		NeighborhoodID: "n1", CategoryID: "c1",
		StartAt: at(1),
	}
	h.eventRepo.Events = []models.Event{
		anchor,
		{ID: "plain", Slug: "plain", StartAt: at(1)},
		{ID: "same-cat", Slug: "same-cat", CategoryID: "c1", StartAt: at(2)},
		{ID: "featured", Slug: "featured", IsFeatured: true, StartAt: at(3)},
		{ID: "same-hood", Slug: "same-hood", NeighborhoodID: "n1", StartAt: at(5)},
	}

	events, err := h.services.Event.Related(context.Background(), "anchor")
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("related length = %d, want 3", len(events))
	}
	want := []string{"same-hood", "same-cat", "featured"}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("related[%d] = %s, want %s", i, events[i].ID, id)
		}
	}
	for _, e := range events {
		if e.ID == "anchor" {
			t.Error("anchor event appears in its own related rail")
		}
	}
}

func TestRelatedEventsUnknownSlugReturnsNil(t *testing.T) {
	h := newTestHarness(t)

	events, err := h.services.Event.Related(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if events != nil {
		t.Errorf("Related() = %v, want nil for an unknown event", events)
	}
}

func TestRelatedEventsFoundAnchorNeverNil(t *testing.T) {
	h := newTestHarness(t)
	h.eventRepo.Events = []models.Event{upcomingEvent("lonely", 1)}

	events, err := h.services.Event.Related(context.Background(), "lonely")
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if events == nil {
		t.Error("Related() = nil for a found anchor, want empty slice")
	}
	if len(events) != 0 {
		t.Errorf("related length = %d, want 0 when the anchor is the only event", len(events))
	}
}

func TestDirectoryListings(t *testing.T) {
	h := newTestHarness(t)
	h.businessRepo.Businesses = []models.Business{
		{ID: "b1", Slug: "b1", Name: "B1", Tier: "sponsor"},
		{ID: "b2", Slug: "b2", Name: "B2", Tier: "free"},
	}

	page, err := h.services.Directory.Listings(context.Background(), engine.FilterSpec{}, 24, 0)
	if err != nil {
		t.Fatalf("Listings() error = %v", err)
	}

	if len(page.Businesses) != 2 {
		t.Errorf("businesses length = %d, want 2", len(page.Businesses))
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
}

func TestNewsletterSidebarHeadingThreshold(t *testing.T) {
	h := newTestHarness(t)
	for i := 0; i < 7; i++ {
		h.newsletterRepo.Editions = append(h.newsletterRepo.Editions, models.NewsletterEdition{
			ID: postID(i), Slug: postID(i), Subject: "Edition", SentAt: at(-i),
		})
	}

	page, err := h.services.Newsletter.Archive(context.Background(), 12, 0)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if page.SidebarHeading != "From the Archive" {
		t.Errorf("heading = %q, want the long form past the threshold", page.SidebarHeading)
	}

	h.newsletterRepo.Editions = h.newsletterRepo.Editions[:3]
	page, err = h.services.Newsletter.Archive(context.Background(), 12, 0)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if page.SidebarHeading != "Catch Up" {
		t.Errorf("heading = %q, want the short form below the threshold", page.SidebarHeading)
	}
}

func TestNewsletterArchiveDefaultsPageSize(t *testing.T) {
	h := newTestHarness(t)

	page, err := h.services.Newsletter.Archive(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if page.Limit != 12 {
		t.Errorf("limit = %d, want the configured page size 12", page.Limit)
	}
}

func postID(i int) string {
	return string(rune('a'+i%26)) + "-post"
}
