package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// The mocks apply the same filter semantics the SQL repositories do, over
// in-memory slices, so service tests exercise real pool shapes. Fixtures
// are expected to be pre-sorted in the repository's List order.

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts     []models.Post
	ListErr   error
	CountErr  error
	ListCalls int
}

func NewMockPostRepository(posts ...models.Post) *MockPostRepository {
	return &MockPostRepository{Posts: posts}
}

func (m *MockPostRepository) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Post, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	matched := make([]models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		if matchPost(p, f) {
			matched = append(matched, p)
		}
	}
	return window(matched, limit, offset), nil
}

func (m *MockPostRepository) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	n := 0
	for _, p := range m.Posts {
		if matchPost(p, f) {
			n++
		}
	}
	return n, nil
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for i := range m.Posts {
		if m.Posts[i].Slug == slug {
			p := m.Posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	Events   []models.Event
	Now      time.Time
	ListErr  error
	CountErr error
}

func NewMockEventRepository(events ...models.Event) *MockEventRepository {
	return &MockEventRepository{Events: events, Now: time.Now()}
}

func (m *MockEventRepository) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Event, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	matched := make([]models.Event, 0, len(m.Events))
	for _, e := range m.Events {
		if m.matchEvent(e, f) {
			matched = append(matched, e)
		}
	}
	return window(matched, limit, offset), nil
}

func (m *MockEventRepository) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	n := 0
	for _, e := range m.Events {
		if m.matchEvent(e, f) {
			n++
		}
	}
	return n, nil
}

func (m *MockEventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	for i := range m.Events {
		if m.Events[i].Slug == slug {
			e := m.Events[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (m *MockEventRepository) matchEvent(e models.Event, f engine.FilterSpec) bool {
	if f.Upcoming && e.StartAt.Before(m.Now) {
		return false
	}
	if f.Category != "" && e.CategorySlug != f.Category {
		return false
	}
	if f.Neighborhood != "" && e.NeighborhoodSlug != f.Neighborhood {
		return false
	}
	if f.Area != "" && e.AreaSlug != f.Area {
		return false
	}
	if f.Featured && !e.IsFeatured {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// MockBusinessRepository is a mock implementation of BusinessRepository
type MockBusinessRepository struct {
	Businesses []models.Business
	ListErr    error
	CountErr   error
}

func NewMockBusinessRepository(businesses ...models.Business) *MockBusinessRepository {
	return &MockBusinessRepository{Businesses: businesses}
}

func (m *MockBusinessRepository) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Business, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	matched := make([]models.Business, 0, len(m.Businesses))
	for _, b := range m.Businesses {
		if matchBusiness(b, f) {
			matched = append(matched, b)
		}
	}
	return window(matched, limit, offset), nil
}

func (m *MockBusinessRepository) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	n := 0
	for _, b := range m.Businesses {
		if matchBusiness(b, f) {
			n++
		}
	}
	return n, nil
}

func (m *MockBusinessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	for i := range m.Businesses {
		if m.Businesses[i].Slug == slug {
			b := m.Businesses[i]
			return &b, nil
		}
	}
	return nil, nil
}

// MockVideoRepository is a mock implementation of VideoRepository
type MockVideoRepository struct {
	Videos  []models.Video
	ListErr error
}

func NewMockVideoRepository(videos ...models.Video) *MockVideoRepository {
	return &MockVideoRepository{Videos: videos}
}

func (m *MockVideoRepository) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Video, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	matched := make([]models.Video, 0, len(m.Videos))
	for _, v := range m.Videos {
		if matchVideo(v, f) {
			matched = append(matched, v)
		}
	}
	return window(matched, limit, offset), nil
}

// MockNewsletterRepository is a mock implementation of NewsletterRepository
type MockNewsletterRepository struct {
	Editions []models.NewsletterEdition
	ListErr  error
	CountErr error
}

func NewMockNewsletterRepository(editions ...models.NewsletterEdition) *MockNewsletterRepository {
	return &MockNewsletterRepository{Editions: editions}
}

func (m *MockNewsletterRepository) List(ctx context.Context, limit, offset int) ([]models.NewsletterEdition, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return window(m.Editions, limit, offset), nil
}

func (m *MockNewsletterRepository) Count(ctx context.Context) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return len(m.Editions), nil
}

// MockTaxonomyRepository is a mock implementation of TaxonomyRepository
type MockTaxonomyRepository struct {
	Index          *engine.TaxonomyIndex
	CategoryList   []models.Category
	AreaList       []models.Area
	NeighborhoodsL []models.Neighborhood
	LoadErr        error
	LoadCalls      int
}

func NewMockTaxonomyRepository() *MockTaxonomyRepository {
	return &MockTaxonomyRepository{Index: engine.NewTaxonomyIndex()}
}

func (m *MockTaxonomyRepository) LoadIndex(ctx context.Context) (*engine.TaxonomyIndex, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Index, nil
}

func (m *MockTaxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return m.CategoryList, nil
}

func (m *MockTaxonomyRepository) ListAreas(ctx context.Context) ([]models.Area, error) {
	return m.AreaList, nil
}

func (m *MockTaxonomyRepository) ListNeighborhoods(ctx context.Context, areaSlug string) ([]models.Neighborhood, error) {
	if areaSlug == "" {
		return m.NeighborhoodsL, nil
	}
	scoped := make([]models.Neighborhood, 0, len(m.NeighborhoodsL))
	for _, n := range m.NeighborhoodsL {
		if n.AreaSlug == areaSlug {
			scoped = append(scoped, n)
		}
	}
	return scoped, nil
}

func (m *MockTaxonomyRepository) GetAreaBySlug(ctx context.Context, slug string) (*models.Area, error) {
	for i := range m.AreaList {
		if m.AreaList[i].Slug == slug {
			a := m.AreaList[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *MockTaxonomyRepository) GetNeighborhoodBySlug(ctx context.Context, slug string) (*models.Neighborhood, error) {
	for i := range m.NeighborhoodsL {
		if m.NeighborhoodsL[i].Slug == slug {
			n := m.NeighborhoodsL[i]
			return &n, nil
		}
	}
	return nil, nil
}

func matchPost(p models.Post, f engine.FilterSpec) bool {
	if f.Category != "" && p.CategorySlug != f.Category {
		return false
	}
	if f.Neighborhood != "" && p.NeighborhoodSlug != f.Neighborhood {
		return false
	}
	if f.Area != "" && p.AreaSlug != f.Area {
		return false
	}
	if f.Featured && !p.IsFeatured {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func matchBusiness(b models.Business, f engine.FilterSpec) bool {
	if f.Category != "" && b.CategorySlug != f.Category {
		return false
	}
	if f.Neighborhood != "" && b.NeighborhoodSlug != f.Neighborhood {
		return false
	}
	if f.Area != "" && b.AreaSlug != f.Area {
		return false
	}
	if f.Tier != "" && b.Tier != f.Tier {
		return false
	}
	if f.Featured && !b.IsFeatured {
		return false
	}
	if f.Amenity != "" && !contains(b.Amenities, f.Amenity) {
		return false
	}
	if f.Identity != "" && !contains(b.Identities, f.Identity) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func matchVideo(v models.Video, f engine.FilterSpec) bool {
	if f.Neighborhood != "" && v.NeighborhoodSlug != f.Neighborhood {
		return false
	}
	if f.Area != "" && v.AreaSlug != f.Area {
		return false
	}
	if f.Featured && !v.IsFeatured {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
