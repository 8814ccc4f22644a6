package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/api"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/mocks"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/service"
)

func setupTestRouter() (*gin.Engine, *repository.Repositories) {
	gin.SetMode(gin.TestMode)

	repos := &repository.Repositories{
		Post:       mocks.NewMockPostRepository(),
		Event:      mocks.NewMockEventRepository(),
		Business:   mocks.NewMockBusinessRepository(),
		Video:      mocks.NewMockVideoRepository(),
		Newsletter: mocks.NewMockNewsletterRepository(),
		Taxonomy:   mocks.NewMockTaxonomyRepository(),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
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
	router := api.NewRouter(services, cfg, log)

	return router, repos
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "pages-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestHomeEndpoint(t *testing.T) {
	router, repos := setupTestRouter()
	postRepo := repos.Post.(*mocks.MockPostRepository)
	postRepo.Posts = []models.Post{
		{ID: "p1", Slug: "p1", Title: "Hero story", IsFeatured: true, PublishedAt: time.Now()},
	}

	req := httptest.NewRequest("GET", "/v1/pages/home", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	hero, ok := response["hero"].([]interface{})
	if !ok || len(hero) != 1 {
		t.Errorf("Expected one hero item, got %v", response["hero"])
	}
	if kicker, _ := response["hero_kicker"].(string); kicker == "" {
		t.Error("Expected a hero kicker")
	}
}

func TestAreaEndpointNotFound(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/pages/areas/nowhere", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestStoriesEndpointClampsLimit(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/stories?limit=5000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if limit := response["limit"].(float64); limit != 48 {
		t.Errorf("Expected limit clamped to 48, got %v", limit)
	}
}

func TestRelatedEventsNotFound(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/events/missing/related", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestTaxonomyCategoriesEndpoint(t *testing.T) {
	router, repos := setupTestRouter()
	taxRepo := repos.Taxonomy.(*mocks.MockTaxonomyRepository)
	taxRepo.CategoryList = []models.Category{
		{ID: "c1", Slug: "food-drink", Name: "Food & Drink"},
	}

	req := httptest.NewRequest("GET", "/v1/taxonomy/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string][]models.Category
	json.Unmarshal(w.Body.Bytes(), &response)

	if len(response["categories"]) != 1 || response["categories"][0].Slug != "food-drink" {
		t.Errorf("Expected one category, got %v", response["categories"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID header")
	}

	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("Expected X-Request-ID to round-trip, got %q", got)
	}
}
