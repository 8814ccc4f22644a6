package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/service"
)

// ListingHandler serves the filterable, pageable listings: stories,
// events, the business directory and the newsletter archive.
type ListingHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "listing").Logger(),
	}
}

// pagination reads limit/offset from the query, clamped to configured
// bounds. These are fetch-envelope values, not FilterSpec components.
func (h *ListingHandler) pagination(c *gin.Context) (limit, offset int) {
	limit = h.cfg.Fetch.DefaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.cfg.Fetch.MaxPageSize {
		limit = h.cfg.Fetch.MaxPageSize
	}

	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// Stories handles GET /v1/stories with the full filter surface
func (h *ListingHandler) Stories(c *gin.Context) {
	f := engine.ParseFilterSpec(c.Request.URL.Query())
	limit, offset := h.pagination(c)

	page, err := h.services.Story.Archive(c.Request.Context(), f, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Stories archive failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stories"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Events handles GET /v1/events
func (h *ListingHandler) Events(c *gin.Context) {
	f := engine.ParseFilterSpec(c.Request.URL.Query())
	limit, offset := h.pagination(c)

	page, err := h.services.Event.Upcoming(c.Request.Context(), f, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Events listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// RelatedEvents handles GET /v1/events/:slug/related
func (h *ListingHandler) RelatedEvents(c *gin.Context) {
	slug := c.Param("slug")

	events, err := h.services.Event.Related(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("event", slug).Msg("Related events failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list related events"})
		return
	}
	if events == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Directory handles GET /v1/directory
func (h *ListingHandler) Directory(c *gin.Context) {
	f := engine.ParseFilterSpec(c.Request.URL.Query())
	limit, offset := h.pagination(c)

	page, err := h.services.Directory.Listings(c.Request.Context(), f, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Directory listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list businesses"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Newsletters handles GET /v1/newsletters
func (h *ListingHandler) Newsletters(c *gin.Context) {
	limit, offset := h.pagination(c)

	page, err := h.services.Newsletter.Archive(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Newsletter archive failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list newsletters"})
		return
	}
	c.JSON(http.StatusOK, page)
}
