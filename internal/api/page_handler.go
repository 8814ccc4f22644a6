package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/service"
)

// PageHandler serves the composed landing pages and the taxonomy lists
// that drive the client's filter controls.
type PageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		log:      log.With().Str("handler", "page").Logger(),
	}
}

// Home handles GET /v1/pages/home
func (h *PageHandler) Home(c *gin.Context) {
	page, err := h.services.Page.Home(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Home page composition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose page"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Area handles GET /v1/pages/areas/:slug
func (h *PageHandler) Area(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.services.Page.Area(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("area", slug).Msg("Area page composition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose page"})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Neighborhood handles GET /v1/pages/neighborhoods/:slug
func (h *PageHandler) Neighborhood(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.services.Page.Neighborhood(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("neighborhood", slug).Msg("Neighborhood page composition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose page"})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "neighborhood not found"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Categories handles GET /v1/taxonomy/categories
func (h *PageHandler) Categories(c *gin.Context) {
	categories, err := h.services.Taxonomy.Categories(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Categories lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Areas handles GET /v1/taxonomy/areas
func (h *PageHandler) Areas(c *gin.Context) {
	areas, err := h.services.Taxonomy.Areas(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Areas lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list areas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// Neighborhoods handles GET /v1/taxonomy/neighborhoods?area=...
func (h *PageHandler) Neighborhoods(c *gin.Context) {
	neighborhoods, err := h.services.Taxonomy.Neighborhoods(c.Request.Context(), c.Query("area"))
	if err != nil {
		h.log.Error().Err(err).Msg("Neighborhoods lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list neighborhoods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"neighborhoods": neighborhoods})
}
