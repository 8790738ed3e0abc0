package handler

import (
	"net/http"

	"homematch/internal/model"
	"homematch/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	matcher  *service.Matcher
	defaultN int
	maxN     int
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(matcher *service.Matcher, defaultN, maxN int) *SearchHandler {
	return &SearchHandler{
		matcher:  matcher,
		defaultN: defaultN,
		maxN:     maxN,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.N <= 0 {
		req.N = h.defaultN
	}
	if req.N > h.maxN {
		req.N = h.maxN
	}

	response, err := h.matcher.Match(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetListing handles GET /api/v1/listings/:id
func (h *SearchHandler) GetListing(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.matcher.GetListing(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing: " + err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}
