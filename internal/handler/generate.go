package handler

import (
	"net/http"

	"homematch/internal/listing"
	"homematch/internal/model"
	"homematch/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateHandler handles listing synthesis HTTP requests
type GenerateHandler struct {
	generator    *service.ListingGenerator
	listingsFile string
	defaultCount int
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generator *service.ListingGenerator, listingsFile string, defaultCount int) *GenerateHandler {
	return &GenerateHandler{
		generator:    generator,
		listingsFile: listingsFile,
		defaultCount: defaultCount,
	}
}

// Generate handles POST /api/v1/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = h.defaultCount
	}

	listings, err := h.generator.Generate(c.Request.Context(), req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed: " + err.Error()})
		return
	}

	if err := listing.SaveFile(h.listingsFile, listings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.GenerateResponse{
		Generated: len(listings),
		Listings:  listings,
	})
}
