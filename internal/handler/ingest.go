package handler

import (
	"errors"
	"net/http"

	"homematch/internal/index"
	"homematch/internal/model"
	"homematch/internal/service"

	"github.com/gin-gonic/gin"
)

// IngestHandler handles index build HTTP requests
type IngestHandler struct {
	ingestor *service.Ingestor
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestor *service.Ingestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// Ingest handles POST /api/v1/ingest
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req model.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	count, loaded, err := h.ingestor.Ingest(c.Request.Context(), req.Force)
	if err != nil {
		if errors.Is(err, index.ErrNoListings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingest failed: " + err.Error()})
		return
	}

	response := model.IngestResponse{Ingested: count, Loaded: loaded}
	if loaded {
		response.Message = "Existing index loaded, no rebuild performed"
	}
	c.JSON(http.StatusOK, response)
}
