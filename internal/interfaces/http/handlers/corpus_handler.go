package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexatlas/precedent-intelligence/internal/application/ingest"
	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

// CorpusHandler serves corpus ingestion.
type CorpusHandler struct {
	service ingest.Service
}

// NewCorpusHandler wires the handler over the ingestion service.
func NewCorpusHandler(service ingest.Service) *CorpusHandler {
	return &CorpusHandler{service: service}
}

// IngestRequest is the body of POST /api/v1/corpus.
type IngestRequest struct {
	Documents []document.Document `json:"documents" binding:"required"`
}

// Ingest handles POST /api/v1/corpus.  The response reports how many
// documents became stored precedents; re-submitting the same corpus reports
// them as duplicates instead of storing twice.
func (h *CorpusHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    apperrors.ErrCodeBadRequest.String(),
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	report, err := h.service.IngestCorpus(c.Request.Context(), req.Documents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
