package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexatlas/precedent-intelligence/internal/application/analysis"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// AnalysisHandler serves issue analysis and service statistics.
type AnalysisHandler struct {
	service analysis.Service
}

// NewAnalysisHandler wires the handler over the analysis service.
func NewAnalysisHandler(service analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// AnalyzeRequest is the body of POST /api/v1/analyses.
type AnalyzeRequest struct {
	LegalIssue   string `json:"legal_issue" binding:"required"`
	Jurisdiction string `json:"jurisdiction"`
	UserFacts    string `json:"user_facts"`
}

// Analyze handles POST /api/v1/analyses.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    apperrors.ErrCodeBadRequest.String(),
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.service.AnalyzeIssue(c.Request.Context(), req.LegalIssue,
		ptypes.Jurisdiction(req.Jurisdiction), req.UserFacts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Statistics handles GET /api/v1/statistics.
func (h *AnalysisHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
