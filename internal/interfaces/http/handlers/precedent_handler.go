package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// PrecedentHandler serves read access to the precedent database.
type PrecedentHandler struct {
	repo precedent.Repository
}

// NewPrecedentHandler wires the handler over the precedent repository.
func NewPrecedentHandler(repo precedent.Repository) *PrecedentHandler {
	return &PrecedentHandler{repo: repo}
}

// ListResponse is the body of GET /api/v1/precedents.
type ListResponse struct {
	Total      int64                 `json:"total"`
	Precedents []ptypes.PrecedentDTO `json:"precedents"`
}

// List handles GET /api/v1/precedents, returning stored precedents in
// insertion order.
func (h *PrecedentHandler) List(c *gin.Context) {
	all, err := h.repo.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.repo.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := make([]ptypes.PrecedentDTO, 0, len(all))
	for _, p := range all {
		treatment := ptypes.TypePersuasive
		if p.IsSuperseded() {
			treatment = ptypes.TypeSuperseded
		}
		dtos = append(dtos, p.ToDTO(treatment))
	}

	c.JSON(http.StatusOK, ListResponse{Total: total, Precedents: dtos})
}

// Get handles GET /api/v1/precedents/:case_id.
func (h *PrecedentHandler) Get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), ptypes.CaseID(c.Param("case_id")))
	if err != nil {
		respondError(c, err)
		return
	}

	treatment := ptypes.TypePersuasive
	if p.IsSuperseded() {
		treatment = ptypes.TypeSuperseded
	}
	c.JSON(http.StatusOK, p.ToDTO(treatment))
}
