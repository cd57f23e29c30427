package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// DraftService describes the missing-ingredient workflow operations.
type DraftService interface {
	Start(ctx context.Context, r models.Recipe) (models.RecipeDraft, error)
	Get(id string) (models.RecipeDraft, error)
	Resolve(ctx context.Context, id string, src models.IngredientSource) (models.RecipeDraft, error)
	Cancel(id string) (models.RecipeDraft, error)
}

// DraftHandler exposes recipe drafts over HTTP.
type DraftHandler struct {
	svc    DraftService
	logger *zap.Logger
}

// NewDraftHandler constructs the HTTP handler adapter.
func NewDraftHandler(svc DraftService, logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{svc: svc, logger: logger}
}

// Start submits a recipe. 201 means it was saved right away, 202 means a
// draft is waiting for ingredients.
func (h *DraftHandler) Start(c *gin.Context) {
	var r models.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.svc.Start(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(draftStatus(draft), draft)
}

// Get returns a pending draft.
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Resolve supplies the ingredient the draft is waiting for.
func (h *DraftHandler) Resolve(c *gin.Context) {
	var src models.IngredientSource
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.svc.Resolve(c.Request.Context(), c.Param("id"), src)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(draftStatus(draft), draft)
}

// Cancel discards a draft.
func (h *DraftHandler) Cancel(c *gin.Context) {
	draft, err := h.svc.Cancel(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func draftStatus(d models.RecipeDraft) int {
	if d.State == models.DraftCompleted {
		return http.StatusCreated
	}
	return http.StatusAccepted
}
