package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// CatalogueService describes the pricing operations the HTTP layer uses.
type CatalogueService interface {
	Ingredients() []models.IngredientSource
	ReplaceIngredients(ctx context.Context, rows []models.IngredientSource) error
	AddIngredient(ctx context.Context, src models.IngredientSource) (models.IngredientSource, error)
	CheckMissing(lines []models.IngredientLine) []string
	Recipes(search string) []models.Recipe
	ReplaceRecipes(ctx context.Context, recipes []models.Recipe) error
	AddRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, name string) error
	Evaluate(name string) (models.Evaluation, error)
	EvaluateRecipe(r models.Recipe) (models.Evaluation, error)
	Breakdown(name string, tier models.Tier) (models.Breakdown, error)
	ExportEvaluation(ctx context.Context, name string) error
}

// CatalogueHandler serves ingredients, recipes and their evaluations.
type CatalogueHandler struct {
	svc    CatalogueService
	logger *zap.Logger
}

// NewCatalogueHandler constructs the HTTP handler adapter.
func NewCatalogueHandler(svc CatalogueService, logger *zap.Logger) *CatalogueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogueHandler{svc: svc, logger: logger}
}

// GetIngredientDocument returns the whole ingredient document.
func (h *CatalogueHandler) GetIngredientDocument(c *gin.Context) {
	rows := h.svc.Ingredients()
	if rows == nil {
		rows = []models.IngredientSource{}
	}
	c.JSON(http.StatusOK, rows)
}

// PutIngredientDocument replaces the whole ingredient document.
func (h *CatalogueHandler) PutIngredientDocument(c *gin.Context) {
	var rows []models.IngredientSource
	if err := c.ShouldBindJSON(&rows); err != nil {
		h.logger.Warn("invalid ingredient document", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	if err := h.svc.ReplaceIngredients(c.Request.Context(), rows); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetRecipeDocument returns the whole recipe document.
func (h *CatalogueHandler) GetRecipeDocument(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Recipes(""))
}

// PutRecipeDocument replaces the whole recipe document.
func (h *CatalogueHandler) PutRecipeDocument(c *gin.Context) {
	var recipes []models.Recipe
	if err := c.ShouldBindJSON(&recipes); err != nil {
		h.logger.Warn("invalid recipe document", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	if err := h.svc.ReplaceRecipes(c.Request.Context(), recipes); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddIngredient appends one ingredient to the price table.
func (h *CatalogueHandler) AddIngredient(c *gin.Context) {
	var src models.IngredientSource
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	stored, err := h.svc.AddIngredient(c.Request.Context(), src)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

type missingRequest struct {
	Ingredients []models.IngredientLine `json:"ingredients"`
}

// CheckMissing reports which ingredients of a recipe have no price entry.
func (h *CatalogueHandler) CheckMissing(c *gin.Context) {
	var req missingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	missing := h.svc.CheckMissing(req.Ingredients)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"missing": missing})
}

// ListRecipes returns the recipes, filtered by the optional search query.
func (h *CatalogueHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Recipes(c.Query("search")))
}

// AddRecipe saves a recipe whose ingredients are all known.
func (h *CatalogueHandler) AddRecipe(c *gin.Context) {
	var r models.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.AddRecipe(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteRecipe removes a recipe by name.
func (h *CatalogueHandler) DeleteRecipe(c *gin.Context) {
	if err := h.svc.DeleteRecipe(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Evaluation returns cost, profit and the comparison table for a recipe.
func (h *CatalogueHandler) Evaluation(c *gin.Context) {
	eval, err := h.svc.Evaluate(c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newEvaluationView(eval))
}

// Breakdown returns the raw resale detail of a recipe at one tier.
func (h *CatalogueHandler) Breakdown(c *gin.Context) {
	tier, err := models.ParseTier(c.Param("tier"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	bd, err := h.svc.Breakdown(c.Param("name"), tier)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, bd)
}

// Export pushes a recipe evaluation to the configured spreadsheet.
func (h *CatalogueHandler) Export(c *gin.Context) {
	if err := h.svc.ExportEvaluation(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// EvaluateAdHoc evaluates a recipe from the request body without saving it.
func (h *CatalogueHandler) EvaluateAdHoc(c *gin.Context) {
	var r models.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	eval, err := h.svc.EvaluateRecipe(r)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newEvaluationView(eval))
}
