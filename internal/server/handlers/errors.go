package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
	"github.com/mamadbah2/recipecalc/internal/service/drafts"
	"github.com/mamadbah2/recipecalc/internal/service/pricing"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and reported as a 500 without details.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var missing *pricing.MissingIngredientsError

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusConflict, gin.H{"error": "missing ingredients", "missing": missing.Names})
	case errors.Is(err, pricing.ErrRecipeNotFound), errors.Is(err, drafts.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrDuplicateRecipe), errors.Is(err, drafts.ErrUnexpectedIngredient):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrInvalidRecipe), errors.Is(err, pricing.ErrInvalidIngredient), errors.Is(err, models.ErrUnknownTier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrExportDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrExportFailed):
		logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export evaluation"})
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
