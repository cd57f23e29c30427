package repository

import (
	"context"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// Store persists the two catalogue documents. Each document is read and
// written wholesale; there is no partial update.
type Store interface {
	LoadIngredients(ctx context.Context) ([]models.IngredientSource, error)
	SaveIngredients(ctx context.Context, rows []models.IngredientSource) error
	LoadRecipes(ctx context.Context) ([]models.Recipe, error)
	SaveRecipes(ctx context.Context, recipes []models.Recipe) error
}
