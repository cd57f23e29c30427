package pricing

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// NormalizeRecipe trims the recipe name, drops ingredient lines with a blank
// name or a quantity below 1, and requires at least one line to remain.
// Selling prices are taken as given, negatives included.
func NormalizeRecipe(r models.Recipe) (models.Recipe, error) {
	out := models.Recipe{
		Name:         strings.TrimSpace(r.Name),
		SellingPrice: r.SellingPrice,
	}
	if out.Name == "" {
		return models.Recipe{}, fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}

	for _, line := range r.Ingredients {
		name := strings.TrimSpace(line.Name)
		if name == "" || line.Quantity <= 0 {
			continue
		}
		out.Ingredients = append(out.Ingredients, models.IngredientLine{Name: name, Quantity: line.Quantity})
	}
	if len(out.Ingredients) == 0 {
		return models.Recipe{}, fmt.Errorf("%w: %s needs at least one ingredient", ErrInvalidRecipe, out.Name)
	}

	return out, nil
}

// NormalizeIngredient trims the name and requires it to be non-empty.
func NormalizeIngredient(src models.IngredientSource) (models.IngredientSource, error) {
	src.Name = strings.TrimSpace(src.Name)
	src.Category = strings.TrimSpace(src.Category)
	if src.Name == "" {
		return models.IngredientSource{}, fmt.Errorf("%w: name is required", ErrInvalidIngredient)
	}
	return src, nil
}
