package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRecipeNotFound indicates no stored recipe has the requested name.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe indicates the recipe failed validation.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrDuplicateRecipe indicates a recipe with the same name already exists.
	ErrDuplicateRecipe = errors.New("recipe already exists")
	// ErrInvalidIngredient indicates an ingredient row failed validation.
	ErrInvalidIngredient = errors.New("invalid ingredient")
	// ErrExportDisabled indicates no spreadsheet exporter was configured.
	ErrExportDisabled = errors.New("evaluation export is not configured")
	// ErrExportFailed wraps errors returned by the exporter.
	ErrExportFailed = errors.New("evaluation export failed")
)

// MissingIngredientsError lists every ingredient a recipe references that
// has no price table entry, in first-occurrence order.
type MissingIngredientsError struct {
	Names []string
}

func (e *MissingIngredientsError) Error() string {
	return fmt.Sprintf("missing ingredients: %s", strings.Join(e.Names, ", "))
}
