package models

// IngredientLine is one (ingredient, quantity) pair of a recipe.
type IngredientLine struct {
	Name     string `json:"name" bson:"name" binding:"required"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Recipe is a named set of ingredient lines plus a selling price per tier.
type Recipe struct {
	Name         string           `json:"name" bson:"name" binding:"required"`
	Ingredients  []IngredientLine `json:"ingredients" bson:"ingredients"`
	SellingPrice TierPrices       `json:"sellingPrice" bson:"selling_price"`
}

// Clone returns a deep copy so callers can hand recipes out without sharing
// the ingredient slice.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]IngredientLine, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	return out
}
