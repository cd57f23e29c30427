package engine

import "github.com/mamadbah2/recipecalc/internal/domain/models"

// Evaluate runs the full computation for one recipe. Breakdowns are not
// included; ask for them per tier with Breakdown.
func Evaluate(recipe models.Recipe, table *PriceTable) models.Evaluation {
	profit := Profit(recipe, table)
	raw := RawProfit(recipe.Ingredients, table)

	eval := models.Evaluation{
		Recipe:       recipe.Name,
		TotalCost:    profit.TotalCost,
		CostLines:    CostLines(recipe.Ingredients, table),
		SellingPrice: recipe.SellingPrice,
		Profit:       profit.Profit,
		RawProfit:    raw,
		Missing:      MissingIngredients(recipe.Ingredients, table),
		TableVersion: table.Version(),
	}

	for _, tier := range models.Tiers {
		eval.Comparisons[tier.Index()] = Compare(tier, profit.Profit.At(tier), raw)
	}
	return eval
}
