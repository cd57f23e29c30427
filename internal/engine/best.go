package engine

import "github.com/mamadbah2/recipecalc/internal/domain/models"

// Candidates returns the six options for one recipe tier in tie-break order:
// the recipe first, then raw resale at 1-Star through 5-Star.
func Candidates(recipeTier models.Tier, recipeProfit float64, raw models.TierPrices) []models.Option {
	out := make([]models.Option, 0, models.TierCount+1)
	out = append(out, models.Option{Kind: models.OptionRecipe, Tier: recipeTier, Profit: recipeProfit})
	for _, tier := range models.Tiers {
		out = append(out, models.Option{Kind: models.OptionRaw, Tier: tier, Profit: raw.At(tier)})
	}
	return out
}

// BestOption returns the candidate with the strictly greatest profit; on a
// tie the earliest candidate wins. It returns the zero Option when given none.
func BestOption(candidates []models.Option) models.Option {
	if len(candidates) == 0 {
		return models.Option{}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Profit > best.Profit {
			best = c
		}
	}
	return best
}

// Compare builds the comparison row for the recipe sold at recipeTier.
func Compare(recipeTier models.Tier, recipeProfit float64, raw models.TierPrices) models.Comparison {
	row := models.Comparison{
		RecipeTier:   recipeTier,
		RecipeProfit: recipeProfit,
		RawProfit:    raw,
		Best:         BestOption(Candidates(recipeTier, recipeProfit, raw)),
	}
	for _, tier := range models.Tiers {
		row.Difference.Set(tier, recipeProfit-raw.At(tier))
	}
	return row
}
