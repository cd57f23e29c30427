package engine

import "github.com/mamadbah2/recipecalc/internal/domain/models"

// Profit computes the crafted-item profit for every tier.
func Profit(recipe models.Recipe, table *PriceTable) models.ProfitResult {
	total := TotalCost(recipe.Ingredients, table)

	result := models.ProfitResult{TotalCost: total}
	for _, tier := range models.Tiers {
		result.Profit.Set(tier, recipe.SellingPrice.At(tier)-total)
	}
	return result
}

// RawProfit computes, for every tier, the raw resale value of the lines minus
// their craft cost. The craft cost is computed once and subtracted from each
// tier unchanged.
func RawProfit(lines []models.IngredientLine, table *PriceTable) models.TierPrices {
	total := TotalCost(lines, table)

	var out models.TierPrices
	for _, tier := range models.Tiers {
		out.Set(tier, rawRevenue(lines, table, tier)-total)
	}
	return out
}

// RawProfitAtTier is RawProfit restricted to one tier. The result is
// bit-for-bit equal to RawProfit(lines, table).At(tier).
func RawProfitAtTier(lines []models.IngredientLine, table *PriceTable, tier models.Tier) float64 {
	return rawRevenue(lines, table, tier) - TotalCost(lines, table)
}

// Breakdown returns the per-line raw resale detail at tier. Unknown
// ingredients appear with a unit price of 0.
func Breakdown(lines []models.IngredientLine, table *PriceTable, tier models.Tier) models.Breakdown {
	out := models.Breakdown{
		Tier:  tier,
		Lines: make([]models.BreakdownLine, 0, len(lines)),
	}

	for _, line := range lines {
		var unit float64
		if rec, ok := table.Lookup(line.Name); ok {
			unit = rec.RawPrice.At(tier)
		}
		lineTotal := unit * float64(line.Quantity)
		out.TotalSellingPrice += lineTotal
		out.Lines = append(out.Lines, models.BreakdownLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
	}

	out.TotalCost = TotalCost(lines, table)
	out.RawProfit = out.TotalSellingPrice - out.TotalCost
	return out
}

// rawRevenue must accumulate in the same order and with the same products as
// Breakdown so that the two reconcile exactly.
func rawRevenue(lines []models.IngredientLine, table *PriceTable, tier models.Tier) float64 {
	var total float64
	for _, line := range lines {
		var unit float64
		if rec, ok := table.Lookup(line.Name); ok {
			unit = rec.RawPrice.At(tier)
		}
		total += unit * float64(line.Quantity)
	}
	return total
}
