package engine

import "github.com/mamadbah2/recipecalc/internal/domain/models"

// TotalCost sums quantity * craft cost over lines. Unknown ingredients add 0.
func TotalCost(lines []models.IngredientLine, table *PriceTable) float64 {
	var total float64
	for _, line := range lines {
		cost, _ := table.CraftCost(line.Name)
		total += cost * float64(line.Quantity)
	}
	return total
}

// CostLines returns the per-line craft cost detail in recipe order.
func CostLines(lines []models.IngredientLine, table *PriceTable) []models.CostLine {
	out := make([]models.CostLine, 0, len(lines))
	for _, line := range lines {
		cost, ok := table.CraftCost(line.Name)
		out = append(out, models.CostLine{
			Name:     line.Name,
			Quantity: line.Quantity,
			UnitCost: cost,
			LineCost: cost * float64(line.Quantity),
			Known:    ok,
		})
	}
	return out
}

// MissingIngredients lists the distinct names in lines that the table does
// not know, in first-occurrence order.
func MissingIngredients(lines []models.IngredientLine, table *PriceTable) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, line := range lines {
		if table.Has(line.Name) {
			continue
		}
		if _, dup := seen[line.Name]; dup {
			continue
		}
		seen[line.Name] = struct{}{}
		missing = append(missing, line.Name)
	}
	return missing
}
