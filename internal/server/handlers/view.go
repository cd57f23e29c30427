package handlers

import (
	"fmt"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// evaluationView adds display-only margins to an evaluation.
type evaluationView struct {
	models.Evaluation
	// Margin is profit as a share of the selling price per tier, e.g. "12.5%".
	Margin map[string]string `json:"margin"`
}

func newEvaluationView(eval models.Evaluation) evaluationView {
	view := evaluationView{Evaluation: eval, Margin: make(map[string]string, models.TierCount)}
	for _, tier := range models.Tiers {
		view.Margin[tier.String()] = formatMargin(eval.Profit.At(tier), eval.SellingPrice.At(tier))
	}
	return view
}

// formatMargin renders profit/price as a percentage. Without a positive
// price a non-zero profit has no finite margin and renders as ∞ or -∞.
func formatMargin(profit, price float64) string {
	switch {
	case price > 0:
		return fmt.Sprintf("%.1f%%", profit/price*100)
	case profit > 0:
		return "∞"
	case profit < 0:
		return "-∞"
	default:
		return "0.0%"
	}
}
