package models

import "fmt"

// ProfitResult is the crafted-item profit for every tier.
type ProfitResult struct {
	TotalCost float64    `json:"totalCost"`
	Profit    TierPrices `json:"profit"`
}

// CostLine details the craft cost contributed by one ingredient line.
type CostLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
	LineCost float64 `json:"lineCost"`
	Known    bool    `json:"known"`
}

// BreakdownLine details the raw resale value of one ingredient line.
type BreakdownLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Breakdown is the raw resale computation at a single tier.
type Breakdown struct {
	Tier              Tier            `json:"tier"`
	Lines             []BreakdownLine `json:"lines"`
	TotalSellingPrice float64         `json:"totalSellingPrice"`
	TotalCost         float64         `json:"totalCost"`
	RawProfit         float64         `json:"rawProfit"`
}

// OptionKind distinguishes crafting from reselling raw ingredients.
type OptionKind string

const (
	OptionRecipe OptionKind = "recipe"
	OptionRaw    OptionKind = "raw"
)

// Option is one candidate in the best-option selection.
type Option struct {
	Kind   OptionKind `json:"kind"`
	Tier   Tier       `json:"tier"`
	Profit float64    `json:"profit"`
}

// Label renders the option the way the comparison table names it.
func (o Option) Label() string {
	if o.Kind == OptionRecipe {
		return fmt.Sprintf("Recipe %s", o.Tier)
	}
	return fmt.Sprintf("Raw @ %s", o.Tier)
}

// Comparison is one row of the recipe-vs-raw table: the recipe sold at
// RecipeTier against the raw ingredients sold at each tier.
type Comparison struct {
	RecipeTier   Tier       `json:"recipeTier"`
	RecipeProfit float64    `json:"recipeProfit"`
	RawProfit    TierPrices `json:"rawProfit"`
	// Difference[t] is RecipeProfit minus RawProfit[t].
	Difference   TierPrices `json:"difference"`
	Best         Option     `json:"best"`
}

// Evaluation is everything the presenter needs for one recipe.
type Evaluation struct {
	Recipe       string                `json:"recipe"`
	TotalCost    float64               `json:"totalCost"`
	CostLines    []CostLine            `json:"costLines"`
	SellingPrice TierPrices            `json:"sellingPrice"`
	Profit       TierPrices            `json:"profit"`
	RawProfit    TierPrices            `json:"rawProfit"`
	Comparisons  [TierCount]Comparison `json:"comparisons"`
	Missing      []string              `json:"missing,omitempty"`
	TableVersion uint64                `json:"tableVersion"`
}

// Clone returns a copy that shares no slices with e.
func (e Evaluation) Clone() Evaluation {
	out := e
	if e.CostLines != nil {
		out.CostLines = append([]CostLine(nil), e.CostLines...)
	}
	if e.Missing != nil {
		out.Missing = append([]string(nil), e.Missing...)
	}
	return out
}
