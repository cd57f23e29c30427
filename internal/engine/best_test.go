package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

func TestCandidates_Order(t *testing.T) {
	got := Candidates(models.TierTwoStar, 1, models.TierPrices{10, 20, 30, 40, 50})

	require.Len(t, got, 6)
	assert.Equal(t, models.Option{Kind: models.OptionRecipe, Tier: models.TierTwoStar, Profit: 1}, got[0])
	for i, tier := range models.Tiers {
		assert.Equal(t, models.Option{Kind: models.OptionRaw, Tier: tier, Profit: float64((i + 1) * 10)}, got[i+1])
	}
}

func TestBestOption(t *testing.T) {
	tests := []struct {
		name       string
		recipe     float64
		raw        models.TierPrices
		wantKind   models.OptionKind
		wantTier   models.Tier
		wantProfit float64
	}{
		{
			name:       "raw strictly greater",
			recipe:     0,
			raw:        models.TierPrices{-5, -2, 0, 3, 1},
			wantKind:   models.OptionRaw,
			wantTier:   models.TierFourStar,
			wantProfit: 3,
		},
		{
			name:       "tie goes to recipe",
			recipe:     7,
			raw:        models.TierPrices{1, 7, 2, 3, 4},
			wantKind:   models.OptionRecipe,
			wantTier:   models.TierThreeStar,
			wantProfit: 7,
		},
		{
			name:       "tie between raw tiers goes to lower tier",
			recipe:     -1,
			raw:        models.TierPrices{0, 4, 2, 4, 4},
			wantKind:   models.OptionRaw,
			wantTier:   models.TierTwoStar,
			wantProfit: 4,
		},
		{
			name:       "recipe wins outright",
			recipe:     100,
			raw:        models.TierPrices{1, 2, 3, 4, 5},
			wantKind:   models.OptionRecipe,
			wantTier:   models.TierThreeStar,
			wantProfit: 100,
		},
		{
			name:       "all negative",
			recipe:     -10,
			raw:        models.TierPrices{-8, -9, -3, -4, -3},
			wantKind:   models.OptionRaw,
			wantTier:   models.TierThreeStar,
			wantProfit: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestOption(Candidates(models.TierThreeStar, tt.recipe, tt.raw))
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantProfit, got.Profit)
		})
	}
}

func TestBestOption_Empty(t *testing.T) {
	assert.Equal(t, models.Option{}, BestOption(nil))
}

func TestCompare_Difference(t *testing.T) {
	row := Compare(models.TierTwoStar, 0, models.TierPrices{-5, -2, 0, 3, 1})

	assert.Equal(t, models.TierPrices{5, 2, 0, -3, -1}, row.Difference)
	assert.Equal(t, "Raw @ 4-Star", row.Best.Label())
}

func TestEvaluate_BestOptionPerTier(t *testing.T) {
	table := NewPriceTable([]models.IngredientSource{fish()})
	recipe := models.Recipe{
		Name:         "Grilled Fish",
		Ingredients:  []models.IngredientLine{{Name: "Fish", Quantity: 3}},
		SellingPrice: models.TierPrices{10, 20, 30, 50, 60},
	}

	eval := Evaluate(recipe, table)

	assert.Equal(t, "Grilled Fish", eval.Recipe)
	assert.Equal(t, 15.0, eval.TotalCost)
	assert.Equal(t, models.TierPrices{-5, 5, 15, 35, 45}, eval.Profit)
	assert.Equal(t, models.TierPrices{-9, -3, 3, 9, 15}, eval.RawProfit)
	assert.Empty(t, eval.Missing)

	// Raw @ 5-Star (15) beats 1-Star recipe (-5) and 2-Star recipe (5),
	// ties the 3-Star recipe (recipe wins), loses to 4-Star and 5-Star.
	want := []string{"Raw @ 5-Star", "Raw @ 5-Star", "Recipe 3-Star", "Recipe 4-Star", "Recipe 5-Star"}
	for i, tier := range models.Tiers {
		row := eval.Comparisons[tier.Index()]
		assert.Equal(t, tier, row.RecipeTier)
		assert.Equal(t, want[i], row.Best.Label(), tier.String())
	}
}

func TestEvaluate_ReportsMissing(t *testing.T) {
	recipe := models.Recipe{
		Name:        "Odd Stew",
		Ingredients: []models.IngredientLine{{Name: "Unobtainium", Quantity: 2}, {Name: "Fish", Quantity: 1}},
	}

	eval := Evaluate(recipe, NewPriceTable([]models.IngredientSource{fish()}))

	assert.Equal(t, []string{"Unobtainium"}, eval.Missing)
	assert.Equal(t, 5.0, eval.TotalCost)
}
