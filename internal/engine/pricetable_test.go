package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

func fish() models.IngredientSource {
	return models.IngredientSource{
		Name: "Fish", Category: models.CategoryFish, Cost: 5,
		OneStar: 2, TwoStar: 4, ThreeStar: 6, FourStar: 8, FiveStar: 10,
	}
}

func TestNewPriceTable_Lookup(t *testing.T) {
	table := NewPriceTable([]models.IngredientSource{fish(), {Name: "Salt", Cost: 1}})

	rec, ok := table.Lookup("Fish")
	require.True(t, ok)
	assert.Equal(t, 5.0, rec.CraftCost)
	assert.Equal(t, models.TierPrices{2, 4, 6, 8, 10}, rec.RawPrice)

	salt, ok := table.Lookup("Salt")
	require.True(t, ok)
	assert.Equal(t, models.TierPrices{}, salt.RawPrice, "untiered ingredient defaults to zero prices")

	_, ok = table.Lookup("fish")
	assert.False(t, ok, "lookup is case-sensitive")

	cost, ok := table.CraftCost("Unobtainium")
	assert.False(t, ok)
	assert.Zero(t, cost)
	assert.Equal(t, 2, table.Len())
}

func TestNewPriceTable_LastWriteWins(t *testing.T) {
	table := NewPriceTable([]models.IngredientSource{
		{Name: "Rice", Cost: 3, OneStar: 1},
		{Name: "Rice", Cost: 7, OneStar: 9},
	})

	cost, ok := table.CraftCost("Rice")
	require.True(t, ok)
	assert.Equal(t, 7.0, cost)

	rec, _ := table.Lookup("Rice")
	assert.Equal(t, 9.0, rec.RawPrice.At(models.TierOneStar))
	assert.Equal(t, 1, table.Len())
	assert.Len(t, table.Sources(), 2)
}

func TestNewPriceTable_Idempotent(t *testing.T) {
	rows := []models.IngredientSource{fish(), {Name: "Rice", Cost: 2}}

	first := NewPriceTable(rows)
	second := NewPriceTable(rows)

	for _, name := range []string{"Fish", "Rice", "Nope"} {
		a, okA := first.Lookup(name)
		b, okB := second.Lookup(name)
		assert.Equal(t, okA, okB, name)
		assert.Equal(t, a, b, name)
	}
}

func TestPriceTable_Nil(t *testing.T) {
	var table *PriceTable

	assert.Zero(t, table.Len())
	assert.False(t, table.Has("Fish"))
	assert.Nil(t, table.Sources())
	assert.Zero(t, TotalCost([]models.IngredientLine{{Name: "Fish", Quantity: 2}}, table))
}

func TestPriceTable_SourcesIsCopy(t *testing.T) {
	table := NewPriceTable([]models.IngredientSource{fish()})

	rows := table.Sources()
	rows[0].Cost = 999

	cost, _ := table.CraftCost("Fish")
	assert.Equal(t, 5.0, cost)
	assert.Equal(t, 5.0, table.Sources()[0].Cost)
}
