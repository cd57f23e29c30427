package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

type fakeValues struct {
	rows    [][]interface{}
	readErr error

	writtenRange string
	written      []interface{}
}

func (f *fakeValues) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.writtenRange = sheetRange
	f.written = values
	return nil
}

func (f *fakeValues) ReadRows(_ context.Context, _ string) ([][]interface{}, error) {
	return f.rows, f.readErr
}

func TestParseIngredientRow(t *testing.T) {
	tests := []struct {
		name    string
		row     []interface{}
		want    models.IngredientSource
		wantErr bool
	}{
		{
			name: "full row",
			row:  []interface{}{"Fish", "Fish", "5", "2", "4", "6", "8", "10"},
			want: models.IngredientSource{Name: "Fish", Category: "Fish", Cost: 5, OneStar: 2, TwoStar: 4, ThreeStar: 6, FourStar: 8, FiveStar: 10},
		},
		{
			name: "short row defaults to zero",
			row:  []interface{}{" Salt ", "Material", "$1,250.5"},
			want: models.IngredientSource{Name: "Salt", Category: "Material", Cost: 1250.5},
		},
		{
			name: "numeric cells",
			row:  []interface{}{"Rice", "Crop", 1.5, 0.25, "", nil},
			want: models.IngredientSource{Name: "Rice", Category: "Crop", Cost: 1.5, OneStar: 0.25},
		},
		{name: "blank name", row: []interface{}{"", "Crop", "1"}, wantErr: true},
		{name: "empty", row: nil, wantErr: true},
		{name: "bad cost", row: []interface{}{"Rice", "Crop", "cheap"}, wantErr: true},
		{name: "nan price", row: []interface{}{"Fish", "Fish", "5", "NaN"}, wantErr: true},
		{name: "infinite price", row: []interface{}{"Fish", "Fish", "5", "2", "inf"}, wantErr: true},
		{name: "infinite cost", row: []interface{}{"Fish", "Fish", "Infinity"}, wantErr: true},
		{name: "overflowing cost", row: []interface{}{"Fish", "Fish", "1e400"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIngredientRow(tt.row)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceSheet_FetchIngredientsSkipsBadRows(t *testing.T) {
	repo := &fakeValues{rows: [][]interface{}{
		{"Fish", "Fish", "5", "2", "4", "6", "8", "10"},
		{"", "oops"},
		{"Kelp", "Crop", "1", "NaN", "inf"},
		{"Salt", "Material", "1"},
	}}
	sheet := NewPriceSheet(repo, "Ingredients!A2:H", "Evaluations!A:M", nil)

	rows, err := sheet.FetchIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Fish", rows[0].Name)
	assert.Equal(t, "Salt", rows[1].Name)
}

func TestPriceSheet_FetchIngredientsError(t *testing.T) {
	sheet := NewPriceSheet(&fakeValues{readErr: errors.New("quota")}, "A:H", "A:Q", nil)

	_, err := sheet.FetchIngredients(context.Background())
	assert.ErrorContains(t, err, "quota")
}

func TestPriceSheet_ExportEvaluation(t *testing.T) {
	repo := &fakeValues{}
	sheet := NewPriceSheet(repo, "A:H", "Evaluations!A:M", nil)

	eval := models.Evaluation{
		Recipe:    "Sushi",
		TotalCost: 15,
		Profit:    models.TierPrices{5, 15, 25, 35, 45},
	}
	for _, tier := range models.Tiers {
		eval.Comparisons[tier.Index()] = models.Comparison{
			RecipeTier: tier,
			Best:       models.Option{Kind: models.OptionRecipe, Tier: tier},
		}
	}

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sheet.ExportEvaluation(context.Background(), eval, at))

	assert.Equal(t, "Evaluations!A:M", repo.writtenRange)
	assert.Equal(t, []interface{}{
		"2026-03-14", "Sushi", 15.0,
		5.0, 15.0, 25.0, 35.0, 45.0,
		"Recipe 1-Star", "Recipe 2-Star", "Recipe 3-Star", "Recipe 4-Star", "Recipe 5-Star",
	}, repo.written)
}
