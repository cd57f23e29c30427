package sheets

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

const dateLayout = "2006-01-02"

// PriceSheet reads ingredient prices from, and writes evaluation summaries
// to, a spreadsheet.
//
// Ingredient rows are laid out as: Name | Category | Cost | 1-Star .. 5-Star.
type PriceSheet struct {
	values      ValueStore
	importRange string
	exportRange string
	logger      *zap.Logger
}

// NewPriceSheet wraps values with the configured ranges.
func NewPriceSheet(values ValueStore, importRange, exportRange string, logger *zap.Logger) *PriceSheet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceSheet{values: values, importRange: importRange, exportRange: exportRange, logger: logger}
}

// FetchIngredients reads the ingredient range and parses every usable row.
func (p *PriceSheet) FetchIngredients(ctx context.Context) ([]models.IngredientSource, error) {
	rows, err := p.values.ReadRows(ctx, p.importRange)
	if err != nil {
		return nil, fmt.Errorf("load ingredient range: %w", err)
	}

	out := make([]models.IngredientSource, 0, len(rows))
	for i, row := range rows {
		src, err := ParseIngredientRow(row)
		if err != nil {
			p.logger.Debug("skip ingredient row", zap.Int("row", i), zap.Any("values", row), zap.Error(err))
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

// ExportEvaluation appends a summary row for eval.
func (p *PriceSheet) ExportEvaluation(ctx context.Context, eval models.Evaluation, at time.Time) error {
	if err := p.values.AppendRow(ctx, p.exportRange, EvaluationRow(eval, at)); err != nil {
		return fmt.Errorf("export evaluation %s: %w", eval.Recipe, err)
	}
	return nil
}

// ParseIngredientRow converts one sheet row. Name is required; blank numeric
// cells count as 0.
func ParseIngredientRow(row []interface{}) (models.IngredientSource, error) {
	if len(row) == 0 {
		return models.IngredientSource{}, fmt.Errorf("empty row")
	}

	name := strings.TrimSpace(cell(row, 0))
	if name == "" {
		return models.IngredientSource{}, fmt.Errorf("missing ingredient name")
	}

	src := models.IngredientSource{
		Name:     name,
		Category: strings.TrimSpace(cell(row, 1)),
	}

	cost, err := parseFloat(cell(row, 2))
	if err != nil {
		return models.IngredientSource{}, fmt.Errorf("cost for %s: %w", name, err)
	}
	src.Cost = cost

	var prices models.TierPrices
	for _, tier := range models.Tiers {
		v, err := parseFloat(cell(row, 2+int(tier)))
		if err != nil {
			return models.IngredientSource{}, fmt.Errorf("%s price for %s: %w", tier, name, err)
		}
		prices.Set(tier, v)
	}
	src.SetRawPrices(prices)

	return src, nil
}

// EvaluationRow lays out: date | recipe | total cost | profit 1..5 | best 1..5.
func EvaluationRow(eval models.Evaluation, at time.Time) []interface{} {
	row := make([]interface{}, 0, 3+2*models.TierCount)
	row = append(row, at.Format(dateLayout), eval.Recipe, eval.TotalCost)
	for _, tier := range models.Tiers {
		row = append(row, eval.Profit.At(tier))
	}
	for _, cmp := range eval.Comparisons {
		row = append(row, cmp.Best.Label())
	}
	return row
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

func parseFloat(value string) (float64, error) {
	str := strings.TrimSpace(value)
	str = strings.TrimPrefix(str, "$")
	str = strings.ReplaceAll(str, ",", "")
	if str == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", value)
	}
	return v, nil
}
