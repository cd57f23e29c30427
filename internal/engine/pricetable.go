package engine

import "github.com/mamadbah2/recipecalc/internal/domain/models"

// PriceTable is a read-only snapshot of ingredient prices keyed by exact
// name. A nil *PriceTable behaves as an empty table.
type PriceTable struct {
	version uint64
	sources []models.IngredientSource
	costs   map[string]float64
	records map[string]models.IngredientRecord
}

// NewPriceTable builds both lookups from the source rows. Later rows win on
// duplicate names.
func NewPriceTable(sources []models.IngredientSource) *PriceTable {
	return buildPriceTable(sources, 0)
}

func buildPriceTable(sources []models.IngredientSource, version uint64) *PriceTable {
	t := &PriceTable{
		version: version,
		sources: make([]models.IngredientSource, len(sources)),
		costs:   make(map[string]float64, len(sources)),
		records: make(map[string]models.IngredientRecord, len(sources)),
	}
	copy(t.sources, sources)

	for _, src := range sources {
		t.costs[src.Name] = src.Cost
		t.records[src.Name] = src.Record()
	}
	return t
}

// Version identifies the snapshot. Tables built outside a Snapshot are 0.
func (t *PriceTable) Version() uint64 {
	if t == nil {
		return 0
	}
	return t.version
}

// Len returns the number of distinct ingredient names.
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Lookup returns the full record for name.
func (t *PriceTable) Lookup(name string) (models.IngredientRecord, bool) {
	if t == nil {
		return models.IngredientRecord{}, false
	}
	rec, ok := t.records[name]
	return rec, ok
}

// CraftCost returns the per-unit craft cost for name.
func (t *PriceTable) CraftCost(name string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	cost, ok := t.costs[name]
	return cost, ok
}

// Has reports whether name has an entry.
func (t *PriceTable) Has(name string) bool {
	_, ok := t.CraftCost(name)
	return ok
}

// Sources returns a copy of the rows the table was built from, duplicates
// included, in insertion order.
func (t *PriceTable) Sources() []models.IngredientSource {
	if t == nil {
		return nil
	}
	out := make([]models.IngredientSource, len(t.sources))
	copy(out, t.sources)
	return out
}
