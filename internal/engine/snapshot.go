package engine

import (
	"sync/atomic"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
)

// Snapshot holds the live price table. Replacements are built completely
// before they are published, so readers see either the old or the new table.
type Snapshot struct {
	current atomic.Pointer[PriceTable]
	seq     atomic.Uint64
}

// NewSnapshot returns a holder publishing an empty table.
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.current.Store(buildPriceTable(nil, s.seq.Add(1)))
	return s
}

// Load returns the table currently published.
func (s *Snapshot) Load() *PriceTable {
	return s.current.Load()
}

// Replace builds a table from sources and publishes it.
func (s *Snapshot) Replace(sources []models.IngredientSource) *PriceTable {
	table := buildPriceTable(sources, s.seq.Add(1))
	s.current.Store(table)
	return table
}
