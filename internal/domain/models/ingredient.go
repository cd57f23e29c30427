package models

// IngredientSource is one row of the ingredient document (data.json). The
// field names mirror the document keys.
type IngredientSource struct {
	Name      string  `json:"Name" bson:"name" yaml:"Name" binding:"required"`
	Category  string  `json:"Category" bson:"category" yaml:"Category"`
	OneStar   float64 `json:"1-Star" bson:"star_1" yaml:"1-Star"`
	TwoStar   float64 `json:"2-Star" bson:"star_2" yaml:"2-Star"`
	ThreeStar float64 `json:"3-Star" bson:"star_3" yaml:"3-Star"`
	FourStar  float64 `json:"4-Star" bson:"star_4" yaml:"4-Star"`
	FiveStar  float64 `json:"5-Star" bson:"star_5" yaml:"5-Star"`
	Cost      float64 `json:"Cost" bson:"cost" yaml:"Cost"`
}

// Categories whose raw goods can be resold per tier.
const (
	CategoryCrop = "Crop"
	CategoryFish = "Fish"
)

// RawPrices returns the tiered raw resale prices in tier order.
func (s IngredientSource) RawPrices() TierPrices {
	return TierPrices{s.OneStar, s.TwoStar, s.ThreeStar, s.FourStar, s.FiveStar}
}

// SetRawPrices copies p into the per-tier fields.
func (s *IngredientSource) SetRawPrices(p TierPrices) {
	s.OneStar, s.TwoStar, s.ThreeStar, s.FourStar, s.FiveStar = p[0], p[1], p[2], p[3], p[4]
}

// SupportsTieredResale reports whether the category carries tier prices.
// Informational only; the engine reads whatever prices are present.
func (s IngredientSource) SupportsTieredResale() bool {
	return s.Category == CategoryCrop || s.Category == CategoryFish
}

// IngredientRecord is the resolved price table entry for one ingredient.
type IngredientRecord struct {
	Name      string
	Category  string
	CraftCost float64
	RawPrice  TierPrices
}

// Record converts the document row into a price table entry.
func (s IngredientSource) Record() IngredientRecord {
	return IngredientRecord{
		Name:      s.Name,
		Category:  s.Category,
		CraftCost: s.Cost,
		RawPrice:  s.RawPrices(),
	}
}
