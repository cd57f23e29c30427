package models

import "time"

// DraftState tracks a recipe waiting on missing ingredients.
type DraftState string

const (
	DraftAwaitingIngredient DraftState = "awaiting_ingredient"
	DraftCompleted          DraftState = "completed"
	DraftCancelled          DraftState = "cancelled"
)

// RecipeDraft is a recipe held back until every ingredient it references has
// a price table entry. Current is the ingredient the user is asked for next;
// Pending holds the ones after it.
type RecipeDraft struct {
	ID        string     `json:"id"`
	Recipe    Recipe     `json:"recipe"`
	Current   string     `json:"current,omitempty"`
	Pending   []string   `json:"pending"`
	Resolved  []string   `json:"resolved"`
	State     DraftState `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
