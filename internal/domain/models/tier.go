package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownTier is returned when a tier label cannot be parsed.
var ErrUnknownTier = errors.New("unknown tier")

// Tier is one of the five rarity levels an item can be sold at.
type Tier int

const (
	TierOneStar Tier = iota + 1
	TierTwoStar
	TierThreeStar
	TierFourStar
	TierFiveStar
)

// TierCount is the size of the closed tier set.
const TierCount = 5

// Tiers lists every tier in display order. The order is also the tie-break
// order used when picking the best option.
var Tiers = [TierCount]Tier{TierOneStar, TierTwoStar, TierThreeStar, TierFourStar, TierFiveStar}

// Valid reports whether t is one of the five known tiers.
func (t Tier) Valid() bool {
	return t >= TierOneStar && t <= TierFiveStar
}

// Index returns the zero-based array slot for t.
func (t Tier) Index() int {
	return int(t) - 1
}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return fmt.Sprintf("%d-Star", int(t))
}

// MarshalText renders the tier with its document label, e.g. "3-Star".
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts any label understood by ParseTier.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier accepts "3-Star", "3-star", "3star" or a bare "3".
func ParseTier(label string) (Tier, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.TrimSuffix(normalized, "star")
	normalized = strings.TrimSuffix(normalized, "-")

	n, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, label)
	}

	tier := Tier(n)
	if !tier.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, label)
	}
	return tier, nil
}

// TierPrices holds one amount per tier, indexed by Tier.Index.
type TierPrices [TierCount]float64

// At returns the amount for t, or 0 for an invalid tier.
func (p TierPrices) At(t Tier) float64 {
	if !t.Valid() {
		return 0
	}
	return p[t.Index()]
}

// Set stores v for t. Invalid tiers are ignored.
func (p *TierPrices) Set(t Tier, v float64) {
	if !t.Valid() {
		return
	}
	p[t.Index()] = v
}

// MarshalJSON encodes the prices as {"1-Star": .., "5-Star": ..}.
func (p TierPrices) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, TierCount)
	for _, tier := range Tiers {
		out[tier.String()] = p.At(tier)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the keyed object form. Unknown keys are ignored and
// absent tiers stay at 0.
func (p *TierPrices) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode tier prices: %w", err)
	}

	*p = TierPrices{}
	for key, value := range raw {
		tier, err := ParseTier(key)
		if err != nil {
			continue
		}
		p.Set(tier, value)
	}
	return nil
}
