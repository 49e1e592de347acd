package scoring

import (
	"math"
	"strings"
)

// Breakpoint maps a placement threshold to its base point value. Standard
// double-elimination brackets only produce placements at these thresholds
// plus everything in between, which rounds down to the nearest one.
type Breakpoint struct {
	Placement int
	Points    int
}

// Rules stores the point table and tier multipliers used to score results.
type Rules struct {
	Breakpoints       []Breakpoint
	Multipliers       map[string]float64
	DefaultMultiplier float64
	DefaultTier       string
}

func DefaultRules() Rules {
	return Rules{
		Breakpoints: []Breakpoint{
			{Placement: 1, Points: 2000},
			{Placement: 2, Points: 1600},
			{Placement: 3, Points: 1300},
			{Placement: 4, Points: 1100},
			{Placement: 5, Points: 900},
			{Placement: 7, Points: 750},
			{Placement: 9, Points: 600},
			{Placement: 13, Points: 450},
			{Placement: 17, Points: 325},
			{Placement: 25, Points: 225},
			{Placement: 33, Points: 150},
			{Placement: 49, Points: 90},
			{Placement: 65, Points: 50},
		},
		Multipliers: map[string]float64{
			"P":           1.0,
			"S":           0.85,
			"SUPERMAJOR":  0.85,
			"SUPER MAJOR": 0.85,
			"MAJOR":       0.75,
			"A":           0.6,
			"B":           0.45,
			"C":           0.3,
		},
		DefaultMultiplier: 0.5,
		DefaultTier:       "B",
	}
}

// BasePoints returns the value of the highest breakpoint at or below
// placement, or 0 when placement sits below every breakpoint.
func (r Rules) BasePoints(placement int) int {
	points := 0
	for _, bp := range r.Breakpoints {
		if placement >= bp.Placement {
			points = bp.Points
		}
	}

	return points
}

// TierMultiplier looks up the multiplier for tier, ignoring case and
// surrounding whitespace. Unknown tiers get DefaultMultiplier.
func (r Rules) TierMultiplier(tier string) float64 {
	normalized := strings.ToUpper(strings.TrimSpace(tier))
	if m, ok := r.Multipliers[normalized]; ok {
		return m
	}

	return r.DefaultMultiplier
}

// EffectiveTier substitutes DefaultTier when an event carries no tier.
func (r Rules) EffectiveTier(tier string) string {
	if strings.TrimSpace(tier) == "" {
		return r.DefaultTier
	}

	return tier
}

// Points scores a single placement at an event of the given tier, rounding
// half away from zero.
func (r Rules) Points(placement int, tier string) int {
	base := float64(r.BasePoints(placement))
	return int(math.Round(base * r.TierMultiplier(tier)))
}
