package domain

import (
	"math"
	"time"
)

// Side is the direction a Signal recommends.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// Strength buckets a Signal by the magnitude of its edge.
type Strength string

const (
	StrengthWeak   Strength = "WEAK"
	StrengthMedium Strength = "MEDIUM"
	StrengthStrong Strength = "STRONG"
)

// BucketStrength maps |edge| to a Strength given the gating floor minEdge.
// Boundaries are closed-below, open-above: [minEdge, 0.10) WEAK,
// [0.10, 0.20) MEDIUM, [0.20, ∞) STRONG.
func BucketStrength(absEdge, minEdge float64) Strength {
	switch {
	case absEdge >= 0.20:
		return StrengthStrong
	case absEdge >= 0.10:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// SideFromEdge returns YES if edge > 0, else NO.
func SideFromEdge(edge float64) Side {
	if edge > 0 {
		return SideYes
	}
	return SideNo
}

// Signal is the persisted record of a gated trading signal.
type Signal struct {
	ID             string
	PredictionID   string
	MarketID       string
	CreatedAt      time.Time
	Side           Side
	Strength       Strength
	SuggestedSize  float64
	Executed       bool
}

// minSuggestedSize is the floor applied so a misconfigured base unit or
// multiplier never yields a non-positive suggested size.
const minSuggestedSize = 0.01

// SuggestedSize computes min(maxPositionSize, baseUnit * multiplier),
// clamped to be strictly positive, then bounded against availableCapital —
// the cash remaining after currently-deployed capital, read from the
// latest PortfolioSnapshot. Unlike the misconfiguration floor above, this
// bound is allowed to push size down to zero: it is a real capital
// constraint, not a degenerate input. multiplier is chosen by Strength.
func SuggestedSize(strength Strength, baseUnit, maxPositionSize, availableCapital float64, multipliers map[Strength]float64) float64 {
	mult, ok := multipliers[strength]
	if !ok || mult <= 0 {
		mult = 1
	}
	size := math.Min(baseUnit*mult, maxPositionSize)
	if size < minSuggestedSize {
		size = minSuggestedSize
	}
	if availableCapital < size {
		size = math.Max(availableCapital, 0)
	}
	return size
}
