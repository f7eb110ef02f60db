// Package signal implements the gating/sizing logic that decides whether a
// Prediction produces a Signal, and if so, how it is sized. It holds no
// I/O — PersistCycleResult (internal/adapters/storage) wraps these pure
// decisions inside the per-market transaction.
package signal

import (
	"time"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// Thresholds are the runtime-configurable gating knobs.
type Thresholds struct {
	MinEdge             float64
	MinConfidence       float64
	MinLiquidity        float64
	MaxPositionSize     float64
	BaseUnit            float64
	StrengthMultipliers map[domain.Strength]float64
}

// RejectReason names why a prediction failed gating, for structured
// logging at info level.
type RejectReason string

const (
	RejectNone               RejectReason = ""
	RejectEdgeTooSmall       RejectReason = "edge_too_small"
	RejectConfidenceTooLow   RejectReason = "confidence_too_low"
	RejectLiquidityTooLow    RejectReason = "liquidity_too_low"
)

// Gate evaluates the three-way edge/confidence/liquidity gate against one
// prediction and market. It returns RejectNone when all three conditions
// hold.
func Gate(prediction domain.Prediction, market domain.Market, t Thresholds) RejectReason {
	if absf(prediction.Edge) < t.MinEdge {
		return RejectEdgeTooSmall
	}
	if prediction.Confidence < t.MinConfidence {
		return RejectConfidenceTooLow
	}
	if market.Volume24hOrZero() < t.MinLiquidity {
		return RejectLiquidityTooLow
	}
	return RejectNone
}

// BuildSignal constructs the Signal a passing prediction emits.
// availableCapital is the latest PortfolioSnapshot's cash (or the
// configured starting cash before any snapshot exists); it bounds
// suggested_size against currently-deployed capital.
func BuildSignal(id string, prediction domain.Prediction, t Thresholds, now time.Time, availableCapital float64) domain.Signal {
	strength := domain.BucketStrength(absf(prediction.Edge), t.MinEdge)
	side := domain.SideFromEdge(prediction.Edge)
	size := domain.SuggestedSize(strength, t.BaseUnit, t.MaxPositionSize, availableCapital, t.StrengthMultipliers)

	return domain.Signal{
		ID:            id,
		PredictionID:  prediction.ID,
		MarketID:      prediction.MarketID,
		CreatedAt:     now,
		Side:          side,
		Strength:      strength,
		SuggestedSize: size,
		Executed:      false,
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
