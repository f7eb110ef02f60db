package domain

import (
	"math"
	"time"
)

// EnsemblePrediction is the transient output of the model ensemble for one
// market's feature vector.
type EnsemblePrediction struct {
	Probability float64            // calibrated YES probability, ∈ [0,1]
	Confidence  float64            // ∈ [0,1], derived from inter-model agreement
	PerModel    map[string]float64 // model_name → probability
}

// Clamp01 clamps v to the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WeightedProbability computes Σ wᵢ·pᵢ / Σ wᵢ over the given per-model
// probabilities and weights. Models with no configured weight are
// skipped. Returns 0 if no weight is available.
func WeightedProbability(perModel map[string]float64, weights map[string]float64) float64 {
	var num, den float64
	for name, p := range perModel {
		w, ok := weights[name]
		if !ok || w <= 0 {
			continue
		}
		num += w * p
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// InterModelConfidence derives confidence from agreement across per-model
// probabilities: 1 minus the spread between the highest and lowest
// prediction, clamped to [0,1]. When fewer than two models contributed,
// floor is returned instead.
func InterModelConfidence(perModel map[string]float64, floor float64) float64 {
	if len(perModel) < 2 {
		return Clamp01(floor)
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range perModel {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return Clamp01(1 - (max - min))
}

// Prediction is the append-only persisted record of one market's prediction
// in one cycle.
type Prediction struct {
	ID               string
	MarketID         string
	PredictionTime   time.Time // UTC, timezone-naive on the wire
	ModelProbability float64
	MarketPrice      float64 // price_yes at snapshot time
	Edge             float64 // ModelProbability - MarketPrice
	Confidence       float64
}

// NewPrediction builds a Prediction from an ensemble output and the
// market's price_yes at the moment of prediction.
func NewPrediction(id, marketID string, predTime time.Time, ens EnsemblePrediction, marketPrice float64) Prediction {
	return Prediction{
		ID:               id,
		MarketID:         marketID,
		PredictionTime:   predTime,
		ModelProbability: ens.Probability,
		MarketPrice:      marketPrice,
		Edge:             ens.Probability - marketPrice,
		Confidence:       ens.Confidence,
	}
}
