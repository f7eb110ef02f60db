package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeightedProbability_Basic(t *testing.T) {
	perModel := map[string]float64{"gbm_a": 0.8, "gbm_b": 0.9}
	weights := map[string]float64{"gbm_a": 1, "gbm_b": 1}
	assert.InDelta(t, 0.85, WeightedProbability(perModel, weights), 1e-9)
}

func TestWeightedProbability_NoWeights(t *testing.T) {
	assert.Equal(t, 0.0, WeightedProbability(map[string]float64{"a": 0.5}, nil))
}

func TestInterModelConfidence_Agreement(t *testing.T) {
	perModel := map[string]float64{"a": 0.80, "b": 0.82}
	assert.InDelta(t, 0.98, InterModelConfidence(perModel, 0.5), 1e-9)
}

func TestInterModelConfidence_SingleModelUsesFloor(t *testing.T) {
	assert.Equal(t, 0.5, InterModelConfidence(map[string]float64{"a": 0.9}, 0.5))
}

func TestInterModelConfidence_WideSpreadGivesLowConfidence(t *testing.T) {
	perModel := map[string]float64{"a": 0.1, "b": 0.95}
	// 1 - (0.95 - 0.1) = 0.15
	assert.InDelta(t, 0.15, InterModelConfidence(perModel, 0.5), 1e-9)
}

func TestNewPrediction_EdgeSign(t *testing.T) {
	ens := EnsemblePrediction{Probability: 0.8755, Confidence: 0.88}
	p := NewPrediction("id1", "M1", time.Now(), ens, 0.50)
	assert.InDelta(t, 0.3755, p.Edge, 1e-9)
}
