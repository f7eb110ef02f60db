package models

import (
	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// Ensemble implements ports.Ensemble over a fixed set of loaded GBM
// models, combined by configured weights.
type Ensemble struct {
	models        []*GBM
	weights       map[string]float64
	confidenceFloor float64
}

// NewEnsemble builds an Ensemble. Returns ErrNoModelsLoaded if models is
// empty — the caller (cmd/predictord) must treat this as fatal.
func NewEnsemble(models []*GBM, weights map[string]float64, confidenceFloor float64) (*Ensemble, error) {
	if len(models) == 0 {
		return nil, ErrNoModelsLoaded{}
	}
	return &Ensemble{models: models, weights: weights, confidenceFloor: confidenceFloor}, nil
}

func (e *Ensemble) ModelCount() int {
	return len(e.models)
}

// Predict runs every loaded model against features and combines them per
// domain.WeightedProbability / domain.InterModelConfidence.
func (e *Ensemble) Predict(features domain.FeatureVector) (domain.EnsemblePrediction, error) {
	perModel := make(map[string]float64, len(e.models))
	for _, m := range e.models {
		values, err := alignFeatures(features, m.FeatureNames())
		if err != nil {
			return domain.EnsemblePrediction{}, err
		}
		perModel[m.Name()] = m.PredictProba(values)
	}

	probability := domain.WeightedProbability(perModel, e.weights)
	confidence := domain.InterModelConfidence(perModel, e.confidenceFloor)

	return domain.EnsemblePrediction{
		Probability: probability,
		Confidence:  confidence,
		PerModel:    perModel,
	}, nil
}

// alignFeatures checks features against the name list a specific model was
// trained with; it never reorders or selects. Every model in this deployment is trained
// against the same frozen name list, so this is a direct passthrough when
// the lists match and a shape-mismatch error otherwise — models are never
// silently fed a reshaped vector.
func alignFeatures(features domain.FeatureVector, modelNames []string) ([]float64, error) {
	if len(modelNames) != len(features.Names) {
		return nil, &domain.ErrFeatureShapeMismatch{Expected: len(modelNames), Got: len(features.Names)}
	}
	for i, name := range modelNames {
		if features.Names[i] != name {
			return nil, &domain.ErrFeatureShapeMismatch{Expected: len(modelNames), Got: len(features.Names)}
		}
	}
	return features.Values, nil
}
