package ports

import "github.com/jmoreno-dev/polypredict/internal/domain"

// Ensemble runs a feature vector through the loaded probability models and
// combines their outputs. Implementations must be deterministic for a given
// (FeatureVector, weight set) pair.
type Ensemble interface {
	Predict(features domain.FeatureVector) (domain.EnsemblePrediction, error)
	// ModelCount reports how many models loaded successfully. An empty
	// model set never reaches the runner: models.NewEnsemble rejects it and
	// cmd/predictord exits.
	ModelCount() int
}
