package ports

import (
	"context"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// Predictor is consumed by the pipeline runner: feature extraction plus
// ensemble inference behind one call.
type Predictor interface {
	Predict(ctx context.Context, market domain.Market, data domain.AggregatedData) (domain.EnsemblePrediction, error)
}
