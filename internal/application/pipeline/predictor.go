package pipeline

import (
	"context"
	"time"

	"github.com/jmoreno-dev/polypredict/internal/application/features"
	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

// Predictor implements ports.Predictor as one call combining feature
// extraction and ensemble inference. Feature extraction is CPU-bound and
// runs outside any database transaction.
type Predictor struct {
	features *features.Pipeline
	ensemble ports.Ensemble
}

func NewPredictor(featurePipeline *features.Pipeline, ensemble ports.Ensemble) *Predictor {
	return &Predictor{features: featurePipeline, ensemble: ensemble}
}

func (p *Predictor) Predict(ctx context.Context, market domain.Market, data domain.AggregatedData) (domain.EnsemblePrediction, error) {
	vector, err := p.features.Build(market, data, time.Now().UTC())
	if err != nil {
		return domain.EnsemblePrediction{}, err
	}
	return p.ensemble.Predict(vector)
}
