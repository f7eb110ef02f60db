package ports

import (
	"context"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// Aggregator gathers news, midpoint and optional social data for a
// single market and never returns an error — partial upstream failure
// degrades individual fields, not the call.
type Aggregator interface {
	FetchAllForMarket(ctx context.Context, market domain.Market) domain.AggregatedData
}
