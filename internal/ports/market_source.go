package ports

import (
	"context"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// MarketSource returns the active-market list merged from the
// price/orderbook and metadata upstream APIs, already filtered to exclude
// archived and stale markets.
type MarketSource interface {
	FetchActiveMarkets(ctx context.Context, limit int) ([]domain.Market, error)
}
