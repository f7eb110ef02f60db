package polymarket

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// MarketSource merges the price and metadata APIs and applies the
// archived/stale filters, in that order, before truncating to limit.
type MarketSource struct {
	client *Client
}

func NewMarketSource(client *Client) *MarketSource {
	return &MarketSource{client: client}
}

// FetchActiveMarkets implements ports.MarketSource. If either upstream
// fails, it returns what could be obtained from the other; if both fail it
// returns an empty list and no error.
func (s *MarketSource) FetchActiveMarkets(ctx context.Context, limit int) ([]domain.Market, error) {
	priced, priceErr := s.client.fetchPriceMarkets(ctx, limit)
	if priceErr != nil {
		slog.Warn("price API fetch failed", "error", priceErr)
	}
	meta, metaErr := s.client.fetchMetadataMarkets(ctx, limit)
	if metaErr != nil {
		slog.Warn("metadata API fetch failed", "error", metaErr)
	}

	merged := mergeMarkets(priced, meta)

	now := time.Now().UTC()
	markets := make([]domain.Market, 0, len(merged))
	for _, m := range merged {
		if m.archived {
			continue
		}
		resolutionDate := parseEndDate(m.endDateISO)
		market := domain.Market{
			MarketID:       m.id,
			Question:       m.question,
			Category:       m.category,
			ResolutionDate: resolutionDate,
			PriceYes:       m.priceYes,
			PriceNo:        m.priceNoV,
			Archived:       m.archived,
			Active:         m.active,
			Closed:         m.closed,
		}
		if m.hasVolume {
			v := m.volume
			market.Volume24h = &v
		}
		if m.hasLiquidty {
			l := m.liquidity
			market.Liquidity = &l
		}
		if market.IsStale(now) {
			continue
		}
		markets = append(markets, market)
	}

	if len(markets) > limit {
		markets = markets[:limit]
	}
	return markets, nil
}
