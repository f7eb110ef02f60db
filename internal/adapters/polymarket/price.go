package polymarket

import (
	"context"
	"fmt"
)

const priceMarketsPageSize = 500

// fetchPriceMarkets pages through the price API's market listing until the
// upstream signals no further pages or it has collected at least
// max(4*limit, priceMarketsPageSize) raw rows, which leaves headroom for the
// archived/stale filters in market_source.go to still return `limit`
// markets after filtering.
func (c *Client) fetchPriceMarkets(ctx context.Context, limit int) ([]rawPriceMarket, error) {
	var out []rawPriceMarket
	cursor := ""
	want := limit * 4
	if want < priceMarketsPageSize {
		want = priceMarketsPageSize
	}

	for {
		url := fmt.Sprintf("%s/markets?next_cursor=%s", c.priceBase, cursor)
		var page rawPriceMarketsPage
		if err := c.get(ctx, c.priceLimiter, url, &page); err != nil {
			return out, err
		}
		out = append(out, page.Data...)

		if page.NextCursor == "" || page.NextCursor == endCursor || len(out) >= want {
			break
		}
		cursor = page.NextCursor
	}
	return out, nil
}
