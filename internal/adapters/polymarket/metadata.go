package polymarket

import (
	"context"
	"fmt"
)

const metadataPageSize = 100

// fetchMetadataMarkets pages through the metadata API via offset/limit. It
// stops once a page returns fewer rows than requested.
func (c *Client) fetchMetadataMarkets(ctx context.Context, limit int) ([]rawMetadataMarket, error) {
	var out []rawMetadataMarket
	want := limit * 4
	if want < metadataPageSize {
		want = metadataPageSize
	}

	for offset := 0; ; offset += metadataPageSize {
		url := fmt.Sprintf("%s/markets?limit=%d&offset=%d", c.metadataBase, metadataPageSize, offset)
		var page []rawMetadataMarket
		if err := c.get(ctx, c.metadataLimiter, url, &page); err != nil {
			return out, err
		}
		out = append(out, page...)

		if len(page) < metadataPageSize || len(out) >= want {
			break
		}
	}
	return out, nil
}
