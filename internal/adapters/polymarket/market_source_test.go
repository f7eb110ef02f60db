package polymarket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchActiveMarkets_MergesAndFilters(t *testing.T) {
	futureEnd := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	staleEnd := time.Now().Add(-60 * 24 * time.Hour).UTC().Format(time.RFC3339)

	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := rawPriceMarketsPage{
			Data: []rawPriceMarket{
				{ConditionID: "active1", Question: "q1", Tokens: []rawToken{{Outcome: "YES", Price: "0.5"}}},
				{ConditionID: "archived1", Question: "q2", Archived: true},
				{ConditionID: "stale1", Question: "q3", Tokens: []rawToken{{Outcome: "YES", Price: "0.3"}}},
			},
			NextCursor: endCursor,
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer priceSrv.Close()

	metaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "0" {
			_ = json.NewEncoder(w).Encode([]rawMetadataMarket{})
			return
		}
		page := []rawMetadataMarket{
			{ConditionID: "active1", Category: "politics", EndDateISO: futureEnd, Volume: "1000"},
			{ConditionID: "stale1", Category: "sports", EndDateISO: staleEnd, Volume: "500"},
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer metaSrv.Close()

	client := NewClient(priceSrv.URL, metaSrv.URL)
	source := NewMarketSource(client)

	markets, err := source.FetchActiveMarkets(context.Background(), 10)
	require.NoError(t, err)

	ids := make([]string, len(markets))
	for i, m := range markets {
		ids[i] = m.MarketID
	}
	assert.Contains(t, ids, "active1")
	assert.NotContains(t, ids, "archived1")
	assert.NotContains(t, ids, "stale1")
}

func TestFetchActiveMarkets_TruncatesToLimit(t *testing.T) {
	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := make([]rawPriceMarket, 0, 5)
		for i := 0; i < 5; i++ {
			data = append(data, rawPriceMarket{ConditionID: conditionName(i), Question: "q"})
		}
		_ = json.NewEncoder(w).Encode(rawPriceMarketsPage{Data: data, NextCursor: endCursor})
	}))
	defer priceSrv.Close()

	metaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]rawMetadataMarket{})
	}))
	defer metaSrv.Close()

	client := NewClient(priceSrv.URL, metaSrv.URL)
	source := NewMarketSource(client)

	markets, err := source.FetchActiveMarkets(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, markets, 2)
}

func conditionName(i int) string {
	return "cond-" + string(rune('a'+i))
}
