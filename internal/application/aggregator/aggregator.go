package aggregator

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

const (
	perCallTimeout   = 5 * time.Second
	newsLookbackDays = 3

	// DefaultMidpointConcurrency bounds how many midpoint calls may be in
	// flight across an entire batch of markets, independent of the
	// per-market worker concurrency.
	DefaultMidpointConcurrency = 20
)

// Aggregator concurrently pulls news, midpoint and optional social data
// for one market. It never returns an error; a failing upstream only
// degrades its own field.
//
// midpointSem bounds concurrent midpoint calls across the whole batch a
// cycle processes, not just within one market, so a low per-market
// concurrency does not throttle the cheap, highly-parallel midpoint I/O.
type Aggregator struct {
	news        ports.NewsProvider
	midpoint    ports.MidpointProvider
	social      ports.SocialProvider
	midpointSem *semaphore.Weighted
}

func New(news ports.NewsProvider, midpoint ports.MidpointProvider, social ports.SocialProvider, midpointConcurrency int) *Aggregator {
	if midpointConcurrency <= 0 {
		midpointConcurrency = DefaultMidpointConcurrency
	}
	return &Aggregator{
		news:        news,
		midpoint:    midpoint,
		social:      social,
		midpointSem: semaphore.NewWeighted(int64(midpointConcurrency)),
	}
}

// FetchAllForMarket implements ports.Aggregator.
func (a *Aggregator) FetchAllForMarket(ctx context.Context, market domain.Market) domain.AggregatedData {
	data := domain.AggregatedData{Market: market}

	type newsResult struct {
		items []domain.NewsItem
		err   error
	}
	type midResult struct {
		mid *float64
		err error
	}
	type socialResult struct {
		items []domain.SocialItem
		err   error
	}

	newsCh := make(chan newsResult, 1)
	midCh := make(chan midResult, 1)
	socialCh := make(chan socialResult, 1)

	go func() {
		c, cancel := context.WithTimeout(ctx, perCallTimeout)
		defer cancel()
		items, err := a.news.FetchNews(c, market.Question, newsLookbackDays)
		newsCh <- newsResult{items, err}
	}()

	go func() {
		if err := a.midpointSem.Acquire(ctx, 1); err != nil {
			midCh <- midResult{nil, err}
			return
		}
		defer a.midpointSem.Release(1)

		c, cancel := context.WithTimeout(ctx, perCallTimeout)
		defer cancel()
		mid, err := a.midpoint.FetchMidpoint(c, market.MarketID)
		midCh <- midResult{mid, err}
	}()

	go func() {
		c, cancel := context.WithTimeout(ctx, perCallTimeout)
		defer cancel()
		items, err := a.social.FetchSocial(c, market.Question)
		socialCh <- socialResult{items, err}
	}()

	nr := <-newsCh
	if nr.err != nil {
		slog.Debug("news fetch failed", "market_id", market.MarketID, "error", nr.err)
	} else {
		data.NewsItems = nr.items
	}

	mr := <-midCh
	if mr.err != nil {
		slog.Debug("midpoint fetch failed", "market_id", market.MarketID, "error", mr.err)
	} else {
		data.Midpoint = mr.mid
	}

	sr := <-socialCh
	if sr.err != nil {
		slog.Debug("social fetch failed", "market_id", market.MarketID, "error", sr.err)
	} else {
		data.SocialItems = sr.items
	}

	return data
}
