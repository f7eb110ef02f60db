package pipeline

// runner.go schedules bounded concurrent per-market workers with a hard
// per-market timeout, using golang.org/x/sync's errgroup+semaphore so each
// task can be cancelled independently.

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

const (
	// DefaultConcurrency is how many markets are processed simultaneously.
	DefaultConcurrency = 3
	// DefaultPerMarketTimeout bounds one market's entire fetch->predict->persist chain.
	DefaultPerMarketTimeout = 30 * time.Second
)

// Runner drives one pipeline cycle per external trigger.
type Runner struct {
	marketSource ports.MarketSource
	aggregator   ports.Aggregator
	predictor    ports.Predictor
	storage      ports.Storage

	concurrency      int
	perMarketTimeout time.Duration
}

func NewRunner(marketSource ports.MarketSource, aggregator ports.Aggregator, predictor ports.Predictor, storage ports.Storage, concurrency int, perMarketTimeout time.Duration) *Runner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if perMarketTimeout <= 0 {
		perMarketTimeout = DefaultPerMarketTimeout
	}
	return &Runner{
		marketSource:     marketSource,
		aggregator:       aggregator,
		predictor:        predictor,
		storage:          storage,
		concurrency:      concurrency,
		perMarketTimeout: perMarketTimeout,
	}
}

// RunCycle runs one prediction cycle. It never propagates a per-market
// or upstream failure to the caller; everything is logged and counted.
// Overlapping invocations are safe: they proceed concurrently and share no
// mutable state beyond the counters each owns.
func (r *Runner) RunCycle(ctx context.Context, limit int, autoSignals, autoTrades bool) CycleReport {
	markets, err := r.marketSource.FetchActiveMarkets(ctx, limit)
	if err != nil {
		slog.Warn("market source fetch failed", "error", err)
	}
	if len(markets) == 0 {
		return CycleReport{}
	}

	var c counters
	sem := semaphore.NewWeighted(int64(r.concurrency))
	group, groupCtx := errgroup.WithContext(ctx)

	for _, market := range markets {
		if err := sem.Acquire(groupCtx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			r.processMarket(groupCtx, market, autoSignals, autoTrades, &c)
			return nil
		})
	}
	_ = group.Wait()

	return c.report(len(markets))
}

// processMarket fetches data, predicts, and persists for one market under its own hard
// timeout. Any failure is caught here, logged with market_id, and counted
// as an error; it never propagates.
func (r *Runner) processMarket(ctx context.Context, market domain.Market, autoSignals, autoTrades bool, c *counters) {
	taskCtx, cancel := context.WithTimeout(ctx, r.perMarketTimeout)
	defer cancel()

	data := r.aggregator.FetchAllForMarket(taskCtx, market)

	prediction, err := r.predictor.Predict(taskCtx, market, data)
	if err != nil {
		slog.Error("prediction failed", "market_id", market.MarketID, "error", err)
		atomic.AddInt64(&c.errors, 1)
		return
	}

	result, err := r.storage.PersistCycleResult(taskCtx, market, prediction, autoSignals, autoTrades)
	if err != nil {
		slog.Error("persist cycle result failed", "market_id", market.MarketID, "error", err)
		atomic.AddInt64(&c.errors, 1)
		return
	}

	atomic.AddInt64(&c.predictionsSaved, 1)
	if result.Signal != nil {
		atomic.AddInt64(&c.signalsCreated, 1)
	}
	if result.Trade != nil {
		atomic.AddInt64(&c.tradesCreated, 1)
	}
}
