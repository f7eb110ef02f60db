package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

type fakeMarketSource struct {
	markets []domain.Market
	err     error
}

func (f *fakeMarketSource) FetchActiveMarkets(ctx context.Context, limit int) ([]domain.Market, error) {
	return f.markets, f.err
}

type fakeAggregator struct{}

func (f *fakeAggregator) FetchAllForMarket(ctx context.Context, market domain.Market) domain.AggregatedData {
	return domain.AggregatedData{Market: market}
}

type fakePredictor struct {
	err       error
	failFor   string
	sleepFor  string
	sleepTime time.Duration
}

func (f *fakePredictor) Predict(ctx context.Context, market domain.Market, data domain.AggregatedData) (domain.EnsemblePrediction, error) {
	if market.MarketID == f.sleepFor {
		select {
		case <-time.After(f.sleepTime):
		case <-ctx.Done():
			return domain.EnsemblePrediction{}, ctx.Err()
		}
	}
	if market.MarketID == f.failFor {
		return domain.EnsemblePrediction{}, errors.New("prediction failed")
	}
	return domain.EnsemblePrediction{Probability: 0.6, Confidence: 0.9}, nil
}

type fakeStorage struct {
	ports.Storage
	persisted int64
	result    ports.CycleResult
	err       error
}

func (f *fakeStorage) PersistCycleResult(ctx context.Context, market domain.Market, prediction domain.EnsemblePrediction, autoSignals, autoTrades bool) (ports.CycleResult, error) {
	atomic.AddInt64(&f.persisted, 1)
	return f.result, f.err
}

func TestRunCycle_NoMarketsReturnsEmptyReport(t *testing.T) {
	runner := NewRunner(&fakeMarketSource{}, &fakeAggregator{}, &fakePredictor{}, &fakeStorage{}, 3, time.Second)
	report := runner.RunCycle(context.Background(), 10, true, false)
	assert.Equal(t, CycleReport{}, report)
}

func TestRunCycle_CountsSuccessesAndErrors(t *testing.T) {
	markets := []domain.Market{{MarketID: "ok1"}, {MarketID: "ok2"}, {MarketID: "bad"}}
	storage := &fakeStorage{result: ports.CycleResult{Signal: &domain.Signal{}, Trade: &domain.Trade{}}}
	runner := NewRunner(&fakeMarketSource{markets: markets}, &fakeAggregator{}, &fakePredictor{failFor: "bad"}, storage, 3, time.Second)

	report := runner.RunCycle(context.Background(), 10, true, true)

	assert.Equal(t, 3, report.MarketsConsidered)
	assert.Equal(t, 2, report.PredictionsSaved)
	assert.Equal(t, 2, report.SignalsCreated)
	assert.Equal(t, 2, report.TradesCreated)
	assert.Equal(t, 1, report.Errors)
}

func TestRunCycle_PerMarketTimeoutDoesNotBlockOtherMarkets(t *testing.T) {
	markets := []domain.Market{{MarketID: "slow"}, {MarketID: "fast"}}
	predictor := &fakePredictor{sleepFor: "slow", sleepTime: 200 * time.Millisecond}
	storage := &fakeStorage{}
	runner := NewRunner(&fakeMarketSource{markets: markets}, &fakeAggregator{}, predictor, storage, 2, 20*time.Millisecond)

	start := time.Now()
	report := runner.RunCycle(context.Background(), 10, false, false)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond)
	assert.Equal(t, 2, report.MarketsConsidered)
	assert.Equal(t, 1, report.PredictionsSaved)
	assert.Equal(t, 1, report.Errors)
}
