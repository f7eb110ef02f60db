package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoreno-dev/polypredict/internal/application/pipeline"
	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

type fakeMarketSource struct{}

func (fakeMarketSource) FetchActiveMarkets(ctx context.Context, limit int) ([]domain.Market, error) {
	return nil, nil
}

type fakeAggregator struct{}

func (fakeAggregator) FetchAllForMarket(ctx context.Context, market domain.Market) domain.AggregatedData {
	return domain.AggregatedData{Market: market}
}

type fakePredictor struct{}

func (fakePredictor) Predict(ctx context.Context, market domain.Market, data domain.AggregatedData) (domain.EnsemblePrediction, error) {
	return domain.EnsemblePrediction{Probability: 0.6, Confidence: 0.8}, nil
}

type fakeStorage struct {
	markets    []domain.Market
	predictions []domain.Prediction
	signals    []domain.Signal
	trades     []domain.Trade
	snapshot   *domain.PortfolioSnapshot
}

func (f *fakeStorage) PersistCycleResult(ctx context.Context, market domain.Market, prediction domain.EnsemblePrediction, autoSignals, autoTrades bool) (ports.CycleResult, error) {
	return ports.CycleResult{}, nil
}

func (f *fakeStorage) ListMarkets(ctx context.Context, now time.Time) ([]domain.Market, error) {
	return f.markets, nil
}

func (f *fakeStorage) ListPredictions(ctx context.Context, limit int) ([]domain.Prediction, error) {
	return f.predictions, nil
}

func (f *fakeStorage) ListSignals(ctx context.Context, limit int) ([]domain.Signal, error) {
	return f.signals, nil
}

func (f *fakeStorage) ListTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	return f.trades, nil
}

func (f *fakeStorage) LatestPortfolioSnapshot(ctx context.Context, paperTrading bool) (*domain.PortfolioSnapshot, error) {
	return f.snapshot, nil
}

func testServer(store *fakeStorage) *Server {
	runner := pipeline.NewRunner(fakeMarketSource{}, fakeAggregator{}, fakePredictor{}, store, 2, time.Second)
	return New(":0", runner, store, zerolog.Nop())
}

func TestHandleGenerate_RespondsImmediatelyWithDefaults(t *testing.T) {
	s := testServer(&fakeStorage{})
	req := httptest.NewRequest(http.MethodPost, "/predictions/generate", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "started", body["status"])
	assert.Equal(t, float64(defaultGenerateLimit), body["limit"])
	assert.Equal(t, true, body["auto_signals"])
	assert.Equal(t, false, body["auto_trades"])
}

func TestHandleGenerate_ParsesQueryParams(t *testing.T) {
	s := testServer(&fakeStorage{})
	req := httptest.NewRequest(http.MethodPost, "/predictions/generate?limit=5&auto_signals=false&auto_trades=true", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["limit"])
	assert.Equal(t, false, body["auto_signals"])
	assert.Equal(t, true, body["auto_trades"])
}

func TestHandleMarkets_ReturnsStoredMarkets(t *testing.T) {
	store := &fakeStorage{markets: []domain.Market{{MarketID: "m1"}}}
	s := testServer(store)
	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []domain.Market
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].MarketID)
}

func TestHandlePortfolioLatest_NotFoundWhenNoSnapshot(t *testing.T) {
	s := testServer(&fakeStorage{})
	req := httptest.NewRequest(http.MethodGet, "/portfolio/latest", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePortfolioLatest_ReturnsSnapshot(t *testing.T) {
	snap := &domain.PortfolioSnapshot{ID: "s1", TotalValue: 1000}
	s := testServer(&fakeStorage{snapshot: snap})
	req := httptest.NewRequest(http.MethodGet, "/portfolio/latest", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out domain.PortfolioSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "s1", out.ID)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(&fakeStorage{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
