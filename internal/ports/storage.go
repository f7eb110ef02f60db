package ports

import (
	"context"
	"time"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// CycleResult is the outcome of persisting one market's cycle work.
type CycleResult struct {
	Prediction domain.Prediction
	Signal     *domain.Signal
	Trade      *domain.Trade
	Snapshot   *domain.PortfolioSnapshot
}

// Storage is the persistence port plus the read contracts the HTTP surface
// relies on. PersistCycleResult runs gating, sizing, trade booking, and
// portfolio snapshotting inside one transaction per market.
type Storage interface {
	PersistCycleResult(ctx context.Context, market domain.Market, prediction domain.EnsemblePrediction, autoSignals, autoTrades bool) (CycleResult, error)

	ListMarkets(ctx context.Context, now time.Time) ([]domain.Market, error)
	ListPredictions(ctx context.Context, limit int) ([]domain.Prediction, error)
	ListSignals(ctx context.Context, limit int) ([]domain.Signal, error)
	ListTrades(ctx context.Context, limit int) ([]domain.Trade, error)
	LatestPortfolioSnapshot(ctx context.Context, paperTrading bool) (*domain.PortfolioSnapshot, error)
}
