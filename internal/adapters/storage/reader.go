package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// ListMarkets implements ports.Storage. It applies the same 30-day
// resolution-age cutoff as market ingestion, so ingestion and reads agree.
func (s *Storage) ListMarkets(ctx context.Context, now time.Time) ([]domain.Market, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT market_id, question, category, resolution_date, price_yes, price_no,
			volume_24h, liquidity, archived, active, closed
		FROM markets
		WHERE archived = FALSE
		  AND (resolution_date IS NULL OR resolution_date >= $1)
	`, now.Add(-domain.StaleCutoff))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []domain.Market
	for rows.Next() {
		var m domain.Market
		if err := rows.Scan(&m.MarketID, &m.Question, &m.Category, &m.ResolutionDate, &m.PriceYes, &m.PriceNo,
			&m.Volume24h, &m.Liquidity, &m.Archived, &m.Active, &m.Closed); err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

func (s *Storage) ListPredictions(ctx context.Context, limit int) ([]domain.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, market_id, prediction_time, model_probability, market_price, edge, confidence
		FROM predictions ORDER BY prediction_time DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preds []domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		if err := rows.Scan(&p.ID, &p.MarketID, &p.PredictionTime, &p.ModelProbability, &p.MarketPrice, &p.Edge, &p.Confidence); err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

func (s *Storage) ListSignals(ctx context.Context, limit int) ([]domain.Signal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, prediction_id, market_id, created_at, side, strength, suggested_size, executed
		FROM signals ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var sig domain.Signal
		var side, strength string
		if err := rows.Scan(&sig.ID, &sig.PredictionID, &sig.MarketID, &sig.CreatedAt, &side, &strength, &sig.SuggestedSize, &sig.Executed); err != nil {
			return nil, err
		}
		sig.Side = domain.Side(side)
		sig.Strength = domain.Strength(strength)
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func (s *Storage) ListTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, signal_id, market_id, side, entry_price, size, entry_time, exit_price, exit_time, pnl, status, paper_trading
		FROM trades ORDER BY entry_time DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var side, status string
		if err := rows.Scan(&t.ID, &t.SignalID, &t.MarketID, &side, &t.EntryPrice, &t.Size, &t.EntryTime,
			&t.ExitPrice, &t.ExitTime, &t.PnL, &status, &t.PaperTrading); err != nil {
			return nil, err
		}
		t.Side = domain.Side(side)
		t.Status = domain.TradeStatus(status)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *Storage) LatestPortfolioSnapshot(ctx context.Context, paperTrading bool) (*domain.PortfolioSnapshot, error) {
	return latestSnapshot(ctx, s.db, paperTrading)
}

// querier abstracts over *sql.DB and *sql.Tx so the gating/portfolio code
// above can read inside a transaction while the public read endpoints read
// against the pool directly.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func latestSnapshot(ctx context.Context, q querier, paperTrading bool) (*domain.PortfolioSnapshot, error) {
	return scanLatestSnapshot(q.QueryRowContext(ctx, `
		SELECT id, snapshot_time, total_value, cash, positions_value, total_exposure, daily_pnl, unrealized_pnl, realized_pnl, paper_trading
		FROM portfolio_snapshots WHERE paper_trading = $1 ORDER BY snapshot_time DESC LIMIT 1
	`, paperTrading))
}

func latestSnapshotBefore(ctx context.Context, q querier, paperTrading bool, before time.Time) (*domain.PortfolioSnapshot, error) {
	return scanLatestSnapshot(q.QueryRowContext(ctx, `
		SELECT id, snapshot_time, total_value, cash, positions_value, total_exposure, daily_pnl, unrealized_pnl, realized_pnl, paper_trading
		FROM portfolio_snapshots WHERE paper_trading = $1 AND snapshot_time < $2 ORDER BY snapshot_time DESC LIMIT 1
	`, paperTrading, before))
}

func scanLatestSnapshot(row *sql.Row) (*domain.PortfolioSnapshot, error) {
	var snap domain.PortfolioSnapshot
	err := row.Scan(&snap.ID, &snap.SnapshotTime, &snap.TotalValue, &snap.Cash, &snap.PositionsValue,
		&snap.TotalExposure, &snap.DailyPnL, &snap.UnrealizedPnL, &snap.RealizedPnL, &snap.PaperTrading)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
