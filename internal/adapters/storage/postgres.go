package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jmoreno-dev/polypredict/internal/application/signal"
	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

// Config holds the gating thresholds and capital parameters, plus the
// paper-trading default.
type Config struct {
	Thresholds   signal.Thresholds
	StartingCash float64
	PaperTrading bool
}

// Storage implements ports.Storage against PostgreSQL via database/sql and
// the pgx stdlib driver. Every per-market write runs inside one
// transaction; PortfolioSnapshot rows are append-only.
type Storage struct {
	db     *sql.DB
	config Config
}

// New opens (and migrates) the database at dsn.
func New(dsn string, config Config) (*Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.New: open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.New: apply schema: %w", err)
	}

	return &Storage{db: db, config: config}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// PersistCycleResult implements ports.Storage: gating, sizing, trade
// booking, and portfolio snapshotting, inside one transaction for this
// market.
func (s *Storage) PersistCycleResult(ctx context.Context, market domain.Market, prediction domain.EnsemblePrediction, autoSignals, autoTrades bool) (ports.CycleResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	if err := upsertMarket(ctx, tx, market); err != nil {
		return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: upsert market: %w", err)
	}

	pred := domain.NewPrediction(uuid.NewString(), market.MarketID, now, prediction, market.PriceYes)
	if err := insertPrediction(ctx, tx, pred); err != nil {
		return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: insert prediction: %w", err)
	}

	result := ports.CycleResult{Prediction: pred}

	var sig *domain.Signal
	if autoSignals {
		reason := signal.Gate(pred, market, s.config.Thresholds)
		if reason == signal.RejectNone {
			availableCapital, err := s.availableCapital(ctx, tx)
			if err != nil {
				return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: available capital: %w", err)
			}
			built := signal.BuildSignal(uuid.NewString(), pred, s.config.Thresholds, now, availableCapital)
			if err := insertSignal(ctx, tx, built); err != nil {
				return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: insert signal: %w", err)
			}
			sig = &built
			result.Signal = sig
		} else {
			slog.Info("signal gating rejected prediction",
				"market_id", market.MarketID, "reason", string(reason),
				"edge", pred.Edge, "confidence", pred.Confidence)
		}
	}

	var tradeCreated bool
	if autoTrades && sig != nil {
		trade := domain.NewTrade(uuid.NewString(), *sig, pred.MarketPrice, now, s.config.PaperTrading)
		if err := insertTrade(ctx, tx, trade); err != nil {
			return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: insert trade: %w", err)
		}
		if err := markSignalExecuted(ctx, tx, sig.ID); err != nil {
			return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: mark signal executed: %w", err)
		}
		sig.Executed = true
		result.Trade = &trade
		tradeCreated = true
	}

	if tradeCreated {
		snap, err := s.appendPortfolioSnapshot(ctx, tx, market, now)
		if err != nil {
			return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: portfolio snapshot: %w", err)
		}
		result.Snapshot = &snap
	}

	if err := tx.Commit(); err != nil {
		return ports.CycleResult{}, fmt.Errorf("storage.PersistCycleResult: commit: %w", err)
	}
	return result, nil
}

func upsertMarket(ctx context.Context, tx *sql.Tx, m domain.Market) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO markets (market_id, question, category, resolution_date, price_yes, price_no,
			volume_24h, liquidity, archived, active, closed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (market_id) DO UPDATE SET
			question        = excluded.question,
			category        = excluded.category,
			resolution_date = excluded.resolution_date,
			price_yes       = excluded.price_yes,
			price_no        = excluded.price_no,
			volume_24h      = excluded.volume_24h,
			liquidity       = excluded.liquidity,
			archived        = excluded.archived,
			active          = excluded.active,
			closed          = excluded.closed
	`, m.MarketID, m.Question, m.Category, m.ResolutionDate, m.PriceYes, m.PriceNo,
		m.Volume24h, m.Liquidity, m.Archived, m.Active, m.Closed)
	return err
}

func insertPrediction(ctx context.Context, tx *sql.Tx, p domain.Prediction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO predictions (id, market_id, prediction_time, model_probability, market_price, edge, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.MarketID, p.PredictionTime, p.ModelProbability, p.MarketPrice, p.Edge, p.Confidence)
	return err
}

func insertSignal(ctx context.Context, tx *sql.Tx, s domain.Signal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO signals (id, prediction_id, market_id, created_at, side, strength, suggested_size, executed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.PredictionID, s.MarketID, s.CreatedAt, string(s.Side), string(s.Strength), s.SuggestedSize, s.Executed)
	return err
}

func markSignalExecuted(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `UPDATE signals SET executed = TRUE WHERE id = $1`, id)
	return err
}

func insertTrade(ctx context.Context, tx *sql.Tx, t domain.Trade) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO trades (id, signal_id, market_id, side, entry_price, size, entry_time, status, paper_trading)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.SignalID, t.MarketID, string(t.Side), t.EntryPrice, t.Size, t.EntryTime, string(t.Status), t.PaperTrading)
	return err
}

// availableCapital is the cash remaining after currently-deployed capital:
// the latest PortfolioSnapshot's Cash, or the full configured starting
// cash when no snapshot has been taken yet.
func (s *Storage) availableCapital(ctx context.Context, tx *sql.Tx) (float64, error) {
	prior, err := latestSnapshot(ctx, tx, s.config.PaperTrading)
	if err != nil {
		return 0, err
	}
	if prior == nil {
		return s.config.StartingCash, nil
	}
	return prior.Cash, nil
}

// appendPortfolioSnapshot computes and inserts a new PortfolioSnapshot row
// across all currently OPEN trades. It never mutates a prior row.
func (s *Storage) appendPortfolioSnapshot(ctx context.Context, tx *sql.Tx, market domain.Market, now time.Time) (domain.PortfolioSnapshot, error) {
	openTrades, err := queryOpenTrades(ctx, tx)
	if err != nil {
		return domain.PortfolioSnapshot{}, err
	}

	prior, err := latestSnapshot(ctx, tx, s.config.PaperTrading)
	if err != nil {
		return domain.PortfolioSnapshot{}, err
	}
	realizedPnL := 0.0
	if prior != nil {
		realizedPnL = prior.RealizedPnL
	}

	marketsByID := map[string]domain.Market{market.MarketID: market}
	snap := domain.BuildSnapshot(uuid.NewString(), now, openTrades, marketsByID, s.config.StartingCash, realizedPnL, s.config.PaperTrading)

	priorDay, err := latestSnapshotBefore(ctx, tx, s.config.PaperTrading, startOfUTCDay(now))
	if err != nil {
		return domain.PortfolioSnapshot{}, err
	}
	if priorDay != nil {
		snap.DailyPnL = (snap.RealizedPnL + snap.UnrealizedPnL) - (priorDay.RealizedPnL + priorDay.UnrealizedPnL)
	}

	if err := insertSnapshot(ctx, tx, snap); err != nil {
		return domain.PortfolioSnapshot{}, err
	}
	return snap, nil
}

func startOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func queryOpenTrades(ctx context.Context, tx *sql.Tx) ([]domain.Trade, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, signal_id, market_id, side, entry_price, size, entry_time, status, paper_trading
		FROM trades WHERE status = 'OPEN'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var side, status string
		if err := rows.Scan(&t.ID, &t.SignalID, &t.MarketID, &side, &t.EntryPrice, &t.Size, &t.EntryTime, &status, &t.PaperTrading); err != nil {
			return nil, err
		}
		t.Side = domain.Side(side)
		t.Status = domain.TradeStatus(status)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func insertSnapshot(ctx context.Context, tx *sql.Tx, snap domain.PortfolioSnapshot) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO portfolio_snapshots
			(id, snapshot_time, total_value, cash, positions_value, total_exposure, daily_pnl, unrealized_pnl, realized_pnl, paper_trading)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, snap.ID, snap.SnapshotTime, snap.TotalValue, snap.Cash, snap.PositionsValue, snap.TotalExposure,
		snap.DailyPnL, snap.UnrealizedPnL, snap.RealizedPnL, snap.PaperTrading)
	return err
}
