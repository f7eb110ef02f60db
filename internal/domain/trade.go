package domain

import "time"

// TradeStatus is the lifecycle state of a simulated or live trade. Closure
// is driven by an out-of-scope external process.
type TradeStatus string

const (
	TradeOpen      TradeStatus = "OPEN"
	TradeClosed    TradeStatus = "CLOSED"
	TradeCancelled TradeStatus = "CANCELLED"
)

// Trade is the persisted record of a materialized position, created when
// auto-trade mode is on and a Signal is emitted.
type Trade struct {
	ID            string
	SignalID      string
	MarketID      string
	Side          Side
	EntryPrice    float64
	Size          float64
	EntryTime     time.Time
	ExitPrice     *float64
	ExitTime      *time.Time
	PnL           *float64
	Status        TradeStatus
	PaperTrading  bool
}

// NewTrade materializes an OPEN trade from a gated Signal at the market
// price observed when the signal was produced.
func NewTrade(id string, signal Signal, entryPrice float64, entryTime time.Time, paperTrading bool) Trade {
	return Trade{
		ID:           id,
		SignalID:     signal.ID,
		MarketID:     signal.MarketID,
		Side:         signal.Side,
		EntryPrice:   entryPrice,
		Size:         signal.SuggestedSize,
		EntryTime:    entryTime,
		Status:       TradeOpen,
		PaperTrading: paperTrading,
	}
}
