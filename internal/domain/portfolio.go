package domain

import "time"

// PortfolioSnapshot is an append-only observation of aggregate portfolio
// state. Readers always take the row with the maximum SnapshotTime.
type PortfolioSnapshot struct {
	ID              string
	SnapshotTime    time.Time
	TotalValue      float64
	Cash            float64
	PositionsValue  float64
	TotalExposure   float64
	DailyPnL        float64
	UnrealizedPnL   float64
	RealizedPnL     float64
	PaperTrading    bool
}

// CurrentPrice resolves the mark price to use for one open trade: the
// in-memory market.price_yes when the trade's market was touched this
// cycle, otherwise the trade's own stored entry price.
func CurrentPrice(trade Trade, marketsByID map[string]Market) float64 {
	if m, ok := marketsByID[trade.MarketID]; ok {
		return m.PriceYes
	}
	return trade.EntryPrice
}

// PositionUnrealizedPnL computes one open trade's unrealized P&L at the
// given current price: positive exposure for YES, mirrored for NO.
func PositionUnrealizedPnL(trade Trade, currentPrice float64) float64 {
	value := trade.Size * currentPrice
	pnl := value - trade.Size
	if trade.Side == SideNo {
		pnl = -pnl
	}
	return pnl
}

// BuildSnapshot computes a new PortfolioSnapshot across all currently OPEN
// trades.
func BuildSnapshot(id string, now time.Time, openTrades []Trade, marketsByID map[string]Market, startingCash, realizedPnL float64, paperTrading bool) PortfolioSnapshot {
	var totalExposure, positionsValue, unrealizedPnL float64
	for _, t := range openTrades {
		price := CurrentPrice(t, marketsByID)
		totalExposure += t.Size
		positionsValue += t.Size * price
		unrealizedPnL += PositionUnrealizedPnL(t, price)
	}

	cash := startingCash - totalExposure + realizedPnL
	return PortfolioSnapshot{
		ID:             id,
		SnapshotTime:   now,
		TotalExposure:  totalExposure,
		PositionsValue: positionsValue,
		UnrealizedPnL:  unrealizedPnL,
		RealizedPnL:    realizedPnL,
		Cash:           cash,
		TotalValue:     cash + positionsValue,
		PaperTrading:   paperTrading,
	}
}
