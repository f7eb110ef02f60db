package pipeline

import "sync/atomic"

// CycleReport counts the outcome of one RunCycle invocation.
type CycleReport struct {
	MarketsConsidered int
	PredictionsSaved  int
	SignalsCreated    int
	TradesCreated     int
	Errors            int
}

// counters accumulates a CycleReport safely across concurrent workers.
type counters struct {
	predictionsSaved int64
	signalsCreated   int64
	tradesCreated    int64
	errors           int64
}

func (c *counters) report(marketsConsidered int) CycleReport {
	return CycleReport{
		MarketsConsidered: marketsConsidered,
		PredictionsSaved:  int(atomic.LoadInt64(&c.predictionsSaved)),
		SignalsCreated:    int(atomic.LoadInt64(&c.signalsCreated)),
		TradesCreated:     int(atomic.LoadInt64(&c.tradesCreated)),
		Errors:            int(atomic.LoadInt64(&c.errors)),
	}
}
