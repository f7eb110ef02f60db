package ports

// SentimentScorer scores free text on a [-1, 1] scale. It is pre-trained
// and loaded once; scoring must be deterministic for identical input.
type SentimentScorer interface {
	Score(text string) (float64, error)
}
