package features

import (
	"math"
	"time"

	"github.com/jmoreno-dev/polypredict/internal/domain"
	"github.com/jmoreno-dev/polypredict/internal/ports"
)

// sentimentAgeHalfLife is the age at which an article/post's sentiment
// weight decays to half.
const sentimentAgeHalfLife = 48 * time.Hour

// Pipeline builds the fixed-schema FeatureVector from a market plus its
// aggregated external data.
type Pipeline struct {
	sentiment ports.SentimentScorer
	embedder  ports.Embedder
	names     []string
}

func New(sentiment ports.SentimentScorer, embedder ports.Embedder) *Pipeline {
	return &Pipeline{
		sentiment: sentiment,
		embedder:  embedder,
		names:     Names(embedder.Dim()),
	}
}

// Names returns the frozen feature-name list this pipeline produces.
func (p *Pipeline) Names() []string {
	return p.names
}

// Build assembles the FeatureVector for one market. It never silently
// reshapes: a length mismatch against the frozen schema is returned as
// domain.ErrFeatureShapeMismatch.
func (p *Pipeline) Build(market domain.Market, data domain.AggregatedData, now time.Time) (domain.FeatureVector, error) {
	values := make([]float64, 0, len(p.names))

	values = append(values, marketFeatures(market, data)...)
	values = append(values, categoryOneHot(market.Category)...)

	newsMean, socialMean, count, err := p.sentimentFeatures(data, now)
	if err != nil {
		return domain.FeatureVector{}, err
	}
	values = append(values, newsMean, socialMean, count)

	values = append(values, temporalFeatures(now)...)

	emb, err := p.embedder.Embed(market.Question)
	if err != nil {
		return domain.FeatureVector{}, err
	}
	values = append(values, emb...)

	return domain.NewFeatureVector(p.names, values)
}

func marketFeatures(market domain.Market, data domain.AggregatedData) []float64 {
	spread := 0.0
	if data.Midpoint != nil {
		spread = math.Abs(market.PriceYes - *data.Midpoint)
	}
	return []float64{
		market.PriceYes,
		spread,
		logOrZero(market.Volume24hOrZero()),
		logOrZero(liquidityOrZero(market)),
		market.HoursToResolution() / 24.0,
	}
}

func liquidityOrZero(m domain.Market) float64 {
	if m.Liquidity == nil {
		return 0
	}
	return *m.Liquidity
}

func logOrZero(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log(v)
}

func categoryOneHot(category string) []float64 {
	out := make([]float64, len(categoryVocab))
	idx := len(categoryVocab) - 1 // "other"
	for i, c := range categoryVocab {
		if c == category {
			idx = i
			break
		}
	}
	out[idx] = 1
	return out
}

func (p *Pipeline) sentimentFeatures(data domain.AggregatedData, now time.Time) (newsMean, socialMean, count float64, err error) {
	newsMean, err = p.weightedSentiment(newsTexts(data.NewsItems), newsTimes(data.NewsItems), now)
	if err != nil {
		return 0, 0, 0, err
	}
	socialMean, err = p.weightedSentiment(socialTexts(data.SocialItems), socialTimes(data.SocialItems), now)
	if err != nil {
		return 0, 0, 0, err
	}
	count = float64(len(data.NewsItems) + len(data.SocialItems))
	return newsMean, socialMean, count, nil
}

func (p *Pipeline) weightedSentiment(texts []string, times []time.Time, now time.Time) (float64, error) {
	if len(texts) == 0 {
		return 0, nil
	}
	var weightedSum, totalWeight float64
	for i, text := range texts {
		score, err := p.sentiment.Score(text)
		if err != nil {
			return 0, err
		}
		age := now.Sub(times[i])
		if age < 0 {
			age = 0
		}
		weight := math.Exp(-math.Ln2 * age.Hours() / sentimentAgeHalfLife.Hours())
		weightedSum += score * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0, nil
	}
	return weightedSum / totalWeight, nil
}

func newsTexts(items []domain.NewsItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title + ". " + it.Body
	}
	return out
}

func newsTimes(items []domain.NewsItem) []time.Time {
	out := make([]time.Time, len(items))
	for i, it := range items {
		out[i] = it.PublishedAt
	}
	return out
}

func socialTexts(items []domain.SocialItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func socialTimes(items []domain.SocialItem) []time.Time {
	out := make([]time.Time, len(items))
	for i, it := range items {
		out[i] = it.PostedAt
	}
	return out
}

func temporalFeatures(now time.Time) []float64 {
	hour := float64(now.Hour()) + float64(now.Minute())/60.0
	dow := float64(now.Weekday())
	hourRad := 2 * math.Pi * hour / 24.0
	dowRad := 2 * math.Pi * dow / 7.0
	return []float64{
		math.Sin(hourRad), math.Cos(hourRad),
		math.Sin(dowRad), math.Cos(dowRad),
	}
}
