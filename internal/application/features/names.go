package features

import "strconv"

// categoryVocab is the fixed small vocabulary one-hot encoded into the
// market-feature block. An unrecognized category maps to "other".
var categoryVocab = []string{
	"politics", "sports", "crypto", "business", "science", "entertainment", "other",
}

// Names returns the frozen, ordered feature-name list. The runtime must
// always produce a FeatureVector whose Values align 1:1 with this list;
// widening or narrowing it is a FeatureShapeMismatch.
func Names(embeddingDim int) []string {
	names := []string{
		"price_yes",
		"spread",
		"log_volume",
		"log_liquidity",
		"time_to_resolution_days",
	}
	for _, c := range categoryVocab {
		names = append(names, "category_"+c)
	}
	names = append(names,
		"sentiment_news_mean",
		"sentiment_social_mean",
		"sentiment_item_count",
		"hour_sin",
		"hour_cos",
		"dow_sin",
		"dow_cos",
	)
	for i := 0; i < embeddingDim; i++ {
		names = append(names, embeddingFeatureName(i))
	}
	return names
}

func embeddingFeatureName(i int) string {
	return "embed_" + strconv.Itoa(i)
}
