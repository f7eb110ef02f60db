package ports

import (
	"context"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// NewsProvider fetches recent news items relevant to a market question.
type NewsProvider interface {
	FetchNews(ctx context.Context, query string, since int) ([]domain.NewsItem, error)
}
