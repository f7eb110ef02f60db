package ports

import (
	"context"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// MidpointProvider fetches the best-bid/best-ask midpoint for a market token.
// A 404 upstream must surface as (nil, nil), never as an error.
type MidpointProvider interface {
	FetchMidpoint(ctx context.Context, tokenID string) (*float64, error)
}

// SocialProvider fetches social posts relevant to a market question. An
// adapter backing a disabled social source returns an empty slice and nil
// error, never an error.
type SocialProvider interface {
	FetchSocial(ctx context.Context, query string) ([]domain.SocialItem, error)
}
