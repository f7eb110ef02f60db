package polymarket

import (
	"context"
	"fmt"
	"strconv"
)

// MidpointProvider implements ports.MidpointProvider against the price
// API's midpoint endpoint.
type MidpointProvider struct {
	client *Client
}

func NewMidpointProvider(client *Client) *MidpointProvider {
	return &MidpointProvider{client: client}
}

// FetchMidpoint returns nil, nil on a 404 — an expected "no midpoint
// available" outcome, never logged as an error.
func (p *MidpointProvider) FetchMidpoint(ctx context.Context, tokenID string) (*float64, error) {
	url := fmt.Sprintf("%s/midpoint?token_id=%s", p.client.priceBase, tokenID)
	var raw rawMidpoint
	found, err := p.client.getTolerating404(ctx, p.client.generalLimiter, url, &raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	mid, err := strconv.ParseFloat(raw.Mid.String(), 64)
	if err != nil {
		return nil, nil
	}
	return &mid, nil
}
