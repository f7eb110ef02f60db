package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

// rawPost is one social post as returned by the configured aggregator
// endpoint (a thin proxy the operator points at Twitter/Reddit search).
type rawPost struct {
	Text       string `json:"text"`
	PostedAt   string `json:"posted_at"`
	Source     string `json:"source"`
	Engagement int    `json:"engagement"`
}

// Client implements ports.SocialProvider. When disabled by configuration
// (empty base URL), FetchSocial silently returns an empty, non-error
// result.
type Client struct {
	http    *http.Client
	base    string
	enabled bool
	limiter *rate.Limiter
}

func NewClient(base string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		base:    base,
		enabled: base != "",
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

func (c *Client) FetchSocial(ctx context.Context, query string) ([]domain.SocialItem, error) {
	if !c.enabled || query == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/search?q=%s", c.base, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("social request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("social provider returned %d", resp.StatusCode)
	}

	var posts []rawPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode social response: %w", err)
	}

	items := make([]domain.SocialItem, 0, len(posts))
	for _, p := range posts {
		posted, _ := time.Parse(time.RFC3339, p.PostedAt)
		items = append(items, domain.SocialItem{
			Text:       p.Text,
			PostedAt:   posted,
			Source:     p.Source,
			Engagement: p.Engagement,
		})
	}
	return items, nil
}
