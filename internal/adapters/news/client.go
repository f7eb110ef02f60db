package news

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

const defaultBase = "https://newsapi.org/v2"

// rawArticle mirrors one result from the news provider's everything/search
// endpoint. content/description are both accepted as the body field.
type rawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type rawResponse struct {
	Status       string       `json:"status"`
	Articles     []rawArticle `json:"articles"`
	Code         string       `json:"code"`
	ErrorMessage string       `json:"message"`
}

// Client implements ports.NewsProvider against a NewsAPI-shaped upstream.
// Rate-limit exhaustion is non-fatal: it yields empty results for the
// remainder of the window rather than an error.
type Client struct {
	http    *http.Client
	base    string
	apiKey  string
	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		base:    defaultBase,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// FetchNews searches for articles matching query published within the last
// sinceDays days. An empty apiKey disables the provider: it returns an
// empty, non-error result, matching the social-provider disablement pattern.
func (c *Client) FetchNews(ctx context.Context, query string, sinceDays int) ([]domain.NewsItem, error) {
	if c.apiKey == "" || query == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	from := time.Now().UTC().AddDate(0, 0, -sinceDays).Format("2006-01-02")
	u := fmt.Sprintf("%s/everything?q=%s&from=%s&sortBy=publishedAt&apiKey=%s",
		c.base, url.QueryEscape(query), from, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("news API returned %d", resp.StatusCode)
	}

	var parsed rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		body := a.Description
		if body == "" {
			body = a.Content
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, domain.NewsItem{
			Title:       a.Title,
			Body:        body,
			PublishedAt: published,
			Source:      a.Source.Name,
		})
	}
	return items, nil
}
