package aggregator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoreno-dev/polypredict/internal/domain"
)

type fakeNews struct {
	items []domain.NewsItem
	err   error
}

func (f *fakeNews) FetchNews(ctx context.Context, query string, since int) ([]domain.NewsItem, error) {
	return f.items, f.err
}

type fakeMidpoint struct {
	mid *float64
	err error
}

func (f *fakeMidpoint) FetchMidpoint(ctx context.Context, tokenID string) (*float64, error) {
	return f.mid, f.err
}

type fakeSocial struct {
	items []domain.SocialItem
	err   error
}

func (f *fakeSocial) FetchSocial(ctx context.Context, query string) ([]domain.SocialItem, error) {
	return f.items, f.err
}

func TestFetchAllForMarket_HappyPath(t *testing.T) {
	mid := 0.55
	agg := New(
		&fakeNews{items: []domain.NewsItem{{Title: "a"}}},
		&fakeMidpoint{mid: &mid},
		&fakeSocial{items: []domain.SocialItem{{Text: "post"}}},
		5,
	)

	data := agg.FetchAllForMarket(context.Background(), domain.Market{MarketID: "m1"})

	require.Len(t, data.NewsItems, 1)
	require.Len(t, data.SocialItems, 1)
	require.NotNil(t, data.Midpoint)
	assert.Equal(t, 0.55, *data.Midpoint)
}

func TestFetchAllForMarket_PartialFailureDegradesOnlyThatField(t *testing.T) {
	agg := New(
		&fakeNews{err: errors.New("upstream down")},
		&fakeMidpoint{mid: nil, err: nil},
		&fakeSocial{items: []domain.SocialItem{{Text: "post"}}},
		5,
	)

	data := agg.FetchAllForMarket(context.Background(), domain.Market{MarketID: "m1"})

	assert.Nil(t, data.NewsItems)
	assert.Nil(t, data.Midpoint)
	assert.Len(t, data.SocialItems, 1)
}

func TestFetchAllForMarket_MidpointErrorLeavesNilNeverPanics(t *testing.T) {
	agg := New(
		&fakeNews{},
		&fakeMidpoint{err: errors.New("404-ish")},
		&fakeSocial{},
		5,
	)

	assert.NotPanics(t, func() {
		data := agg.FetchAllForMarket(context.Background(), domain.Market{MarketID: "m1"})
		assert.Nil(t, data.Midpoint)
	})
}

func TestFetchAllForMarket_SharedMidpointSemaphoreReleasedBetweenCalls(t *testing.T) {
	mid := 0.5
	agg := New(&fakeNews{}, &fakeMidpoint{mid: &mid}, &fakeSocial{}, 1)

	// Two sequential calls against a concurrency-1 semaphore must both
	// still complete without deadlocking.
	for i := 0; i < 2; i++ {
		data := agg.FetchAllForMarket(context.Background(), domain.Market{MarketID: "m1"})
		require.NotNil(t, data.Midpoint)
	}
}
