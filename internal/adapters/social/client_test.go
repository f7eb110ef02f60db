package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_EmptyBaseDisables(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.enabled)

	items, err := c.FetchSocial(context.Background(), "query")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestFetchSocial_EmptyQueryYieldsEmptyResult(t *testing.T) {
	c := NewClient("http://unused")
	items, err := c.FetchSocial(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestFetchSocial_ParsesPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]rawPost{
			{Text: "hot take", PostedAt: "2026-01-01T00:00:00Z", Source: "twitter", Engagement: 42},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.FetchSocial(context.Background(), "election")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hot take", items[0].Text)
	assert.Equal(t, 42, items[0].Engagement)
}

func TestFetchSocial_ServerErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchSocial(context.Background(), "election")
	assert.Error(t, err)
}
