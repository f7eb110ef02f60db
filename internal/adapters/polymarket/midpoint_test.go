package polymarket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMidpoint_ParsesValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(rawMidpoint{Mid: "0.42"})
	}))
	defer srv.Close()

	provider := NewMidpointProvider(NewClient(srv.URL, ""))
	mid, err := provider.FetchMidpoint(context.Background(), "token1")

	require.NoError(t, err)
	require.NotNil(t, mid)
	assert.Equal(t, 0.42, *mid)
}

func TestFetchMidpoint_404IsNonError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewMidpointProvider(NewClient(srv.URL, ""))
	mid, err := provider.FetchMidpoint(context.Background(), "token1")

	require.NoError(t, err)
	assert.Nil(t, mid)
}

func TestFetchMidpoint_ServerErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := NewMidpointProvider(NewClient(srv.URL, ""))
	_, err := provider.FetchMidpoint(context.Background(), "token1")

	assert.Error(t, err)
}
