package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestProvider_Search(t *testing.T) {
	var gotBody map[string]any
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		gotKey = r.Header.Get("X-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{
			"organic": [
				{"link": "https://example.com/a", "title": "A", "snippet": "first"},
				{"link": "", "title": "skipped"},
				{"link": "https://example.com/b", "title": "B", "snippet": "second"}
			]
		}`))
	}))
	defer server.Close()

	provider, err := New(Config{APIKey: "test-key", BaseURL: server.URL, Rate: 1000})
	require.NoError(t, err)

	results, err := provider.Search(context.Background(), "sliding window overlap", 10)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "sliding window overlap", gotBody["q"])
	assert.Equal(t, float64(10), gotBody["num"])

	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "first", results[0].Snippet)
	assert.Equal(t, "https://example.com/b", results[1].URL)
}

func TestProvider_SearchRespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"organic": [
				{"link": "https://example.com/1"},
				{"link": "https://example.com/2"},
				{"link": "https://example.com/3"}
			]
		}`))
	}))
	defer server.Close()

	provider, err := New(Config{APIKey: "k", BaseURL: server.URL, Rate: 1000})
	require.NoError(t, err)

	results, err := provider.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestProvider_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Unauthorized."}`))
	}))
	defer server.Close()

	provider, err := New(Config{APIKey: "bad", BaseURL: server.URL, Rate: 1000})
	require.NoError(t, err)

	_, err = provider.Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestProvider_SearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider, err := New(Config{APIKey: "k", BaseURL: server.URL, Rate: 1000})
	require.NoError(t, err)

	_, err = provider.Search(context.Background(), "q", 10)
	require.Error(t, err)
}
