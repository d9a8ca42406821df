// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wikifacts/pkg/types"
)

func testClient(baseURL string) *Client {
	return NewClient(types.WikiConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "wikifacts-test/0.1",
		},
		BaseURL:    baseURL,
		MaxRetries: 1,
	}, nil)
}

func TestResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "opensearch", r.URL.Query().Get("action"))
		assert.Equal(t, "ada lovelace", r.URL.Query().Get("search"))
		assert.Equal(t, "wikifacts-test/0.1", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `["ada lovelace",["Ada Lovelace"],[""],["https://en.wikipedia.org/wiki/Ada_Lovelace"]]`)
	}))
	defer ts.Close()

	page, err := testClient(ts.URL).Resolve(context.Background(), "ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", page.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Ada_Lovelace", page.URL)
}

func TestResolveNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `["zzzz",[],[],[]]`)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Resolve(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Resolve(context.Background(), "ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestRenderHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "parse", r.URL.Query().Get("action"))
		assert.Equal(t, "Ada Lovelace", r.URL.Query().Get("page"))
		fmt.Fprint(w, `{"parse":{"title":"Ada Lovelace","text":"<div><table class=\"infobox\"><tr><td>Born</td></tr></table></div>"}}`)
	}))
	defer ts.Close()

	html, err := testClient(ts.URL).RenderHTML(context.Background(), Page{Title: "Ada Lovelace"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "infobox"))
}

func TestRenderHTMLMissingTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"missingtitle","info":"The page you specified doesn't exist."}}`)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).RenderHTML(context.Background(), Page{Title: "No Such Page"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenderHTMLAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"internal_api_error","info":"boom"}}`)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).RenderHTML(context.Background(), Page{Title: "Ada Lovelace"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "boom")
}

func TestResolveContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `["x",["X"],[""],["u"]]`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(ts.URL).Resolve(ctx, "x")
	require.Error(t, err)
}
