// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki resolves topic strings to Wikipedia pages and renders
// their HTML through the MediaWiki API.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/wikifacts/internal/httputil"
	"github.com/pdiddy/wikifacts/pkg/types"
)

// defaultAPIBase is the English Wikipedia api.php endpoint. Tests and
// config substitute their own endpoint via WikiConfig.BaseURL.
const defaultAPIBase = "https://en.wikipedia.org/w/api.php"

// ErrNotFound reports that title search produced no page.
var ErrNotFound = errors.New("no Wikipedia page found")

// Page is a handle to a resolved Wikipedia page.
type Page struct {
	Title string
	URL   string
}

// Client talks to the MediaWiki API.
type Client struct {
	httpClient *http.Client
	apiBase    string
	userAgent  string
	maxRetries int
	log        *zap.Logger
}

// NewClient builds a Client from cfg. A nil logger disables logging.
func NewClient(cfg types.WikiConfig, log *zap.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiBase:    base,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}
}

// Resolve searches for title and returns a handle to the best-matching
// page. It returns ErrNotFound when the search has no results.
func (c *Client) Resolve(ctx context.Context, title string) (Page, error) {
	params := url.Values{
		"action": {"opensearch"},
		"search": {title},
		"limit":  {"1"},
		"format": {"json"},
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return Page{}, fmt.Errorf("searching for %q: %w", title, err)
	}

	// opensearch responds with a positional array:
	// [query, [titles], [descriptions], [urls]].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page{}, fmt.Errorf("parsing search response: %w", err)
	}
	if len(raw) < 4 {
		return Page{}, fmt.Errorf("malformed search response: %d elements", len(raw))
	}

	var titles, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return Page{}, fmt.Errorf("parsing search titles: %w", err)
	}
	if err := json.Unmarshal(raw[3], &urls); err != nil {
		return Page{}, fmt.Errorf("parsing search urls: %w", err)
	}

	if len(titles) == 0 {
		return Page{}, fmt.Errorf("%w for %q", ErrNotFound, title)
	}

	page := Page{Title: titles[0]}
	if len(urls) > 0 {
		page.URL = urls[0]
	}

	c.log.Debug("resolved topic",
		zap.String("topic", title),
		zap.String("page", page.Title))
	return page, nil
}

// RenderHTML returns the rendered HTML of the page body.
func (c *Client) RenderHTML(ctx context.Context, page Page) (string, error) {
	params := url.Values{
		"action":        {"parse"},
		"page":          {page.Title},
		"prop":          {"text"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", page.Title, err)
	}

	var parsed struct {
		Parse struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"parse"`
		Error struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing render response: %w", err)
	}

	if parsed.Error.Code == "missingtitle" {
		return "", fmt.Errorf("%w for %q", ErrNotFound, page.Title)
	}
	if parsed.Error.Code != "" {
		return "", fmt.Errorf("rendering %q: %s (%s)", page.Title, parsed.Error.Info, parsed.Error.Code)
	}
	if parsed.Parse.Text == "" {
		return "", fmt.Errorf("rendering %q: empty page text", page.Title)
	}

	c.log.Debug("rendered page",
		zap.String("page", page.Title),
		zap.Int("bytes", len(parsed.Parse.Text)))
	return parsed.Parse.Text, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.apiBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries, c.log)
	if err != nil {
		return nil, fmt.Errorf("MediaWiki API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MediaWiki API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
