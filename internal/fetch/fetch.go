package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cognicore/wordlens/pkg/wordlens/content"
)

// DefaultUserAgent identifies page requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; wordlens/1.0)"

// Client downloads pages and extracts their visible text.
type Client struct {
	UserAgent string
	Timeout   time.Duration

	HTTPClient *http.Client
}

// Page fetches rawURL and returns its extracted content.
func (c *Client) Page(ctx context.Context, rawURL string) (content.Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return content.Page{}, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return content.Page{}, fmt.Errorf("invalid URL: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return content.Page{}, fmt.Errorf("create request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return content.Page{}, fmt.Errorf("fetch URL %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return content.Page{}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, rawURL)
	}

	page, err := content.Extract(resp.Body)
	if err != nil {
		return content.Page{}, fmt.Errorf("extract content from %s: %w", rawURL, err)
	}
	page.URL = rawURL
	return page, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
