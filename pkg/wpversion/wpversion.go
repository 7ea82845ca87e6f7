// Package wpversion looks up the latest WordPress core version from the
// wordpress.org version-check API.
package wpversion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arthur-debert/svnrelease/pkg/logging"
	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// DefaultURL is the version-check endpoint.
const DefaultURL = "https://api.wordpress.org/core/version-check/1.7/"

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client fetches the latest version from a version-check endpoint.
type Client struct {
	URL        string
	HTTPClient *http.Client
	logger     zerolog.Logger
}

// New returns a Client for url, or DefaultURL when url is empty.
func New(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.GetLogger("wpversion"),
	}
}

// FetchLatestKnownVersion returns the highest "current" version among the
// offers in the response. ok is false when the endpoint is unreachable or
// the response holds no usable version.
func (c *Client) FetchLatestKnownVersion(ctx context.Context) (string, bool) {
	body, err := c.fetch(ctx)
	if err != nil {
		c.logger.Info().Err(err).Str("url", c.URL).Msg("Version check failed")
		return "", false
	}

	latest, ok := LatestFromResponse(body)
	if !ok {
		c.logger.Info().Str("url", c.URL).Msg("Version check returned no usable offers")
	}
	return latest, ok
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// LatestFromResponse picks the highest well-formed offers[].current version
// from a version-check response body.
func LatestFromResponse(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}

	var best *goversion.Version
	var bestRaw string
	for _, current := range gjson.GetBytes(body, "offers.#.current").Array() {
		raw := strings.TrimSpace(current.String())
		v, err := goversion.NewVersion(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}

	if best == nil {
		return "", false
	}
	return bestRaw, true
}
