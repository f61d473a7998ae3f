package client

import (
	"context"
	"io"
	"math/rand"
	"net/http"

	"github.com/go-redis/redis/v9"
	"github.com/pkg/errors"
	"priceghost/internal/misc"
)

var ErrFetch = errors.New("fetch error")
var ErrFetchStatus = errors.New("fetch returned non-success status")

type Client struct {
	*http.Client
	Redis        *redis.Client
	Logger       logger
	ResendAPIKey string
	EmailFrom    string
	UserAgents   []string
}

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// Retailers fingerprint plain bots by User-Agent, so page fetches rotate
// through a pool of real browser strings. Tests inject a fixed pool via
// Client.UserAgents to pin determinism.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

func (c Client) userAgent() string {
	pool := c.UserAgents
	if len(pool) == 0 {
		pool = defaultUserAgents
	}
	return pool[rand.Intn(len(pool))]
}

func (c Client) newPageRequest(ctx context.Context, url string) (*http.Request, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	r.Header.Set("User-Agent", c.userAgent())
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	r.Header.Set("Accept-Language", "en-US,en;q=0.5")
	r.Header.Set("Upgrade-Insecure-Requests", "1")
	// Accept-Encoding is left to the transport so gzip bodies come back
	// transparently decompressed.
	return r, nil
}

// fetchPage GETs a product page and returns its HTML, following redirects.
// The body is capped at 1 MiB; product pages past that are junk anyway.
func (c Client) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := c.newPageRequest(ctx, url)
	if err != nil {
		return "", errors.Wrapf(err, "error creating request from URL: %s", url)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrFetch, "error doing request to URL: %s, err: %v", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Errorf("fetchPage: Error closing response body for URL: %s, err: %v", url, err)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(nil, resp.Body, 1024*1024))
	if err != nil {
		return "", errors.Wrapf(err, "error reading page response body, status: %s, URL: %s", resp.Status, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrapf(ErrFetchStatus, "failed to fetch page: %d, URL: %s, body:\n%s",
			resp.StatusCode, url, misc.BytesLimit(body, 500))
	}
	return string(body), nil
}
