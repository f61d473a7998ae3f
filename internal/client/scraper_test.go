package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pglogger "priceghost/internal/logger"
)

func newTestClient() Client {
	return Client{
		Client:     &http.Client{Timeout: 5 * time.Second},
		Logger:     pglogger.NewLogger(pglogger.LevelOff, io.Discard),
		UserAgents: []string{"test-agent"},
	}
}

func TestScrapeProduct(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.UserAgent())
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<script type="application/ld+json">
			{"@type": "Product", "name": "Test Widget", "offers": {"price": "42.00", "priceCurrency": "USD"}}
			</script>
			</head><body></body></html>`))
	}))
	defer ts.Close()

	c := newTestClient()
	res := c.ScrapeProduct(context.Background(), ts.URL+"/product/1", false)
	assert.True(t, res.Success)
	assert.Equal(t, "Test Widget", res.Name)
	require.NotNil(t, res.Price)
	assert.Equal(t, 42.0, *res.Price)
	assert.Empty(t, res.Error)
}

func TestScrapeProductServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient()
	res := c.ScrapeProduct(context.Background(), ts.URL+"/product/1", false)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "failed to fetch page: 500")
	assert.Nil(t, res.Price)
}

func TestScrapeProductConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := newTestClient()
	res := c.ScrapeProduct(context.Background(), url+"/product/1", false)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestScrapeProductNeverPanics(t *testing.T) {
	c := newTestClient()
	for _, url := range []string{"", "not a url", "ftp://wrong.scheme/x", "http://"} {
		res := c.ScrapeProduct(context.Background(), url, false)
		assert.False(t, res.Success, "url: %s", url)
		assert.NotEmpty(t, res.Error, "url: %s", url)
	}
}

func TestScrapeProductContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := newTestClient()
	res := c.ScrapeProduct(ctx, ts.URL+"/product/1", false)
	assert.False(t, res.Success)
}
