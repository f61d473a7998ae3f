package client

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"plain", "19.99", 19.99, true},
		{"dollar symbol", "$1,299.99", 1299.99, true},
		{"pound symbol", "£45.00", 45, true},
		{"canadian dollars", "C$12,000", 12000, true},
		{"trailing unit text", "$24.99 / each", 24.99, true},
		{"trailing text with period", "£45.00 inc. VAT", 45, true},
		{"first price wins", "$24.99 was $34.99", 24.99, true},
		{"surrounding whitespace", "  $5.00  ", 5, true},
		{"integer yen", "¥1980", 1980, true},
		{"no digits", "Currently unavailable", 0, false},
		{"empty", "", 0, false},
		{"zero", "$0.00", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"pound", "£45.00", "GBP"},
		{"euro", "€12,50", "EUR"},
		{"yen", "¥1980", "JPY"},
		{"canadian before bare dollar", "C$12,000", "CAD"},
		{"canadian long form", "CA$99.99", "CAD"},
		{"australian before bare dollar", "A$300", "AUD"},
		{"bare dollar", "$49.99", "USD"},
		{"no symbol defaults to USD", "49.99", "USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCurrency(tt.raw, nil))
		})
	}
}

func TestDetectCurrencyFromMeta(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><meta property="og:price:currency" content="gbp"></head><body></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "GBP", DetectCurrency("45.00", doc))
	assert.Equal(t, "EUR", DetectCurrency("€45.00", doc), "symbol in text wins over page metadata")
}
