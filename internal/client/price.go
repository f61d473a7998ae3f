package client

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var priceNumberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts a positive float from a raw price string such as
// "$1,299.99" or "£45.00 inc. VAT". Only the first number in the string
// counts, so strikethrough leftovers like "was $34.99" cannot bleed in.
// Returns 0 and false when no usable number is present.
func ParsePrice(raw string) (float64, bool) {
	match := priceNumberRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(match, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// Multi-character symbols before "$", so "CA$12,000" resolves to CAD and
// not USD.
var currencySymbolTable = []struct {
	symbol   string
	currency string
}{
	{"£", "GBP"},
	{"€", "EUR"},
	{"¥", "JPY"},
	{"CA$", "CAD"},
	{"C$", "CAD"},
	{"A$", "AUD"},
	{"$", "USD"},
}

// DetectCurrency infers an ISO currency code from the raw price text,
// then from document metadata, and defaults to USD. doc may be nil.
func DetectCurrency(raw string, doc *goquery.Document) string {
	for _, entry := range currencySymbolTable {
		if strings.Contains(raw, entry.symbol) {
			return entry.currency
		}
	}
	if doc != nil {
		if code := metaCurrency(doc); code != "" {
			return code
		}
	}
	return "USD"
}

func metaCurrency(doc *goquery.Document) string {
	selectors := []string{
		`[itemprop="priceCurrency"]`,
		`meta[property="og:price:currency"]`,
		`meta[property="product:price:currency"]`,
	}
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		code := node.AttrOr("content", "")
		if code == "" {
			code = strings.TrimSpace(node.Text())
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) == 3 {
			return code
		}
	}
	return ""
}
