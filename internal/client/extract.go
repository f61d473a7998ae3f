package client

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"priceghost/internal/misc"
)

// firstText walks selectors in order and returns the first non-empty
// trimmed text match.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// firstAttr walks selectors in order and returns the first non-empty value
// of the named attribute.
func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, sel := range selectors {
		val := strings.TrimSpace(doc.Find(sel).First().AttrOr(attr, ""))
		if val != "" {
			return val
		}
	}
	return ""
}

const productNameLimit = 200

// cleanName normalizes scraped product names: collapses runs of whitespace,
// strips a trailing " | Retailer" or " - Retailer" suffix for any known
// retailer name, and truncates to a sane length. The generic path sees
// titles like "Widget | Walmart" too, so every retailer name is checked.
func cleanName(name string) string {
	name = misc.ExtraSpaceRegex.ReplaceAllString(strings.TrimSpace(name), " ")
	for _, display := range retailerDisplayNames {
		for _, sep := range []string{" | ", " - "} {
			if strings.HasSuffix(name, sep+display) {
				return misc.StringLimit(strings.TrimSpace(strings.TrimSuffix(name, sep+display)), productNameLimit)
			}
		}
	}
	return misc.StringLimit(name, productNameLimit)
}
