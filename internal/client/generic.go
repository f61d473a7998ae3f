package client

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	genericPriceMin = 0
	genericPriceMax = 100000
)

// extractGeneric handles retailers without a dedicated extractor. It layers
// JSON-LD structured data, Open Graph and microdata metadata, and finally a
// heuristic scan of price-looking elements.
func extractGeneric(doc *goquery.Document, rawURL string) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: RetailerDisplayName(rawURL), Currency: "USD"}

	ld := findLDProduct(doc)
	if ld != nil {
		res.Name = ld.Name
		res.ImageURL = ld.ImageURL
		if ld.Currency != "" {
			res.Currency = ld.Currency
		}
		if price, ok := ParsePrice(ld.Price); ok && saneGenericPrice(price) {
			res.setPrice(price)
		}
	}

	if res.Name == "" {
		res.Name = genericName(doc)
	}
	if res.Name == "" {
		res.Name = "Product"
	}
	res.Name = cleanName(res.Name)

	if res.Price == nil {
		if price, currency, ok := genericPrice(doc); ok {
			res.setPrice(price)
			if currency != "" {
				res.Currency = currency
			}
		}
	}

	if res.ImageURL == "" {
		res.ImageURL = genericImage(doc)
	}
	return res
}

func genericName(doc *goquery.Document) string {
	name := firstAttr(doc, "content",
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
		`meta[name="title"]`,
	)
	if name != "" {
		return name
	}
	if name = firstText(doc, "h1"); name != "" {
		return name
	}
	return stripTitleSuffix(firstText(doc, "title"))
}

// stripTitleSuffix drops a trailing "| Site" or "- Site" segment that page
// titles commonly carry.
func stripTitleSuffix(title string) string {
	for _, sep := range []string{" | ", " - "} {
		if i := strings.LastIndex(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}

func genericPrice(doc *goquery.Document) (float64, string, bool) {
	raw := firstAttr(doc, "content",
		`meta[property="product:price:amount"]`,
		`meta[property="og:price:amount"]`,
	)
	if price, ok := ParsePrice(raw); ok && saneGenericPrice(price) {
		return price, metaCurrency(doc), true
	}

	candidates := []string{
		firstPriceElementText(doc),
		firstAttr(doc, "data-price", "[data-price]"),
		firstAttr(doc, "content", `[itemprop="price"]`),
		firstText(doc, `[itemprop="price"]`),
	}
	for _, raw := range candidates {
		if price, ok := ParsePrice(raw); ok && saneGenericPrice(price) {
			return price, DetectCurrency(raw, doc), true
		}
	}
	return 0, "", false
}

// firstPriceElementText returns the text of the first element whose class
// or id mentions "price", skipping strikethrough original-price elements
// whose class mentions "compare", "was", or "old".
func firstPriceElementText(doc *goquery.Document) string {
	var text string
	doc.Find(`[class*="price"], [id*="price"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		marker := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
		for _, skip := range []string{"compare", "was", "old"} {
			if strings.Contains(marker, skip) {
				return true
			}
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			text = t
			return false
		}
		return true
	})
	return text
}

func saneGenericPrice(price float64) bool {
	return price > genericPriceMin && price < genericPriceMax
}

func genericImage(doc *goquery.Document) string {
	img := firstAttr(doc, "content",
		`meta[property="og:image"]`,
		`meta[property="og:image:secure_url"]`,
		`meta[name="twitter:image"]`,
	)
	if img != "" {
		return img
	}
	if img = firstAttr(doc, "src", `[itemprop="image"]`); img != "" {
		return img
	}
	return firstAttr(doc, "src", `img[class*="product"]`, `img[class*="main"]`)
}
