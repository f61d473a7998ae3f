package client

import "github.com/PuerkitoBio/goquery"

func extractWalmart(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerWalmart)}

	name := firstText(doc,
		"h1.prod-ProductTitle",
		`[data-testid="product-title"]`,
		"h1",
	)
	if name == "" {
		name = "Walmart Product"
	}
	res.Name = cleanName(name)

	rawPrice := firstText(doc, `[data-testid="price-wrap"] .f2`)
	if rawPrice == "" {
		rawPrice = firstAttr(doc, "content",
			".price-characteristic",
			`[itemprop="price"]`,
		)
	}
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}
	res.Currency = DetectCurrency(rawPrice, doc)

	res.ImageURL = firstAttr(doc, "src",
		`[data-testid="hero-image-container"] img`,
		".hover-zoom-hero-image",
	)
	return res
}
