package client

import "github.com/PuerkitoBio/goquery"

func extractBestBuy(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerBestBuy)}

	name := firstText(doc,
		".sku-title h1",
		"h1",
	)
	if name == "" {
		name = "Best Buy Product"
	}
	res.Name = cleanName(name)

	rawPrice := firstText(doc,
		`[data-testid="customer-price"] span`,
		".priceView-customer-price span",
	)
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}
	res.Currency = DetectCurrency(rawPrice, doc)

	res.ImageURL = firstAttr(doc, "src", ".primary-image")
	return res
}
