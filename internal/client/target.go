package client

import "github.com/PuerkitoBio/goquery"

func extractTarget(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerTarget)}

	name := firstText(doc,
		`[data-test="product-title"]`,
		"h1",
	)
	if name == "" {
		name = "Target Product"
	}
	res.Name = cleanName(name)

	rawPrice := firstText(doc, `[data-test="product-price"]`)
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}
	res.Currency = DetectCurrency(rawPrice, doc)

	res.ImageURL = firstAttr(doc, "src", `[data-test="product-image"] img`)
	return res
}
