package client

import "github.com/PuerkitoBio/goquery"

func extractEbay(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerEbay)}

	name := firstText(doc,
		"h1.x-item-title__mainTitle span",
		".x-item-title span",
		"h1",
	)
	if name == "" {
		name = "eBay Item"
	}
	res.Name = cleanName(name)

	rawPrice := firstText(doc,
		".x-price-primary span.ux-textspans",
		`[itemprop="price"]`,
		"#prcIsum",
	)
	if rawPrice == "" {
		rawPrice = firstAttr(doc, "content", `[itemprop="price"]`)
	}
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}
	res.Currency = DetectCurrency(rawPrice, doc)

	res.ImageURL = firstAttr(doc, "src",
		".ux-image-carousel-item img",
		"#icImg",
	)
	if res.ImageURL == "" {
		res.ImageURL = firstAttr(doc, "content", `meta[property="og:image"]`)
	}
	return res
}
