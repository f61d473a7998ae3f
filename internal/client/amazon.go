package client

import "github.com/PuerkitoBio/goquery"

func extractAmazon(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerAmazon)}

	name := firstText(doc,
		"#productTitle",
		"h1.product-title-word-break",
		"h1 span",
	)
	if name == "" {
		name = "Amazon Product"
	}
	res.Name = cleanName(name)

	rawPrice := firstText(doc,
		".a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		".a-price-whole",
		`[data-a-color="price"] .a-offscreen`,
	)
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}
	res.Currency = DetectCurrency(rawPrice, doc)

	res.ImageURL = firstAttr(doc, "src",
		"#landingImage",
		"#imgBlkFront",
		".a-dynamic-image",
		"#main-image",
	)
	return res
}
