package client

import "github.com/PuerkitoBio/goquery"

func extractTemu(doc *goquery.Document) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerTemu), Currency: "USD"}

	var rawPrice string
	if ld := findLDProduct(doc); ld != nil {
		res.Name = ld.Name
		rawPrice = ld.Price
		res.ImageURL = ld.ImageURL
		if ld.Currency != "" {
			res.Currency = ld.Currency
		}
	}

	if res.Name == "" {
		res.Name = firstAttr(doc, "content", `meta[property="og:title"]`)
	}
	if res.Name == "" {
		res.Name = firstText(doc, "h1")
	}
	if res.Name == "" {
		res.Name = "Temu Product"
	}
	res.Name = cleanName(res.Name)

	if rawPrice == "" {
		rawPrice = firstAttr(doc, "content",
			`meta[property="og:price:amount"]`,
			`meta[property="product:price:amount"]`,
		)
		if rawPrice != "" {
			res.Currency = DetectCurrency(rawPrice, doc)
		}
	}
	if price, ok := ParsePrice(rawPrice); ok {
		res.setPrice(price)
	}

	if res.ImageURL == "" {
		res.ImageURL = firstAttr(doc, "content", `meta[property="og:image"]`)
	}
	return res
}
