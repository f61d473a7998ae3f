package client

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AliExpress renders its product data from a JSON blob embedded in an
// inline script, so the extractor regexes that blob instead of walking the
// DOM. Layout changes break only this file.
var (
	aliexpressNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"subject"\s*:\s*"((?:[^"\\]|\\.)+)"`),
		regexp.MustCompile(`"productTitle"\s*:\s*"((?:[^"\\]|\\.)+)"`),
	}
	aliexpressPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"actSkuCalPrice"\s*:\s*"([0-9.,]+)"`),
		regexp.MustCompile(`"skuCalPrice"\s*:\s*"([0-9.,]+)"`),
		regexp.MustCompile(`"minActivityAmount"\s*:\s*\{[^}]*"value"\s*:\s*([0-9.]+)`),
		regexp.MustCompile(`"minAmount"\s*:\s*\{[^}]*"value"\s*:\s*([0-9.]+)`),
	}
	aliexpressImagePattern = regexp.MustCompile(`"imagePathList"\s*:\s*\[\s*"((?:[^"\\]|\\.)+)"`)
)

func extractAliexpress(doc *goquery.Document, html string) ExtractionResult {
	res := ExtractionResult{Success: true, Retailer: string(RetailerAliexpress), Currency: "USD"}

	var name string
	for _, pattern := range aliexpressNamePatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			name = unescapeJSONString(m[1])
			break
		}
	}
	if name == "" {
		name = firstAttr(doc, "content", `meta[property="og:title"]`)
	}
	if name == "" {
		name = "AliExpress Product"
	}
	res.Name = cleanName(name)

	for _, pattern := range aliexpressPricePatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		if price, ok := ParsePrice(m[1]); ok {
			res.setPrice(price)
			break
		}
	}

	if m := aliexpressImagePattern.FindStringSubmatch(html); m != nil {
		res.ImageURL = unescapeJSONString(m[1])
	}
	if res.ImageURL == "" {
		res.ImageURL = firstAttr(doc, "content", `meta[property="og:image"]`)
	}
	return res
}

func unescapeJSONString(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\/`, `/`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
