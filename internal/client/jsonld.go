package client

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type ldProduct struct {
	Name     string
	Price    string
	Currency string
	ImageURL string
}

// findLDProduct scans every ld+json script block for a schema.org Product,
// handling the top-level object, array, and @graph container shapes.
func findLDProduct(doc *goquery.Document) *ldProduct {
	var found *ldProduct
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		for _, node := range ldNodes(raw) {
			if p := ldProductFromNode(node); p != nil {
				found = p
				return false
			}
		}
		return true
	})
	return found
}

func ldNodes(raw any) []map[string]any {
	var nodes []map[string]any
	switch v := raw.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok {
					nodes = append(nodes, m)
				}
			}
		}
		nodes = append(nodes, v)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				nodes = append(nodes, m)
			}
		}
	}
	return nodes
}

func ldProductFromNode(node map[string]any) *ldProduct {
	if !isLDType(node["@type"], "Product") {
		return nil
	}
	p := ldProduct{
		Name:     ldString(node["name"]),
		ImageURL: ldFirstString(node["image"]),
	}
	if offers := ldFirstMap(node["offers"]); offers != nil {
		p.Price = ldString(offers["price"])
		p.Currency = ldString(offers["priceCurrency"])
	}
	if p.Name == "" && p.Price == "" {
		return nil
	}
	return &p
}

func isLDType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func ldString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func ldFirstString(v any) string {
	if arr, ok := v.([]any); ok && len(arr) > 0 {
		v = arr[0]
	}
	if m, ok := v.(map[string]any); ok {
		return ldString(m["url"])
	}
	return ldString(v)
}

func ldFirstMap(v any) map[string]any {
	if arr, ok := v.([]any); ok && len(arr) > 0 {
		v = arr[0]
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
