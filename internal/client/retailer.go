package client

import (
	"net/url"
	"strings"
)

type Retailer string

const (
	RetailerAmazon     Retailer = "amazon"
	RetailerWalmart    Retailer = "walmart"
	RetailerBestBuy    Retailer = "bestbuy"
	RetailerTarget     Retailer = "target"
	RetailerEbay       Retailer = "ebay"
	RetailerCostco     Retailer = "costco"
	RetailerAliexpress Retailer = "aliexpress"
	RetailerTemu       Retailer = "temu"
	RetailerNewegg     Retailer = "newegg"
	RetailerHomeDepot  Retailer = "homedepot"
	RetailerLowes      Retailer = "lowes"
	RetailerWayfair    Retailer = "wayfair"
	RetailerEtsy       Retailer = "etsy"
	RetailerArgos      Retailer = "argos"
	RetailerCurrys     Retailer = "currys"
	RetailerJohnLewis  Retailer = "johnlewis"
	RetailerAO         Retailer = "ao"
	RetailerVery       Retailer = "very"
	RetailerUnknown    Retailer = "unknown"
)

// Pattern order matters: more specific hostnames first, and "ao.com" keeps
// its TLD so hostnames that merely contain "ao" do not match.
var retailerPatterns = []struct {
	pattern  string
	retailer Retailer
}{
	{"amazon", RetailerAmazon},
	{"walmart", RetailerWalmart},
	{"bestbuy", RetailerBestBuy},
	{"target", RetailerTarget},
	{"ebay", RetailerEbay},
	{"costco", RetailerCostco},
	{"aliexpress", RetailerAliexpress},
	{"temu", RetailerTemu},
	{"newegg", RetailerNewegg},
	{"homedepot", RetailerHomeDepot},
	{"lowes", RetailerLowes},
	{"wayfair", RetailerWayfair},
	{"etsy", RetailerEtsy},
	{"argos", RetailerArgos},
	{"currys", RetailerCurrys},
	{"johnlewis", RetailerJohnLewis},
	{"ao.com", RetailerAO},
	{"very.co.uk", RetailerVery},
}

// DetectRetailer maps a URL's hostname to a known retailer tag. It is total:
// malformed input classifies as unknown rather than erroring.
func DetectRetailer(rawURL string) Retailer {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return RetailerUnknown
	}
	hostname := strings.ToLower(parsedURL.Hostname())
	if hostname == "" {
		return RetailerUnknown
	}
	for _, p := range retailerPatterns {
		if strings.Contains(hostname, p.pattern) {
			return p.retailer
		}
	}
	return RetailerUnknown
}

// IsProductPage reports whether a URL's path looks like a single product
// page on a retailer we know. This backs the browser extension's "track
// this page" affordance and is deliberately independent of DetectRetailer's
// hostname classification.
func IsProductPage(rawURL string) bool {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	hostname := strings.ToLower(parsedURL.Hostname())
	path := strings.ToLower(parsedURL.Path)
	switch {
	case strings.Contains(hostname, "amazon"):
		return strings.Contains(path, "/dp/") || strings.Contains(path, "/gp/product/")
	case strings.Contains(hostname, "walmart"):
		return strings.Contains(path, "/ip/")
	case strings.Contains(hostname, "bestbuy"):
		return strings.Contains(path, "/site/") && strings.Contains(path, ".p")
	case strings.Contains(hostname, "target"):
		return strings.Contains(path, "/-/a-")
	case strings.Contains(hostname, "ebay"):
		return strings.Contains(path, "/itm/")
	}
	return false
}

var retailerDisplayNames = map[Retailer]string{
	RetailerAmazon:     "Amazon",
	RetailerWalmart:    "Walmart",
	RetailerBestBuy:    "Best Buy",
	RetailerTarget:     "Target",
	RetailerEbay:       "eBay",
	RetailerCostco:     "Costco",
	RetailerAliexpress: "AliExpress",
	RetailerTemu:       "Temu",
	RetailerNewegg:     "Newegg",
	RetailerHomeDepot:  "Home Depot",
	RetailerLowes:      "Lowe's",
	RetailerWayfair:    "Wayfair",
	RetailerEtsy:       "Etsy",
	RetailerArgos:      "Argos",
	RetailerCurrys:     "Currys",
	RetailerJohnLewis:  "John Lewis",
	RetailerAO:         "AO",
	RetailerVery:       "Very",
}

// RetailerDisplayName returns a human readable retailer name for the URL,
// falling back to a capitalized hostname when the retailer is unknown.
func RetailerDisplayName(rawURL string) string {
	retailer := DetectRetailer(rawURL)
	if name, ok := retailerDisplayNames[retailer]; ok {
		return name
	}
	if name := hostDisplayName(rawURL); name != "" {
		return name
	}
	return "Unknown"
}

var hostSuffixes = []string{
	".co.uk", ".com.au", ".com", ".net", ".org", ".shop", ".store", ".io", ".ca", ".de", ".fr", ".uk",
}

// hostDisplayName turns "www.shopexample.co.uk" into "Shopexample" for
// products added from sites without a dedicated extractor.
func hostDisplayName(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsedURL.Hostname())
	host = strings.TrimPrefix(host, "www.")
	for _, suffix := range hostSuffixes {
		if strings.HasSuffix(host, suffix) {
			host = strings.TrimSuffix(host, suffix)
			break
		}
	}
	if host == "" {
		return ""
	}
	return strings.ToUpper(host[:1]) + host[1:]
}
