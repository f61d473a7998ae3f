package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRetailer(t *testing.T) {
	tests := []struct {
		url  string
		want Retailer
	}{
		{"https://www.amazon.com/dp/B0ABCDEF", RetailerAmazon},
		{"https://www.amazon.co.uk/gp/product/B0ABCDEF", RetailerAmazon},
		{"https://www.walmart.com/ip/12345", RetailerWalmart},
		{"https://www.bestbuy.com/site/thing/6428997.p", RetailerBestBuy},
		{"https://www.target.com/p/thing/-/A-123", RetailerTarget},
		{"https://www.ebay.com/itm/5555", RetailerEbay},
		{"https://www.costco.com/thing.product.100.html", RetailerCostco},
		{"https://www.aliexpress.com/item/100500.html", RetailerAliexpress},
		{"https://www.temu.com/thing-g-601099.html", RetailerTemu},
		{"https://www.newegg.com/p/N82E1234", RetailerNewegg},
		{"https://www.homedepot.com/p/123", RetailerHomeDepot},
		{"https://www.lowes.com/pd/thing/100", RetailerLowes},
		{"https://www.wayfair.com/furniture/pdp/thing.html", RetailerWayfair},
		{"https://www.etsy.com/listing/12345", RetailerEtsy},
		{"https://www.argos.co.uk/product/123", RetailerArgos},
		{"https://www.currys.co.uk/products/thing.html", RetailerCurrys},
		{"https://www.johnlewis.com/thing/p123", RetailerJohnLewis},
		{"https://ao.com/product/thing", RetailerAO},
		{"https://www.very.co.uk/thing/p/123", RetailerVery},
		{"https://www.example.com/product/1", RetailerUnknown},
		{"not a url at all", RetailerUnknown},
		{"", RetailerUnknown},
		{"://bad", RetailerUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRetailer(tt.url))
		})
	}
}

func TestIsProductPage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.amazon.com/dp/B0ABCDEF", true},
		{"https://www.amazon.com/gp/product/B0ABCDEF", true},
		{"https://www.amazon.com/s?k=laptops", false},
		{"https://www.walmart.com/ip/12345", true},
		{"https://www.walmart.com/browse/electronics", false},
		{"https://www.bestbuy.com/site/thing/6428997.p", true},
		{"https://www.bestbuy.com/site/electronics", false},
		{"https://www.target.com/p/thing/-/A-123", true},
		{"https://www.ebay.com/itm/5555", true},
		{"https://www.ebay.com/sch/i.html?_nkw=laptop", false},
		{"https://www.example.com/dp/whatever", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProductPage(tt.url))
		})
	}
}

func TestRetailerDisplayName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.bestbuy.com/site/thing.p", "Best Buy"},
		{"https://www.ebay.com/itm/5555", "eBay"},
		{"https://www.lowes.com/pd/thing", "Lowe's"},
		{"https://www.shopexample.com/product/1", "Shopexample"},
		{"https://gadgets.co.uk/product/1", "Gadgets"},
		{"https://www.megastore.shop/item", "Megastore"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, RetailerDisplayName(tt.url))
		})
	}
}
