package client

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractGenericJSONLD(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		{"@type": "Product", "name": "Wireless Keyboard", "image": ["https://cdn.example.com/kb.jpg"],
		 "offers": {"price": "79.99", "priceCurrency": "EUR"}}
		</script>
		</head><body><h1>Something else</h1></body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/1")
	assert.True(t, res.Success)
	assert.Equal(t, "Wireless Keyboard", res.Name)
	require.NotNil(t, res.Price)
	assert.Equal(t, 79.99, *res.Price)
	assert.Equal(t, "EUR", res.Currency)
	assert.Equal(t, "https://cdn.example.com/kb.jpg", res.ImageURL)
	assert.Equal(t, "Shopexample", res.Retailer)
}

func TestExtractGenericJSONLDGraph(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">
		{"@graph": [
			{"@type": "WebSite", "name": "Shop"},
			{"@type": "Product", "name": "Desk Lamp", "offers": [{"price": 24.5, "priceCurrency": "USD"}]}
		]}
		</script>
		</head><body></body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/2")
	assert.Equal(t, "Desk Lamp", res.Name)
	require.NotNil(t, res.Price)
	assert.Equal(t, 24.5, *res.Price)
}

func TestExtractGenericOpenGraphFallback(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<meta property="og:title" content="Standing Desk">
		<meta property="product:price:amount" content="349.00">
		<meta property="og:image" content="https://cdn.example.com/desk.jpg">
		</head><body></body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/3")
	assert.True(t, res.Success)
	assert.Equal(t, "Standing Desk", res.Name)
	require.NotNil(t, res.Price)
	assert.Equal(t, 349.0, *res.Price)
	assert.Equal(t, "https://cdn.example.com/desk.jpg", res.ImageURL)
}

func TestExtractGenericSkipsStrikethroughPrices(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Office Chair</h1>
		<span class="compare-price">$199.99</span>
		<span class="was-price">$189.99</span>
		<span class="old-price">$179.99</span>
		<span class="sale-price">$129.99</span>
		</body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/4")
	require.NotNil(t, res.Price)
	assert.Equal(t, 129.99, *res.Price)
}

func TestExtractGenericPriceSanityBounds(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Thing</h1>
		<span class="price">$2500000</span>
		</body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/5")
	assert.True(t, res.Success)
	assert.Nil(t, res.Price, "prices outside the sane range are rejected")
}

func TestExtractGenericMissingEverything(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>nothing here</p></body></html>`)

	res := extractGeneric(doc, "https://www.shopexample.com/product/6")
	assert.True(t, res.Success, "extractors report partial results, they do not fail")
	assert.Equal(t, "Product", res.Name)
	assert.Nil(t, res.Price)
	assert.Equal(t, "USD", res.Currency)
}

func TestExtractGenericTitleSuffixStripped(t *testing.T) {
	doc := docFromHTML(t, `<html><head><title>Gaming Mouse | MegaShop</title></head><body></body></html>`)

	res := extractGeneric(doc, "https://www.megashop.com/product/7")
	assert.Equal(t, "Gaming Mouse", res.Name)
}
