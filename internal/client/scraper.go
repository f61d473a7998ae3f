package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-redis/redis/v9"
)

const scrapeCacheExpiry = 1 * time.Hour

// ScrapeProduct classifies the URL, fetches the page, and dispatches to the
// matching extractor. It never returns an error and never panics: every
// failure mode is folded into an ExtractionResult with Success false.
func (c Client) ScrapeProduct(ctx context.Context, url string, useCache bool) (res ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Errorf("ScrapeProduct: Recovered from panic scraping %s: %v", url, r)
			res = extractionFailure(fmt.Sprintf("failed to scrape product: %v", r))
		}
	}()

	cacheKey := "SCR-" + url
	if useCache && c.Redis != nil {
		cached, err := c.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Logger.Debugf("ScrapeProduct: Cache found, key: %s", cacheKey)
			var cachedRes ExtractionResult
			if err = json.Unmarshal([]byte(cached), &cachedRes); err == nil {
				return cachedRes
			}
			c.Logger.Errorf("ScrapeProduct: Error unmarshalling cache, key: %s, err: %v", cacheKey, err)
		} else if err != redis.Nil {
			c.Logger.Errorf("ScrapeProduct: Error getting Redis cache with key: %s, err: %v", cacheKey, err)
		}
	}

	html, err := c.fetchPage(ctx, url)
	if err != nil {
		c.Logger.Warnf("ScrapeProduct: Fetch failed for %s, err: %v", url, err)
		return extractionFailure(err.Error())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		c.Logger.Errorf("ScrapeProduct: Error parsing HTML from %s, err: %v", url, err)
		return extractionFailure(fmt.Sprintf("failed to parse page: %v", err))
	}

	switch DetectRetailer(url) {
	case RetailerAmazon:
		res = extractAmazon(doc)
	case RetailerWalmart:
		res = extractWalmart(doc)
	case RetailerBestBuy:
		res = extractBestBuy(doc)
	case RetailerTarget:
		res = extractTarget(doc)
	case RetailerEbay:
		res = extractEbay(doc)
	case RetailerAliexpress:
		res = extractAliexpress(doc, html)
	case RetailerTemu:
		res = extractTemu(doc)
	default:
		res = extractGeneric(doc, url)
	}

	if c.Redis != nil {
		if resJSON, err := json.Marshal(res); err != nil {
			c.Logger.Errorf("ScrapeProduct: Error marshalling result to cache, key: %s, err: %v", cacheKey, err)
		} else if err = c.Redis.Set(ctx, cacheKey, resJSON, scrapeCacheExpiry).Err(); err != nil {
			c.Logger.Errorf("ScrapeProduct: Error caching result, key: %s, err: %v", cacheKey, err)
		}
	}
	return res
}
