package model

import (
	"math"
	"sort"
	"time"
)

// Price moves smaller than this are noise (rounding, currency formatting)
// and are left out of the digest entirely.
const digestEpsilon = 0.01

type DigestEntry struct {
	Name           string
	URL            string
	ImageURL       string
	Currency       string
	CurrentPrice   float64
	WeekStartPrice float64
	PriceChange    float64
	PercentChange  float64
}

type Digest struct {
	TotalProducts  int
	TotalSavings   float64
	PriceDrops     []DigestEntry
	PriceIncreases []DigestEntry
	TopDeal        *DigestEntry
}

// BuildDigest compares each product's price at the start of the window with
// its current price. The window-start price is the earliest observation at
// or after windowStart, falling back to the product's original price when no
// observation landed in the window. Drops are sorted by magnitude, the
// largest becoming the top deal, and their magnitudes sum to TotalSavings.
func BuildDigest(products []Product, observations []PriceObservation, windowStart time.Time) Digest {
	d := Digest{TotalProducts: len(products)}
	for _, p := range products {
		if p.CurrentPrice == nil {
			continue
		}
		weekStart := p.OriginalPrice
		earliest := time.Time{}
		for _, o := range observations {
			if o.ProductID != p.ID {
				continue
			}
			ts := o.Timestamp.Time()
			if ts.Before(windowStart) {
				continue
			}
			if earliest.IsZero() || ts.Before(earliest) {
				earliest = ts
				weekStart = o.Price
			}
		}
		if weekStart == 0 {
			continue
		}

		change := *p.CurrentPrice - weekStart
		if math.Abs(change) < digestEpsilon {
			continue
		}
		entry := DigestEntry{
			Name:           p.Name,
			URL:            p.URL,
			ImageURL:       p.ImageURL,
			Currency:       p.Currency,
			CurrentPrice:   *p.CurrentPrice,
			WeekStartPrice: weekStart,
			PriceChange:    change,
			PercentChange:  change / weekStart * 100,
		}
		if change < 0 {
			d.PriceDrops = append(d.PriceDrops, entry)
			d.TotalSavings += -change
		} else {
			d.PriceIncreases = append(d.PriceIncreases, entry)
		}
	}

	sort.Slice(d.PriceDrops, func(i, j int) bool {
		return math.Abs(d.PriceDrops[i].PriceChange) > math.Abs(d.PriceDrops[j].PriceChange)
	})
	if len(d.PriceDrops) > 0 {
		d.TopDeal = &d.PriceDrops[0]
	}
	return d
}
