package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"priceghost/internal/misc"
)

// A full sweep must finish inside this budget so overlapping runs cannot
// pile up.
const sweepTimeout = 5 * time.Minute

type SweepStats struct {
	Checked    int `json:"checked"`
	Updated    int `json:"updated"`
	PriceDrops int `json:"price_drops"`
	Errors     int `json:"errors"`
}

// CheckPricesInInterval runs the price-check sweep on every tick until the
// context is cancelled.
func (s Server) CheckPricesInInterval(ctx context.Context, ticker *time.Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
			if _, err := s.RunSweep(sweepCtx); err != nil {
				s.Logger.Errorf("CheckPricesInInterval: Sweep failed, err: %v", err)
			}
			cancel()
		}
	}
}

// RunSweep re-scrapes every active product in batches, recording
// observations and emitting alerts on price drops. A single product's
// failure only bumps the error counter, never aborts the sweep.
func (s Server) RunSweep(ctx context.Context) (SweepStats, error) {
	var stats SweepStats
	s.Logger.Info("RunSweep: Starting price-check sweep")

	ps, err := s.DB.ProductsFindActive(ctx)
	if err != nil {
		s.Logger.Errorf("RunSweep: Error getting active Products from DB, err: %v", err)
		return stats, err
	}
	if len(ps) == 0 {
		s.Logger.Info("RunSweep: No active Products to check")
		return stats, nil
	}
	s.Logger.Infof("RunSweep: Checking %d active Product(s)", len(ps))

	batchSize := s.SweepBatchSize
	if batchSize < 1 {
		batchSize = 10
	}

	var mu sync.Mutex
	for start := 0; start < len(ps); start += batchSize {
		if ctx.Err() != nil {
			s.Logger.Warnf("RunSweep: Sweep cancelled after %d of %d Product(s), err: %v",
				stats.Checked, len(ps), ctx.Err())
			break
		}

		batch := ps[start:misc.Min(start+batchSize, len(ps))]
		var wg sync.WaitGroup
		for i := range batch {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				p := &batch[idx]

				res := s.Client.ScrapeProduct(ctx, p.URL, false)
				out, err := s.processScrapedPrice(ctx, p, res)

				mu.Lock()
				defer mu.Unlock()
				stats.Checked++
				if errors.Is(err, errScrapeNoPrice) {
					s.Logger.Debugf("RunSweep: No price found for Product: %s, ID: %s",
						misc.StringLimit(p.Name, 45), p.ID.Hex())
					return
				}
				if err != nil {
					stats.Errors++
					s.Logger.Warnf("RunSweep: Error checking Product: %s, ID: %s, err: %v",
						misc.StringLimit(p.Name, 45), p.ID.Hex(), err)
					return
				}
				if out.Changed {
					stats.Updated++
				}
				if out.Dropped {
					stats.PriceDrops++
				}
			}(i)
		}
		wg.Wait()
	}

	s.Logger.Infof("RunSweep: Sweep done, checked: %d, updated: %d, price drops: %d, errors: %d",
		stats.Checked, stats.Updated, stats.PriceDrops, stats.Errors)
	return stats, nil
}

func (s Server) cronCheckPrices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), sweepTimeout)
		defer cancel()

		stats, err := s.RunSweep(ctx)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, stats, http.StatusOK)
	}
}
