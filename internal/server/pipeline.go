package server

import (
	"context"

	"github.com/pkg/errors"

	"priceghost/internal/client"
	"priceghost/internal/model"
)

// checkOutcome summarizes one product's trip through the price pipeline.
type checkOutcome struct {
	Changed bool
	Dropped bool
}

// errScrapeNoPrice marks a successful scrape that yielded no price. The
// sweep skips these without counting an error; interactive callers report
// them as failures.
var errScrapeNoPrice = errors.New("scrape returned no price")

// processScrapedPrice runs the full price pipeline for one product against
// a fresh extraction result: record the observation, tighten price bounds,
// touch last_checked, and emit alerts (plus mail) on a strict price drop.
// The caller's in-memory product is mutated to the post-check state.
func (s Server) processScrapedPrice(ctx context.Context, p *model.Product, res client.ExtractionResult) (checkOutcome, error) {
	var out checkOutcome
	if !res.Success {
		return out, errors.Errorf("scrape failed for Product with ID: %s, err: %s", p.ID.Hex(), res.Error)
	}
	if res.Price == nil {
		return out, errors.Wrapf(errScrapeNoPrice, "Product ID: %s", p.ID.Hex())
	}
	newPrice := *res.Price

	if err := s.DB.PriceObservationInsert(ctx, model.PriceObservation{
		ProductID: p.ID,
		Price:     newPrice,
		Currency:  p.Currency,
	}); err != nil {
		return out, err
	}

	var oldPrice *float64
	if p.CurrentPrice != nil {
		old := *p.CurrentPrice
		oldPrice = &old
	}

	out.Changed = p.ApplyPrice(newPrice)
	if err := s.DB.ProductPricesUpdate(ctx, *p); err != nil {
		return out, err
	}

	if out.Changed && oldPrice != nil && newPrice < *oldPrice {
		alerts := model.AlertsForChange(*p, *oldPrice, newPrice)
		if err := s.DB.AlertsInsert(ctx, alerts); err != nil {
			return out, err
		}
		out.Dropped = true

		if u, err := s.DB.UserFindByID(ctx, p.UserID.Hex()); err != nil {
			s.Logger.Errorf("processScrapedPrice: Error finding User for price drop email, err: %v", err)
		} else {
			s.sendPriceDropEmail(*p, u.Email, *oldPrice, newPrice)
		}
	}
	return out, nil
}
