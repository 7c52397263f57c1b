package catalog

import "github.com/tieuluan/laptop-storefront/internal/pricing"

// Product is the storefront product shape returned by the main backend's
// batch lookup. Pricing attributes feed the price resolution engine; the
// display price is never taken from this payload directly.
type Product struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	Brand           *string            `json:"brand,omitempty"`
	Price           int64              `json:"price"`
	DiscountPercent float64            `json:"discount"`
	FlashSale       *pricing.FlashSale `json:"flashSale,omitempty"`
	Thumbnail       *string            `json:"thumbnail,omitempty"`
	Rating          *float64           `json:"rating,omitempty"`
	InStock         bool               `json:"inStock"`
}

// PricingInputs maps the product's pricing attributes into the price engine.
func (p Product) PricingInputs() pricing.Inputs {
	return pricing.Inputs{
		BasePrice:               p.Price,
		StandingDiscountPercent: p.DiscountPercent,
		FlashSale:               p.FlashSale,
	}
}
