package pricing

import (
	"math"
	"time"
)

// FlashSale is a time-bounded discount override. While the window contains the
// current time it takes precedence over the product's standing discount.
type FlashSale struct {
	StartsAt        time.Time `json:"startDate"`
	EndsAt          time.Time `json:"endDate"`
	DiscountPercent float64   `json:"discountPercent"`
}

// Active reports whether the window contains now (start inclusive, end exclusive).
func (f FlashSale) Active(now time.Time) bool {
	return !f.StartsAt.After(now) && f.EndsAt.After(now)
}

// Inputs are the pricing attributes of a single product.
type Inputs struct {
	BasePrice               int64
	StandingDiscountPercent float64
	FlashSale               *FlashSale
}

// Quote is the authoritative display price for one product at one instant.
// It is derived on every render and never persisted.
type Quote struct {
	BasePrice         int64   `json:"basePrice"`
	FinalPrice        int64   `json:"finalPrice"`
	DiscountPercent   float64 `json:"discountPercent"`
	IsFlashSaleActive bool    `json:"isFlashSaleActive"`
}

// Resolve computes the display price for the given inputs at the given time.
// Precedence: an active flash-sale window wins; otherwise a standing discount
// greater than zero applies; otherwise the base price is returned unchanged.
// An expired or not-yet-started window falls through to the standing discount
// in the same call. Negative discount percentages are treated as zero.
func Resolve(in Inputs, now time.Time) Quote {
	if in.FlashSale != nil && in.FlashSale.Active(now) {
		percent := in.FlashSale.DiscountPercent
		if percent < 0 {
			percent = 0
		}
		return Quote{
			BasePrice:         in.BasePrice,
			FinalPrice:        discounted(in.BasePrice, percent),
			DiscountPercent:   percent,
			IsFlashSaleActive: true,
		}
	}

	if in.StandingDiscountPercent > 0 {
		return Quote{
			BasePrice:       in.BasePrice,
			FinalPrice:      discounted(in.BasePrice, in.StandingDiscountPercent),
			DiscountPercent: in.StandingDiscountPercent,
		}
	}

	return Quote{BasePrice: in.BasePrice, FinalPrice: in.BasePrice}
}

// discounted rounds half-up to the nearest integer currency unit.
func discounted(base int64, percent float64) int64 {
	return int64(math.Floor(float64(base)*(1-percent/100) + 0.5))
}
