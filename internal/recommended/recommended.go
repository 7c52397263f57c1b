package recommended

import (
	"github.com/tieuluan/laptop-storefront/internal/catalog"
	"github.com/tieuluan/laptop-storefront/internal/strategy"
)

// Item is one product of a recommendation surface, enriched with its
// resolved display price and the visitor's wishlist marker.
type Item struct {
	catalog.Product
	FinalPrice        int64   `json:"finalPrice"`
	DiscountPercent   float64 `json:"discountPercent"`
	IsFlashSaleActive bool    `json:"isFlashSaleActive"`
	IsFavorite        bool    `json:"isFavorite"`
}

// Widget is the full payload of a recommendation surface. An empty Items
// list means the surface renders nothing; there is no error shape.
type Widget struct {
	Title    string        `json:"title"`
	Icon     string        `json:"icon"`
	Strategy strategy.Kind `json:"strategy"`
	Items    []Item        `json:"items"`
}
