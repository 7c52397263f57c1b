package order

import (
	"time"

	"github.com/tieuluan/laptop-storefront/internal/catalog"
)

// StatusDelivered is the terminal status that qualifies an order for the
// purchase-based recommendation gate and the buy-again dataset.
const StatusDelivered = "DELIVERED"

// Item is one line of an order, carrying the full product record.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Order is a purchase as reported by the main backend. The order lifecycle is
// owned there; this side only reads statuses.
type Order struct {
	ID        int       `json:"orderID"`
	Status    string    `json:"orderStatus"`
	OrderDate time.Time `json:"orderDate"`
	Items     []Item    `json:"orderItemList"`
}

// Delivered reports whether the order reached its terminal delivered state.
func (o Order) Delivered() bool {
	return o.Status == StatusDelivered
}
