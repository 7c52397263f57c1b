package order

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
)

// Lister is the order query consumed by the recommendation surface.
type Lister interface {
	ListByUser(ctx context.Context, userID int) ([]Order, error)
}

// Service answers the order-derived questions the recommendation flow needs:
// the delivered-order gate and the buy-again dataset. Like every other
// recommendation input it degrades to "nothing" when the backend is down.
type Service struct {
	orders Lister
	log    zerolog.Logger
}

func NewService(orders Lister, logger zerolog.Logger) *Service {
	return &Service{orders: orders, log: logger}
}

// HasDeliveredOrders reports whether the user has at least one order in the
// terminal delivered state. A failed lookup counts as no qualifying orders.
func (s *Service) HasDeliveredOrders(ctx context.Context, userID int) bool {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int("userID", userID).Msg("order lookup failed")
		return false
	}
	for _, o := range orders {
		if o.Delivered() {
			return true
		}
	}
	return false
}

// BuyAgainProducts flattens the user's delivered orders, newest first, into a
// deduplicated product list. The first occurrence of a product wins, so the
// most recently bought copy of each product is kept. A limit of zero means no
// limit. The result is already fully resolved and feeds the carousel as a
// preloaded dataset.
func (s *Service) BuyAgainProducts(ctx context.Context, userID, limit int) []catalog.Product {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int("userID", userID).Msg("buy-again order lookup failed")
		return []catalog.Product{}
	}

	delivered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Delivered() {
			delivered = append(delivered, o)
		}
	}
	sort.SliceStable(delivered, func(i, j int) bool {
		return delivered[i].OrderDate.After(delivered[j].OrderDate)
	})

	seen := make(map[int]bool)
	out := make([]catalog.Product, 0)
	for _, o := range delivered {
		for _, item := range o.Items {
			if seen[item.Product.ID] {
				continue
			}
			seen[item.Product.ID] = true
			out = append(out, item.Product)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}
