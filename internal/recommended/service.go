package recommended

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/carousel"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
	"github.com/tieuluan/laptop-storefront/internal/pricing"
	"github.com/tieuluan/laptop-storefront/internal/strategy"
)

// HistoryReader exposes the anonymous view log to the strategy cascade.
type HistoryReader interface {
	ListViewedIDs(ctx context.Context, sessionID string, userID int) []int
}

// OrderReader answers the delivered-order gate and builds the buy-again
// dataset.
type OrderReader interface {
	HasDeliveredOrders(ctx context.Context, userID int) bool
	BuyAgainProducts(ctx context.Context, userID, limit int) []catalog.Product
}

// WishlistReader returns the visitor's wishlist product ids; empty on any
// failure.
type WishlistReader interface {
	ProductIDs(ctx context.Context, userID int) map[int]bool
}

// Service assembles recommendation widgets: it picks a strategy for the
// visitor, resolves the dataset and decorates every item with its price
// quote and wishlist marker.
type Service struct {
	history  HistoryReader
	orders   OrderReader
	wishlist WishlistReader
	ids      carousel.IDResolver
	products carousel.ProductResolver
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(history HistoryReader, orders OrderReader, wishlist WishlistReader, ids carousel.IDResolver, products carousel.ProductResolver, logger zerolog.Logger) *Service {
	return &Service{
		history:  history,
		orders:   orders,
		wishlist: wishlist,
		ids:      ids,
		products: products,
		now:      time.Now,
		log:      logger,
	}
}

// Widget builds the smart-recommendation surface for a visitor. Every
// downstream failure degrades to an empty item list.
func (s *Service) Widget(ctx context.Context, sessionID string, userID, limit int) Widget {
	visitor := strategy.Visitor{UserID: userID}
	if userID > 0 {
		visitor.HasDeliveredOrders = s.orders.HasDeliveredOrders(ctx, userID)
	} else {
		visitor.ViewedIDs = s.history.ListViewedIDs(ctx, sessionID, 0)
	}

	descriptor := strategy.Select(visitor)
	dataset := carousel.ResolveDataset(ctx, carousel.Config{Strategy: descriptor, Limit: limit}, s.ids, s.products, s.log)

	return Widget{
		Title:    descriptor.Label,
		Icon:     descriptor.Icon,
		Strategy: descriptor.Kind,
		Items:    s.decorate(ctx, userID, dataset),
	}
}

// BuyAgain builds the already-resolved buy-again surface from the user's
// delivered orders.
func (s *Service) BuyAgain(ctx context.Context, userID, limit int) []Item {
	preloaded := s.orders.BuyAgainProducts(ctx, userID, limit)
	dataset := carousel.ResolveDataset(ctx, carousel.Config{Preloaded: preloaded}, s.ids, s.products, s.log)
	return s.decorate(ctx, userID, dataset)
}

func (s *Service) decorate(ctx context.Context, userID int, dataset []catalog.Product) []Item {
	favorites := s.wishlist.ProductIDs(ctx, userID)
	now := s.now()

	items := make([]Item, 0, len(dataset))
	for _, p := range dataset {
		quote := pricing.Resolve(p.PricingInputs(), now)
		items = append(items, Item{
			Product:           p,
			FinalPrice:        quote.FinalPrice,
			DiscountPercent:   quote.DiscountPercent,
			IsFlashSaleActive: quote.IsFlashSaleActive,
			IsFavorite:        favorites[p.ID],
		})
	}
	return items
}
