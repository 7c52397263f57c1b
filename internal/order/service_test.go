package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
)

type fakeLister struct {
	orders []Order
	err    error
}

func (f *fakeLister) ListByUser(_ context.Context, _ int) ([]Order, error) {
	return f.orders, f.err
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestHasDeliveredOrders(t *testing.T) {
	s := NewService(&fakeLister{orders: []Order{
		{ID: 1, Status: "PENDING"},
		{ID: 2, Status: StatusDelivered},
	}}, zerolog.Nop())
	if !s.HasDeliveredOrders(context.Background(), 7) {
		t.Fatalf("expected delivered order to qualify")
	}

	s = NewService(&fakeLister{orders: []Order{{ID: 1, Status: "CANCELLED"}}}, zerolog.Nop())
	if s.HasDeliveredOrders(context.Background(), 7) {
		t.Fatalf("non-delivered statuses must not qualify")
	}
}

func TestHasDeliveredOrdersDegradesOnFailure(t *testing.T) {
	s := NewService(&fakeLister{err: errors.New("down")}, zerolog.Nop())
	if s.HasDeliveredOrders(context.Background(), 7) {
		t.Fatalf("failed lookup must count as no qualifying orders")
	}
}

func TestBuyAgainNewestFirstDeduplicated(t *testing.T) {
	older := Order{ID: 1, Status: StatusDelivered, OrderDate: day(1), Items: []Item{
		{Product: catalog.Product{ID: 10, Name: "old mouse"}},
		{Product: catalog.Product{ID: 20, Name: "keyboard"}},
	}}
	newer := Order{ID: 2, Status: StatusDelivered, OrderDate: day(5), Items: []Item{
		{Product: catalog.Product{ID: 10, Name: "new mouse"}},
		{Product: catalog.Product{ID: 30, Name: "laptop"}},
	}}
	pending := Order{ID: 3, Status: "PENDING", OrderDate: day(9), Items: []Item{
		{Product: catalog.Product{ID: 40}},
	}}

	s := NewService(&fakeLister{orders: []Order{older, pending, newer}}, zerolog.Nop())
	got := s.BuyAgainProducts(context.Background(), 7, 0)

	if len(got) != 3 {
		t.Fatalf("expected 3 unique products, got %d", len(got))
	}
	// newest delivered order first, first occurrence of a duplicate wins
	if got[0].ID != 10 || got[0].Name != "new mouse" {
		t.Fatalf("expected most recent copy of product 10 first, got %+v", got[0])
	}
	if got[1].ID != 30 || got[2].ID != 20 {
		t.Fatalf("unexpected order: %+v", got)
	}
	for _, p := range got {
		if p.ID == 40 {
			t.Fatalf("pending order leaked into buy-again")
		}
	}
}

func TestBuyAgainHonorsLimit(t *testing.T) {
	o := Order{ID: 1, Status: StatusDelivered, OrderDate: day(1), Items: []Item{
		{Product: catalog.Product{ID: 1}},
		{Product: catalog.Product{ID: 2}},
		{Product: catalog.Product{ID: 3}},
	}}
	s := NewService(&fakeLister{orders: []Order{o}}, zerolog.Nop())
	got := s.BuyAgainProducts(context.Background(), 7, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
}

func TestBuyAgainDegradesToEmpty(t *testing.T) {
	s := NewService(&fakeLister{err: errors.New("down")}, zerolog.Nop())
	got := s.BuyAgainProducts(context.Background(), 7, 0)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
