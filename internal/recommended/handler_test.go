package recommended

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
	"github.com/tieuluan/laptop-storefront/internal/strategy"
)

func newHandlerApp(t *testing.T) *fiber.App {
	t.Helper()
	ids := &fakeIDs{byKind: map[strategy.Kind][]int{strategy.KindTrending: {1, 2}}}
	products := &fakeProducts{products: map[int]catalog.Product{
		1: {ID: 1, Name: "ThinkPad X1", Price: 32000000},
		2: {ID: 2, Name: "MacBook Air", Price: 28000000, DiscountPercent: 10},
	}}
	s := newWidgetService(&fakeHistory{}, &fakeOrders{}, &fakeWishlist{}, ids, products)
	h := NewHandler(s)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetRecommendationsAnonymous(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations?limit=8", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var w Widget
	if err := json.NewDecoder(res.Body).Decode(&w); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if w.Strategy != strategy.KindTrending {
		t.Fatalf("anonymous visitor without history must get trending, got %s", w.Strategy)
	}
	if len(w.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(w.Items))
	}
	if w.Items[1].FinalPrice != 25200000 {
		t.Fatalf("expected priced item, got %+v", w.Items[1])
	}
}

func TestGetRecommendationsIgnoresBadLimit(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations?limit=abc", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("bad limit falls back to the default, got status %d", res.StatusCode)
	}
}

func TestGetBuyAgainRequiresAuth(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("GET", "/api/v1/buy-again", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}
}
