package wishlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProductIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wishlist/7" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"product":{"id":3}},{"product":{"id":9}},{"product":{}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	ids := c.ProductIDs(context.Background(), 7)
	if len(ids) != 2 || !ids[3] || !ids[9] {
		t.Fatalf("expected {3,9}, got %v", ids)
	}
}

func TestProductIDsAnonymousSkipsNetwork(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second, zerolog.Nop())
	if ids := c.ProductIDs(context.Background(), 0); len(ids) != 0 {
		t.Fatalf("expected empty set for anonymous visitor, got %v", ids)
	}
}

func TestProductIDsDegradesToEmptyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	ids := c.ProductIDs(context.Background(), 7)
	if ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", ids)
	}
}
