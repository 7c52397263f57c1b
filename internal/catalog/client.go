package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"
)

const cacheTTL = 30 * time.Second

// Client resolves product ids into full records through the main backend's
// batch endpoint. A short-lived cache sits in front so repeated carousel
// renders do not re-fetch identical ids.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *ttlcache.Cache[int, Product]
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	cache := ttlcache.New(
		ttlcache.WithTTL[int, Product](cacheTTL),
		ttlcache.WithDisableTouchOnHit[int, Product](),
	)
	go cache.Start()
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		log:     logger,
	}
}

// Close stops the cache janitor.
func (c *Client) Close() {
	c.cache.Stop()
}

// ByIDs returns the products for the given ids. The result order is not
// guaranteed; callers that care about order must realign against their input
// sequence. Ids unknown to the backend are simply absent from the result.
func (c *Client) ByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	out := make([]Product, 0, len(ids))
	missing := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item := c.cache.Get(id); item != nil {
			out = append(out, item.Value())
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.fetchByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range fetched {
		c.cache.Set(p.ID, p, ttlcache.DefaultTTL)
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) fetchByIDs(ctx context.Context, ids []int) ([]Product, error) {
	body, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal ids: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/by-ids", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("products by-ids: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("products by-ids: unexpected status %d", res.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
