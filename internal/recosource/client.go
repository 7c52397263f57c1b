package recosource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/strategy"
)

// Client talks to the recommendation service. It covers both the id-producing
// recommendation endpoints and the view-tracking endpoints, which live on the
// same collaborator.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// BestSellerIDs returns the ids of the current best sellers.
func (c *Client) BestSellerIDs(ctx context.Context, limit int) ([]int, error) {
	return c.getIDs(ctx, fmt.Sprintf("/recommendations/best-sellers?limit=%d", limit))
}

// TrendingIDs returns the ids of the currently trending products.
func (c *Client) TrendingIDs(ctx context.Context, limit int) ([]int, error) {
	return c.getIDs(ctx, fmt.Sprintf("/recommendations/trending?limit=%d", limit))
}

// PurchasedBasedIDs recommends from the user's purchase history.
func (c *Client) PurchasedBasedIDs(ctx context.Context, userID, limit int) ([]int, error) {
	return c.getIDs(ctx, fmt.Sprintf("/recommendations/purchased-based/%d?limit=%d", userID, limit))
}

// UserCollaborativeIDs recommends from visitors with similar behaviour.
func (c *Client) UserCollaborativeIDs(ctx context.Context, userID, limit int) ([]int, error) {
	return c.getIDs(ctx, fmt.Sprintf("/recommendations/user-collaborative/%d?limit=%d", userID, limit))
}

// HistoryBasedIDs recommends from an anonymous visitor's viewed-id list.
func (c *Client) HistoryBasedIDs(ctx context.Context, viewedIDs []int, limit int) ([]int, error) {
	payload := struct {
		ViewedIDs []int `json:"viewed_ids"`
	}{ViewedIDs: viewedIDs}

	res, err := c.postJSON(ctx, fmt.Sprintf("/recommendations/by-history?limit=%d", limit), payload)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return decodeIDs(res)
}

// ResolveIDs resolves a strategy descriptor to its id list.
func (c *Client) ResolveIDs(ctx context.Context, d strategy.Descriptor, limit int) ([]int, error) {
	switch d.Kind {
	case strategy.KindPurchaseBased:
		return c.PurchasedBasedIDs(ctx, d.UserID, limit)
	case strategy.KindCollaborative:
		return c.UserCollaborativeIDs(ctx, d.UserID, limit)
	case strategy.KindHistoryBased:
		return c.HistoryBasedIDs(ctx, d.ViewedIDs, limit)
	case strategy.KindTrending:
		return c.TrendingIDs(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown strategy kind %q", d.Kind)
	}
}

// CollaborativeWithFallback pads an undersized collaborative result from
// trending, then best sellers, deduplicated and capped at limit. The selector
// cascade does not call this; it exists for presentation layers that opt into
// the fallback chain.
func (c *Client) CollaborativeWithFallback(ctx context.Context, userID, limit int) ([]int, error) {
	ids, err := c.UserCollaborativeIDs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) >= limit {
		return ids[:limit], nil
	}

	for _, next := range []func(context.Context, int) ([]int, error){c.TrendingIDs, c.BestSellerIDs} {
		if len(ids) >= limit {
			break
		}
		more, err := next(ctx, limit)
		if err != nil {
			// fallback sources are best-effort, keep what we have
			c.log.Warn().Err(err).Int("userID", userID).Msg("collaborative fallback source failed")
			continue
		}
		ids = mergeUnique(ids, more, limit)
	}
	return ids, nil
}

// TrackView forwards a single authenticated view event.
func (c *Client) TrackView(ctx context.Context, userID, productID int) error {
	payload := struct {
		UserID    int `json:"user_id"`
		ProductID int `json:"product_id"`
	}{UserID: userID, ProductID: productID}

	res, err := c.postJSON(ctx, "/tracking/view", payload)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return nil
}

// SyncHistory merges an anonymous view log into the user's server-side
// history. A nil error means the merge was confirmed.
func (c *Client) SyncHistory(ctx context.Context, userID int, viewedIDs []int) error {
	payload := struct {
		UserID    int   `json:"user_id"`
		ViewedIDs []int `json:"viewed_ids"`
	}{UserID: userID, ViewedIDs: viewedIDs}

	res, err := c.postJSON(ctx, "/tracking/sync", payload)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return nil
}

// ViewedIDs fetches the user's server-side view history.
func (c *Client) ViewedIDs(ctx context.Context, userID int) ([]int, error) {
	return c.getIDs(ctx, fmt.Sprintf("/tracking/history/%d", userID))
}

func (c *Client) getIDs(ctx context.Context, path string) ([]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer res.Body.Close()
	return decodeIDs(res)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
		return nil, fmt.Errorf("POST %s: unexpected status %d", path, res.StatusCode)
	}
	return res, nil
}

func decodeIDs(res *http.Response) ([]int, error) {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	var ids []int
	if err := json.NewDecoder(res.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decode ids: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func mergeUnique(base, extra []int, limit int) []int {
	seen := make(map[int]bool, len(base))
	for _, id := range base {
		seen[id] = true
	}
	for _, id := range extra {
		if len(base) >= limit {
			break
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		base = append(base, id)
	}
	return base
}
