package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// entry mirrors the backend wishlist row; only the product id matters here.
type entry struct {
	Product struct {
		ID int `json:"id"`
	} `json:"product"`
}

// Client reads a user's wishlist from the main backend. The carousel uses it
// to overlay a favorite marker on resolved datasets; the overlay is purely
// cosmetic, so a failed fetch yields an empty set rather than an error.
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

// ProductIDs returns the set of product ids on the user's wishlist. Always
// non-nil; empty for anonymous visitors and on any failure.
func (c *Client) ProductIDs(ctx context.Context, userID int) map[int]bool {
	out := make(map[int]bool)
	if userID <= 0 {
		return out
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/wishlist/%d", c.baseURL, userID), nil)
	if err != nil {
		return out
	}
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Int("userID", userID).Msg("wishlist fetch failed")
		return out
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		c.log.Warn().Int("status", res.StatusCode).Int("userID", userID).Msg("wishlist fetch failed")
		return out
	}

	var entries []entry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		c.log.Warn().Err(err).Int("userID", userID).Msg("wishlist decode failed")
		return out
	}
	for _, e := range entries {
		if e.Product.ID > 0 {
			out[e.Product.ID] = true
		}
	}
	return out
}
