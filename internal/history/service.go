package history

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

const (
	// TrackingLogCapacity bounds the anonymous view-tracking log.
	TrackingLogCapacity = 15
	// RecentCacheCapacity bounds the secondary recently-viewed cache.
	RecentCacheCapacity = 5

	trackedKeyPrefix = "viewed:"
	recentKeyPrefix  = "recent:"
)

// TrackingClient is the backend tracking endpoint consumed for authenticated
// visitors. Implementations must not be relied on for availability: every
// caller degrades to local state or an empty result on failure.
type TrackingClient interface {
	TrackView(ctx context.Context, userID, productID int) error
	SyncHistory(ctx context.Context, userID int, viewedIDs []int) error
	ViewedIDs(ctx context.Context, userID int) ([]int, error)
}

// Service owns the view-history logs. It is the only writer of the anonymous
// session logs; selectors and loaders only read through it.
type Service struct {
	store   Store
	tracker TrackingClient
	log     zerolog.Logger
}

func NewService(store Store, tracker TrackingClient, logger zerolog.Logger) *Service {
	return &Service{store: store, tracker: tracker, log: logger}
}

// RecordView registers a product-detail visit. Authenticated views are
// forwarded to the backend tracking endpoint and any transport failure is
// swallowed; tracking must never fail the page render. Anonymous views are
// appended to the session's local log and persisted synchronously.
func (s *Service) RecordView(ctx context.Context, sessionID string, userID, productID int) {
	if productID <= 0 {
		return
	}

	if userID > 0 {
		if err := s.tracker.TrackView(ctx, userID, productID); err != nil {
			s.log.Warn().Err(err).Int("userID", userID).Int("productID", productID).Msg("view tracking failed")
		}
		return
	}

	tracked := s.loadLog(trackedKeyPrefix+sessionID, TrackingLogCapacity)
	tracked.Add(productID)
	s.saveLog(trackedKeyPrefix+sessionID, tracked)

	recent := s.loadLog(recentKeyPrefix+sessionID, RecentCacheCapacity)
	recent.Add(productID)
	s.saveLog(recentKeyPrefix+sessionID, recent)
}

// ListViewedIDs returns the visitor's view history, most-recent-first.
// Authenticated visitors read the server-side log; any failure yields an
// empty list. Anonymous visitors read the local session log.
func (s *Service) ListViewedIDs(ctx context.Context, sessionID string, userID int) []int {
	if userID > 0 {
		ids, err := s.tracker.ViewedIDs(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Int("userID", userID).Msg("fetch view history failed")
			return []int{}
		}
		if ids == nil {
			ids = []int{}
		}
		return ids
	}
	return s.loadLog(trackedKeyPrefix+sessionID, TrackingLogCapacity).IDs()
}

// RecentlyViewed returns the small local recently-viewed cache for a session.
func (s *Service) RecentlyViewed(sessionID string) []int {
	return s.loadLog(recentKeyPrefix+sessionID, RecentCacheCapacity).IDs()
}

// SyncOnLogin merges the anonymous session log into the user's server-side
// history. The local log is cleared only after the merge endpoint confirms
// success; on failure it is retained so a later login can retry. Failures are
// silent to the user.
func (s *Service) SyncOnLogin(ctx context.Context, sessionID string, userID int) {
	if userID <= 0 {
		return
	}
	local := s.loadLog(trackedKeyPrefix+sessionID, TrackingLogCapacity)
	if local.Len() == 0 {
		return
	}
	if err := s.tracker.SyncHistory(ctx, userID, local.IDs()); err != nil {
		s.log.Warn().Err(err).Int("userID", userID).Msg("history sync failed, keeping local log")
		return
	}
	if err := s.store.Delete(trackedKeyPrefix + sessionID); err != nil {
		s.log.Warn().Err(err).Str("sessionID", sessionID).Msg("could not clear synced local log")
	}
}

func (s *Service) loadLog(key string, capacity int) *Log {
	raw, err := s.store.Get(key)
	if err != nil {
		if err != ErrKeyNotFound {
			s.log.Warn().Err(err).Str("key", key).Msg("history store read failed")
		}
		return NewLog(capacity)
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		// corrupted entry, start over
		return NewLog(capacity)
	}
	return LogFromIDs(capacity, ids)
}

func (s *Service) saveLog(key string, l *Log) {
	raw, err := json.Marshal(l.IDs())
	if err != nil {
		return
	}
	if err := s.store.Set(key, raw); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("history store write failed")
	}
}
