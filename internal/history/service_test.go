package history

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

type fakeTracker struct {
	trackErr error
	syncErr  error
	viewErr  error

	tracked  [][2]int // userID, productID
	synced   [][]int
	serverIDs []int
}

func (f *fakeTracker) TrackView(_ context.Context, userID, productID int) error {
	f.tracked = append(f.tracked, [2]int{userID, productID})
	return f.trackErr
}

func (f *fakeTracker) SyncHistory(_ context.Context, _ int, viewedIDs []int) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.synced = append(f.synced, viewedIDs)
	return nil
}

func (f *fakeTracker) ViewedIDs(_ context.Context, _ int) ([]int, error) {
	if f.viewErr != nil {
		return nil, f.viewErr
	}
	return f.serverIDs, nil
}

func newTestService(tracker *fakeTracker) (*Service, *InMemoryStore) {
	store := NewInMemoryStore()
	return NewService(store, tracker, zerolog.Nop()), store
}

func TestRecordViewAnonymousCapAndDedup(t *testing.T) {
	s, _ := newTestService(&fakeTracker{})
	ctx := context.Background()

	for id := 1; id <= 20; id++ {
		s.RecordView(ctx, "sess", 0, id)
	}
	ids := s.ListViewedIDs(ctx, "sess", 0)
	if len(ids) != 15 {
		t.Fatalf("expected 15 tracked ids, got %d", len(ids))
	}
	if ids[0] != 20 || ids[14] != 6 {
		t.Fatalf("expected most-recent-first [20..6], got %v", ids)
	}

	before := len(ids)
	s.RecordView(ctx, "sess", 0, 10)
	ids = s.ListViewedIDs(ctx, "sess", 0)
	if len(ids) != before {
		t.Fatalf("re-view changed log length: %d -> %d", before, len(ids))
	}
	if ids[0] != 10 {
		t.Fatalf("re-viewed id must move to front, got %v", ids)
	}
}

func TestRecordViewMaintainsRecentCache(t *testing.T) {
	s, _ := newTestService(&fakeTracker{})
	ctx := context.Background()

	for id := 1; id <= 8; id++ {
		s.RecordView(ctx, "sess", 0, id)
	}
	want := []int{8, 7, 6, 5, 4}
	if got := s.RecentlyViewed("sess"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected recent cache %v, got %v", want, got)
	}
}

func TestRecordViewAuthenticatedIsForwardedAndFailureSwallowed(t *testing.T) {
	tracker := &fakeTracker{trackErr: errors.New("boom")}
	s, _ := newTestService(tracker)
	ctx := context.Background()

	s.RecordView(ctx, "sess", 7, 42)
	if len(tracker.tracked) != 1 || tracker.tracked[0] != [2]int{7, 42} {
		t.Fatalf("expected forwarded view, got %v", tracker.tracked)
	}
	// the failed remote call must not fall back to the local log
	if ids := s.ListViewedIDs(ctx, "sess", 0); len(ids) != 0 {
		t.Fatalf("authenticated view leaked into anonymous log: %v", ids)
	}
}

func TestListViewedIDsAuthenticatedDegradesToEmpty(t *testing.T) {
	s, _ := newTestService(&fakeTracker{viewErr: errors.New("down")})
	ids := s.ListViewedIDs(context.Background(), "sess", 7)
	if ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", ids)
	}
}

func TestListViewedIDsAuthenticatedReadsServer(t *testing.T) {
	s, _ := newTestService(&fakeTracker{serverIDs: []int{3, 1, 2}})
	ids := s.ListViewedIDs(context.Background(), "sess", 7)
	if !reflect.DeepEqual(ids, []int{3, 1, 2}) {
		t.Fatalf("expected server ids, got %v", ids)
	}
}

func TestSyncOnLoginClearsOnlyOnSuccess(t *testing.T) {
	tracker := &fakeTracker{}
	s, _ := newTestService(tracker)
	ctx := context.Background()

	s.RecordView(ctx, "sess", 0, 1)
	s.RecordView(ctx, "sess", 0, 2)

	s.SyncOnLogin(ctx, "sess", 9)
	if len(tracker.synced) != 1 || !reflect.DeepEqual(tracker.synced[0], []int{2, 1}) {
		t.Fatalf("expected synced ids [2 1], got %v", tracker.synced)
	}
	if ids := s.ListViewedIDs(ctx, "sess", 0); len(ids) != 0 {
		t.Fatalf("local log must be cleared after a confirmed sync, got %v", ids)
	}
}

func TestSyncOnLoginKeepsLogOnFailure(t *testing.T) {
	tracker := &fakeTracker{syncErr: errors.New("merge failed")}
	s, _ := newTestService(tracker)
	ctx := context.Background()

	s.RecordView(ctx, "sess", 0, 1)
	s.RecordView(ctx, "sess", 0, 2)
	before := s.ListViewedIDs(ctx, "sess", 0)

	s.SyncOnLogin(ctx, "sess", 9)
	after := s.ListViewedIDs(ctx, "sess", 0)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("local log changed on failed sync: %v -> %v", before, after)
	}
}

func TestSyncOnLoginSkipsEmptyLog(t *testing.T) {
	tracker := &fakeTracker{}
	s, _ := newTestService(tracker)
	s.SyncOnLogin(context.Background(), "sess", 9)
	if len(tracker.synced) != 0 {
		t.Fatalf("empty log must not hit the merge endpoint")
	}
}

func TestCorruptedStoredLogStartsOver(t *testing.T) {
	s, store := newTestService(&fakeTracker{})
	ctx := context.Background()
	if err := store.Set("viewed:sess", []byte("not-json")); err != nil {
		t.Fatal(err)
	}
	s.RecordView(ctx, "sess", 0, 5)
	if ids := s.ListViewedIDs(ctx, "sess", 0); !reflect.DeepEqual(ids, []int{5}) {
		t.Fatalf("expected fresh log [5], got %v", ids)
	}
}
