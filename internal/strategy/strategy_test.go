package strategy

import (
	"reflect"
	"testing"
)

func TestSelectPurchaseBasedWinsForDeliveredOrders(t *testing.T) {
	d := Select(Visitor{UserID: 7, HasDeliveredOrders: true, ViewedIDs: []int{1, 2}})
	if d.Kind != KindPurchaseBased {
		t.Fatalf("expected purchase-based, got %s", d.Kind)
	}
	if d.UserID != 7 {
		t.Fatalf("descriptor must carry the user id, got %d", d.UserID)
	}
}

func TestSelectCollaborativeWithoutDeliveredOrders(t *testing.T) {
	d := Select(Visitor{UserID: 7})
	if d.Kind != KindCollaborative {
		t.Fatalf("expected user-collaborative, got %s", d.Kind)
	}
	if d.Kind == KindPurchaseBased {
		t.Fatalf("visitor without delivered orders must never get purchase-based")
	}
}

func TestSelectHistoryBasedForAnonymousWithHistory(t *testing.T) {
	viewed := []int{5, 3, 1}
	d := Select(Visitor{ViewedIDs: viewed})
	if d.Kind != KindHistoryBased {
		t.Fatalf("expected history-based, got %s", d.Kind)
	}
	if !reflect.DeepEqual(d.ViewedIDs, viewed) {
		t.Fatalf("descriptor must carry the full id list, got %v", d.ViewedIDs)
	}

	// the descriptor must not alias the visitor's slice
	viewed[0] = 99
	if d.ViewedIDs[0] == 99 {
		t.Fatalf("descriptor aliases the visitor history slice")
	}
}

func TestSelectTrendingForNewVisitor(t *testing.T) {
	d := Select(Visitor{})
	if d.Kind != KindTrending {
		t.Fatalf("expected trending, got %s", d.Kind)
	}
	if d.UserID != 0 || len(d.ViewedIDs) != 0 {
		t.Fatalf("trending takes no personalization input: %+v", d)
	}
}

func TestDescriptorEqualByConfiguration(t *testing.T) {
	a := Select(Visitor{ViewedIDs: []int{1, 2, 3}})
	b := Select(Visitor{ViewedIDs: []int{1, 2, 3}})
	if !a.Equal(b) {
		t.Fatalf("identical configurations must compare equal")
	}

	c := Select(Visitor{ViewedIDs: []int{3, 2, 1}})
	if a.Equal(c) {
		t.Fatalf("differently ordered histories are different configurations")
	}

	d := Select(Visitor{UserID: 1})
	e := Select(Visitor{UserID: 2})
	if d.Equal(e) {
		t.Fatalf("different users are different configurations")
	}
}

func TestSelectCascadePrecedenceIsStable(t *testing.T) {
	// authenticated state dominates any anonymous history that may linger
	d := Select(Visitor{UserID: 4, ViewedIDs: []int{9, 8}})
	if d.Kind != KindCollaborative {
		t.Fatalf("authenticated visitor must not fall through to history-based, got %s", d.Kind)
	}
}
