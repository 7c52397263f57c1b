package strategy

// Kind identifies a recommendation data source.
type Kind string

const (
	KindPurchaseBased Kind = "purchase-based"
	KindCollaborative Kind = "user-collaborative"
	KindHistoryBased  Kind = "history-based"
	KindTrending      Kind = "trending"
)

// Visitor is the state the cascade decides on. ViewedIDs is the anonymous
// session log; it is ignored for authenticated visitors, whose history lives
// server-side.
type Visitor struct {
	UserID             int
	HasDeliveredOrders bool
	ViewedIDs          []int
}

// Descriptor names the chosen data source together with everything needed to
// resolve ids from it. It is a plain value rather than a closure so two
// descriptors can be compared by configuration, which the carousel loader's
// stale-resolution guard depends on.
type Descriptor struct {
	Kind      Kind
	Label     string
	Icon      string
	UserID    int
	ViewedIDs []int
}

// Equal reports whether two descriptors denote the same configuration,
// including the order of the history id list.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Kind != other.Kind || d.UserID != other.UserID {
		return false
	}
	if len(d.ViewedIDs) != len(other.ViewedIDs) {
		return false
	}
	for i := range d.ViewedIDs {
		if d.ViewedIDs[i] != other.ViewedIDs[i] {
			return false
		}
	}
	return true
}

// Select picks the recommendation source for a visitor. The cascade is
// evaluated top-down and the first match wins:
//
//  1. authenticated with at least one delivered order -> purchase-based
//  2. authenticated                                   -> user-collaborative
//  3. anonymous with a non-empty view history         -> history-based
//  4. anonymous, nothing known                        -> trending
//
// Select performs no I/O; it only returns the descriptor. It is re-evaluated
// whenever the visitor state changes (login, first delivered order).
func Select(v Visitor) Descriptor {
	if v.UserID > 0 && v.HasDeliveredOrders {
		return Descriptor{
			Kind:   KindPurchaseBased,
			Label:  "Gợi ý dựa trên đơn hàng của bạn",
			Icon:   "recommend",
			UserID: v.UserID,
		}
	}

	if v.UserID > 0 {
		return Descriptor{
			Kind:   KindCollaborative,
			Label:  "Gợi ý sản phẩm",
			Icon:   "recommend",
			UserID: v.UserID,
		}
	}

	if len(v.ViewedIDs) > 0 {
		ids := make([]int, len(v.ViewedIDs))
		copy(ids, v.ViewedIDs)
		return Descriptor{
			Kind:      KindHistoryBased,
			Label:     "Có thể bạn sẽ thích",
			Icon:      "shopping-bag",
			ViewedIDs: ids,
		}
	}

	return Descriptor{
		Kind:  KindTrending,
		Label: "Xu hướng tìm kiếm",
		Icon:  "trending-up",
	}
}
