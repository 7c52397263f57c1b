package history

// Log is an ordered list of product ids, most-recent-first, capacity-bounded.
// Re-adding an id that is already present moves it to the front instead of
// duplicating it; once the capacity is exceeded the oldest entry is evicted.
// The same structure backs both the anonymous tracking log (capacity 15) and
// the smaller recently-viewed cache (capacity 5).
type Log struct {
	capacity int
	ids      []int
}

// NewLog creates an empty log with the given capacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{capacity: capacity, ids: make([]int, 0, capacity)}
}

// LogFromIDs restores a log from a previously persisted id list, trimming it
// to the capacity if the stored list is longer.
func LogFromIDs(capacity int, ids []int) *Log {
	l := NewLog(capacity)
	for i := len(ids) - 1; i >= 0; i-- {
		l.Add(ids[i])
	}
	return l
}

// Add records a view of the given product. Existing entries move to the
// front; the oldest entry is evicted when the log is over capacity.
func (l *Log) Add(productID int) {
	for i, id := range l.ids {
		if id == productID {
			copy(l.ids[1:i+1], l.ids[:i])
			l.ids[0] = productID
			return
		}
	}
	l.ids = append(l.ids, 0)
	copy(l.ids[1:], l.ids)
	l.ids[0] = productID
	if len(l.ids) > l.capacity {
		l.ids = l.ids[:l.capacity]
	}
}

// IDs returns a copy of the logged ids, most-recent-first.
func (l *Log) IDs() []int {
	out := make([]int, len(l.ids))
	copy(out, l.ids)
	return out
}

// Len returns the number of entries currently in the log.
func (l *Log) Len() int { return len(l.ids) }
