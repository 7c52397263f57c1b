package carousel

import (
	"sync"
	"time"
)

// Autoplay is an explicit, cancellable scheduled-task handle. The carousel
// creates and destroys it alongside its dataset so a timer never fires
// against a dataset that no longer exists.
type Autoplay struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewAutoplay() *Autoplay {
	return &Autoplay{}
}

// Reset cancels any running schedule and starts a new one invoking tick at
// every interval.
func (a *Autoplay) Reset(interval time.Duration, tick func()) {
	a.Stop()

	a.mu.Lock()
	stop := make(chan struct{})
	a.stop = stop
	a.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tick()
			case <-stop:
				return
			}
		}
	}()
}

// Stop cancels the schedule. Safe to call repeatedly and when nothing runs.
func (a *Autoplay) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}

// Running reports whether a schedule is currently active.
func (a *Autoplay) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}
