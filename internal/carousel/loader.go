package carousel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tieuluan/laptop-storefront/internal/catalog"
	"github.com/tieuluan/laptop-storefront/internal/strategy"
)

// IDResolver resolves a strategy descriptor into an ordered id list.
type IDResolver interface {
	ResolveIDs(ctx context.Context, d strategy.Descriptor, limit int) ([]int, error)
}

// ProductResolver batch-resolves product ids; response order is not
// guaranteed.
type ProductResolver interface {
	ByIDs(ctx context.Context, ids []int) ([]catalog.Product, error)
}

// Config identifies one resolution configuration. Two configs that compare
// Equal resolve the same dataset; the loader uses that identity, not arrival
// time, to decide whether a finished resolution may still be applied.
type Config struct {
	Strategy strategy.Descriptor
	Limit    int
	// Preloaded short-circuits resolution when non-empty (already-resolved
	// data such as buy-again).
	Preloaded []catalog.Product
}

func (c Config) Equal(other Config) bool {
	if c.Limit != other.Limit || !c.Strategy.Equal(other.Strategy) {
		return false
	}
	if len(c.Preloaded) != len(other.Preloaded) {
		return false
	}
	for i := range c.Preloaded {
		if c.Preloaded[i].ID != other.Preloaded[i].ID {
			return false
		}
	}
	return true
}

// ResolveDataset turns a configuration into an ordered, deduplicated product
// dataset. A non-empty preloaded list is used as-is without any network call.
// Otherwise the strategy's ids are resolved and batch-expanded into product
// records, realigned to the id sequence; ids missing from the batch response
// are silently dropped. Every failure degrades to an empty dataset because
// recommendation surfaces are not critical path.
func ResolveDataset(ctx context.Context, cfg Config, ids IDResolver, products ProductResolver, log zerolog.Logger) []catalog.Product {
	if len(cfg.Preloaded) > 0 {
		out := make([]catalog.Product, len(cfg.Preloaded))
		copy(out, cfg.Preloaded)
		return out
	}

	resolved, err := ids.ResolveIDs(ctx, cfg.Strategy, cfg.Limit)
	if err != nil {
		log.Warn().Err(err).Str("strategy", string(cfg.Strategy.Kind)).Msg("id resolution failed")
		return []catalog.Product{}
	}
	if len(resolved) == 0 {
		return []catalog.Product{}
	}

	records, err := products.ByIDs(ctx, resolved)
	if err != nil {
		log.Warn().Err(err).Str("strategy", string(cfg.Strategy.Kind)).Msg("batch product lookup failed")
		return []catalog.Product{}
	}

	byID := make(map[int]catalog.Product, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}
	out := make([]catalog.Product, 0, len(resolved))
	seen := make(map[int]bool, len(resolved))
	for _, id := range resolved {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// DefaultAutoplayInterval matches the storefront's carousel advance cadence.
const DefaultAutoplayInterval = 4 * time.Second

// Loader is one live carousel instance. It owns its dataset, its sliding
// window and its autoplay timer for the lifetime of the display instance.
// Reconfiguration may race with an in-flight resolution; the loader applies a
// finished resolution only if its configuration still matches the current
// one, so a slow stale request can never overwrite a fast new one.
type Loader struct {
	ids      IDResolver
	products ProductResolver
	log      zerolog.Logger
	interval time.Duration

	mu         sync.Mutex
	cfg        Config
	configured bool
	dataset    []catalog.Product
	window     Window
	autoplay   *Autoplay
}

func NewLoader(ids IDResolver, products ProductResolver, logger zerolog.Logger) *Loader {
	return &Loader{
		ids:      ids,
		products: products,
		log:      logger,
		interval: DefaultAutoplayInterval,
		autoplay: NewAutoplay(),
		window:   NewWindow(pageSizeDesktop),
	}
}

// Configure starts resolving the given configuration in the background and
// returns a channel that closes when this attempt finishes, whether its
// result was applied or discarded as stale.
func (l *Loader) Configure(ctx context.Context, cfg Config) <-chan struct{} {
	l.mu.Lock()
	l.cfg = cfg
	l.configured = true
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		dataset := ResolveDataset(ctx, cfg, l.ids, l.products, l.log)
		l.apply(cfg, dataset)
	}()
	return done
}

// apply installs the dataset only if the loader's current configuration still
// matches the one the resolution was started for.
func (l *Loader) apply(tag Config, dataset []catalog.Product) {
	l.mu.Lock()
	if !l.configured || !l.cfg.Equal(tag) {
		l.mu.Unlock()
		l.log.Debug().Str("strategy", string(tag.Strategy.Kind)).Msg("discarding stale resolution")
		return
	}
	l.dataset = dataset
	l.window.SetLength(len(dataset))
	l.mu.Unlock()
	l.restartAutoplay()
}

// Dataset returns the currently displayed products, positionally aligned to
// the id sequence that produced them.
func (l *Loader) Dataset() []catalog.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]catalog.Product, len(l.dataset))
	copy(out, l.dataset)
	return out
}

// SetViewportWidth updates the responsive page size and restarts autoplay so
// the timer never acts on an outdated window shape.
func (l *Loader) SetViewportWidth(width int) {
	l.mu.Lock()
	l.window.SetSize(PageSizeFor(width))
	l.mu.Unlock()
	l.restartAutoplay()
}

// Next advances the window by one slide, as a manual interaction: the
// autoplay timer is reset so it does not double-advance right after.
func (l *Loader) Next() {
	l.mu.Lock()
	l.window.Next()
	l.mu.Unlock()
	l.restartAutoplay()
}

// Prev moves the window back by one slide and resets autoplay.
func (l *Loader) Prev() {
	l.mu.Lock()
	l.window.Prev()
	l.mu.Unlock()
	l.restartAutoplay()
}

// Index returns the current window position.
func (l *Loader) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.window.Index()
}

// PageSize returns the effective window size, never exceeding the dataset
// length.
func (l *Loader) PageSize() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.window.EffectiveSize()
}

// Close discards the dataset and stops the autoplay timer. Any resolution
// still in flight will be discarded on arrival.
func (l *Loader) Close() {
	l.mu.Lock()
	l.configured = false
	l.dataset = nil
	l.window.SetLength(0)
	l.mu.Unlock()
	l.autoplay.Stop()
}

func (l *Loader) restartAutoplay() {
	l.mu.Lock()
	canNavigate := l.window.CanNavigate()
	l.mu.Unlock()
	if !canNavigate {
		l.autoplay.Stop()
		return
	}
	l.autoplay.Reset(l.interval, func() {
		l.mu.Lock()
		l.window.Next()
		l.mu.Unlock()
	})
}
