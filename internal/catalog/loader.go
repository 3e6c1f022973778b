package catalog

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"
)

// LoaderPageSize is the storefront's incremental page size. The proxy
// aggregates in pages of 100; the storefront loads in smaller steps so a
// partial catalog is usable early. The two policies are independent on
// purpose.
const LoaderPageSize = 12

// Loader accumulates the catalog in fixed-size pages from a Source. Unlike
// the Service it surfaces failures: a failed page load keeps whatever was
// already accumulated and reports a fixed message, it does not fall back to
// fixtures.
//
// Every reset bumps a generation counter and in-flight page fetches carry the
// generation they were issued under. A response whose generation no longer
// matches is discarded, so a load superseded by a filter change can never
// clobber newer state.
type Loader struct {
	source  Source
	perPage int

	mu         sync.Mutex
	generation uint64
	filter     Filter
	products   []models.Product
	nextPage   int
	hasMore    bool
	lastErr    string
}

func NewLoader(source Source) *Loader {
	l := &Loader{
		source:  source,
		perPage: LoaderPageSize,
		filter:  DefaultFilter(),
	}
	l.reset()
	return l
}

// SetFilter installs a new filter state. A changed filter discards the
// accumulated list and starts over; an unchanged one is a no-op.
func (l *Loader) SetFilter(f Filter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.filter.Equal(f) {
		l.filter = f
		return
	}
	l.filter = f
	l.reset()
}

// Reset clears the accumulated catalog and restores the default filter.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = DefaultFilter()
	l.reset()
}

func (l *Loader) reset() {
	l.generation++
	l.products = nil
	l.nextPage = 1
	l.hasMore = true
	l.lastErr = ""
}

// LoadMore fetches the next page and appends it. On failure the accumulated
// list is kept. A response that lands after a reset is dropped.
func (l *Loader) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore {
		l.mu.Unlock()
		return nil
	}
	gen := l.generation
	page := l.nextPage
	perPage := l.perPage
	l.mu.Unlock()

	batch, err := l.source.CatalogPage(ctx, page, perPage)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// Superseded while in flight; a newer load owns the state now.
		return nil
	}
	if err != nil {
		l.lastErr = MsgFetchProducts
		return fmt.Errorf("%s: %w", MsgFetchProducts, err)
	}
	l.lastErr = ""
	l.products = append(l.products, batch...)
	l.nextPage++
	l.hasMore = len(batch) == perPage
	return nil
}

// LoadAll drives LoadMore until the end-of-data signal or the first error.
func (l *Loader) LoadAll(ctx context.Context) error {
	for l.HasMore() {
		if err := l.LoadMore(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Products returns a snapshot of the accumulated catalog.
func (l *Loader) Products() []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Product, len(l.products))
	copy(out, l.products)
	return out
}

func (l *Loader) Filter() Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Err returns the fixed user-facing message of the last failed load, or "".
func (l *Loader) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
