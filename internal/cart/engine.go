package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/store"
)

// Engine owns the ordered list of cart lines for the lifetime of the process.
// Mutations are serialized; each one re-persists the full line list under the
// cart storage key. Storage failures are logged and the engine degrades to
// in-memory behavior for that call.
type Engine struct {
	mu    sync.Mutex
	lines []domain.CartLine
	store store.Store
}

// NewEngine rehydrates the cart from storage. A missing or corrupt snapshot
// yields an empty cart with the error logged, never an aborted startup.
func NewEngine(ctx context.Context, s store.Store) *Engine {
	e := &Engine{store: s}
	e.load(ctx)
	return e
}

func (e *Engine) load(ctx context.Context) {
	data, err := e.store.Get(ctx, store.CartKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return
	}
	if err != nil {
		log.Printf("failed to load cart from storage: %v", err)
		return
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("discarding corrupt cart snapshot: %v", err)
		return
	}
	e.lines = lines
}

// persist is called with the mutex held.
func (e *Engine) persist(ctx context.Context) {
	data, err := json.Marshal(e.lines)
	if err != nil {
		log.Printf("failed to marshal cart: %v", err)
		return
	}
	if err := e.store.Set(ctx, store.CartKey, data); err != nil {
		log.Printf("failed to persist cart: %v", err)
	}
}

// AddItem increments the quantity of an existing line for the product, or
// appends a new line preserving first-added order. A zero quantity means
// unspecified and counts as one unit; negative quantities pass through,
// policy being the caller's responsibility.
func (e *Engine) AddItem(ctx context.Context, p domain.Product, quantity int) {
	if quantity == 0 {
		quantity = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.lines {
		if e.lines[i].Product.ID == p.ID {
			e.lines[i].Quantity += quantity
			e.persist(ctx)
			return
		}
	}
	e.lines = append(e.lines, domain.CartLine{Product: p, Quantity: quantity})
	e.persist(ctx)
}

// RemoveItem deletes the matching line. Absent product ids are a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(ctx, productID)
}

func (e *Engine) removeLocked(ctx context.Context, productID string) {
	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to exactly quantity. A quantity of
// zero or less removes the line. Absent product ids are a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if quantity <= 0 {
		e.removeLocked(ctx, productID)
		return
	}
	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines[i].Quantity = quantity
			e.persist(ctx)
			return
		}
	}
}

func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.persist(ctx)
}

// Lines returns a snapshot copy of the cart in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sum float64
	for _, l := range e.lines {
		sum += l.Product.Price * float64(l.Quantity)
	}
	return sum
}

func (e *Engine) Totals() domain.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TotalsFor(e.lines)
}
