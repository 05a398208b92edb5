package storefront

import (
	"context"
	"sync"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
)

// drawerFlags remembers which visitors have the cart drawer open. The flag is
// UI state and is not persisted.
type drawerFlags struct {
	mu   sync.RWMutex
	open map[string]struct{}
}

func newDrawerFlags() *drawerFlags {
	return &drawerFlags{open: make(map[string]struct{})}
}

func (d *drawerFlags) set(visitorID string, open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if open {
		d.open[visitorID] = struct{}{}
	} else {
		delete(d.open, visitorID)
	}
}

func (d *drawerFlags) isOpen(visitorID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.open[visitorID]
	return ok
}

// CartStore keeps each visitor's cart, writing the whole cart through to the
// snapshot store after every mutation.
type CartStore struct {
	*core
}

// Cart returns the visitor's cart
func (s *CartStore) Cart(ctx context.Context, visitorID string) *dto.CartView {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return s.view(visitorID, s.load(ctx, visitorID))
}

// AddItem merges item into the cart and opens the drawer
func (s *CartStore) AddItem(ctx context.Context, visitorID string, item cart.LineItem) (*dto.CartView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	c, err := s.add(ctx, visitorID, item)
	if err != nil {
		return nil, err
	}
	return s.view(visitorID, c), nil
}

// add is AddItem for callers already holding the visitor lock
func (s *CartStore) add(ctx context.Context, visitorID string, item cart.LineItem) (*cart.Cart, error) {
	c := s.load(ctx, visitorID)
	if err := c.Add(item); err != nil {
		return nil, err
	}
	if err := s.snaps.save(ctx, visitorID, KeyCart, c); err != nil {
		return nil, err
	}
	s.drawer.set(visitorID, true)
	s.metrics.IncCartMutation("add")
	return c, nil
}

// UpdateQuantity sets the quantity of the line with key, never below 1. A
// missing line leaves the cart unchanged.
func (s *CartStore) UpdateQuantity(ctx context.Context, visitorID string, key cart.Key, quantity int) (*dto.CartView, error) {
	return s.mutate(ctx, visitorID, "update_quantity", func(c *cart.Cart) bool {
		return c.UpdateQuantity(key, quantity)
	})
}

// RemoveItem deletes the line matching id, color and size
func (s *CartStore) RemoveItem(ctx context.Context, visitorID string, key cart.Key) (*dto.CartView, error) {
	return s.mutate(ctx, visitorID, "remove", func(c *cart.Cart) bool {
		return c.Remove(key)
	})
}

// Clear empties the cart
func (s *CartStore) Clear(ctx context.Context, visitorID string) (*dto.CartView, error) {
	return s.mutate(ctx, visitorID, "clear", func(c *cart.Cart) bool {
		c.Clear()
		return true
	})
}

// SetOpen opens or closes the drawer
func (s *CartStore) SetOpen(ctx context.Context, visitorID string, open bool) *dto.DrawerView {
	s.drawer.set(visitorID, open)
	return s.Drawer(ctx, visitorID)
}

// Drawer returns the cart drawer
func (s *CartStore) Drawer(ctx context.Context, visitorID string) *dto.DrawerView {
	return dto.ToDrawerView(s.Cart(ctx, visitorID))
}

func (s *CartStore) mutate(ctx context.Context, visitorID, operation string, fn func(*cart.Cart) bool) (*dto.CartView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	c := s.load(ctx, visitorID)
	if fn(c) {
		if err := s.snaps.save(ctx, visitorID, KeyCart, c); err != nil {
			return nil, err
		}
		s.metrics.IncCartMutation(operation)
	}
	return s.view(visitorID, c), nil
}

func (s *CartStore) load(ctx context.Context, visitorID string) *cart.Cart {
	c := &cart.Cart{}
	if !s.snaps.load(ctx, visitorID, KeyCart, c) {
		return &cart.Cart{}
	}
	return c
}

func (s *CartStore) view(visitorID string, c *cart.Cart) *dto.CartView {
	return dto.ToCartView(c, s.drawer.isOpen(visitorID))
}
