package storefront

import (
	"context"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
)

// DefaultWishlistSize is the size used when a saved product is bought from the
// wishlist page without choosing one
const DefaultWishlistSize = "40"

// WishlistStore keeps each visitor's saved products
type WishlistStore struct {
	*core
	cart *CartStore
}

// Wishlist returns the visitor's wishlist page
func (s *WishlistStore) Wishlist(ctx context.Context, visitorID string) *dto.WishlistView {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return dto.ToWishlistView(s.load(ctx, visitorID))
}

// Contains reports whether productID is saved
func (s *WishlistStore) Contains(ctx context.Context, visitorID, productID string) bool {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return s.load(ctx, visitorID).Contains(productID)
}

// Add saves entry unless its product is already present
func (s *WishlistStore) Add(ctx context.Context, visitorID string, entry wishlist.Entry) (*dto.WishlistView, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, visitorID, "add", func(w *wishlist.Wishlist) bool {
		return w.Add(entry)
	})
}

// Remove deletes the product from the wishlist
func (s *WishlistStore) Remove(ctx context.Context, visitorID, productID string) (*dto.WishlistView, error) {
	return s.mutate(ctx, visitorID, "remove", func(w *wishlist.Wishlist) bool {
		return w.Remove(productID)
	})
}

// Clear empties the wishlist
func (s *WishlistStore) Clear(ctx context.Context, visitorID string) (*dto.WishlistView, error) {
	return s.mutate(ctx, visitorID, "clear", func(w *wishlist.Wishlist) bool {
		w.Clear()
		return true
	})
}

// MoveToCart adds one unit of a saved product to the cart. size defaults to
// DefaultWishlistSize and must be offered in the saved color. The product stays
// in the wishlist.
func (s *WishlistStore) MoveToCart(ctx context.Context, visitorID, productID, size string) (*dto.CartView, error) {
	if size == "" {
		size = DefaultWishlistSize
	}

	unlock := s.locks.lock(visitorID)
	defer unlock()

	entry, ok := s.load(ctx, visitorID).Find(productID)
	if !ok {
		return nil, shared.ErrNotFound
	}
	if p, ok := s.catalog.Product(productID); ok {
		if v, ok := p.Variant(entry.Color); ok && !v.OffersSize(size) {
			return nil, shared.ErrInvalidSelection
		}
	}

	c, err := s.cart.add(ctx, visitorID, cart.LineItem{
		ProductID: entry.ProductID,
		Name:      entry.Name,
		Price:     entry.Price,
		Image:     entry.Image,
		Color:     entry.Color,
		ColorName: entry.ColorName,
		Size:      size,
		Quantity:  1,
	})
	if err != nil {
		return nil, err
	}
	return s.cart.view(visitorID, c), nil
}

// apply runs fn for callers already holding the visitor lock
func (s *WishlistStore) apply(ctx context.Context, visitorID, operation string, fn func(*wishlist.Wishlist) bool) (*wishlist.Wishlist, error) {
	w := s.load(ctx, visitorID)
	if fn(w) {
		if err := s.snaps.save(ctx, visitorID, KeyWishlist, w); err != nil {
			return nil, err
		}
		s.metrics.IncWishlistMutation(operation)
	}
	return w, nil
}

func (s *WishlistStore) mutate(ctx context.Context, visitorID, operation string, fn func(*wishlist.Wishlist) bool) (*dto.WishlistView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	w, err := s.apply(ctx, visitorID, operation, fn)
	if err != nil {
		return nil, err
	}
	return dto.ToWishlistView(w), nil
}

func (s *WishlistStore) load(ctx context.Context, visitorID string) *wishlist.Wishlist {
	w := &wishlist.Wishlist{}
	if !s.snaps.load(ctx, visitorID, KeyWishlist, w) {
		return &wishlist.Wishlist{}
	}
	return w
}
