package storefront

import (
	"context"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
)

// HeaderService renders the header badges
type HeaderService struct {
	*core
	cart     *CartStore
	wishlist *WishlistStore
}

// Header counts the distinct cart lines and the saved products
func (s *HeaderService) Header(ctx context.Context, visitorID string) dto.HeaderView {
	unlock := s.locks.lock(visitorID)
	defer unlock()
	return s.header(ctx, visitorID)
}

func (s *HeaderService) header(ctx context.Context, visitorID string) dto.HeaderView {
	return dto.HeaderView{
		StoreName:     dto.StoreName,
		CartCount:     s.cart.load(ctx, visitorID).LineCount(),
		WishlistCount: s.wishlist.load(ctx, visitorID).Len(),
	}
}
