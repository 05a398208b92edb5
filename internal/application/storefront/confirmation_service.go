package storefront

import (
	"context"

	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

// Confirmation results recorded in metrics
const (
	confirmStaged    = "staged"
	confirmCommitted = "confirmed"
	confirmCancelled = "cancelled"
	confirmRejected  = "rejected"
)

// ConfirmationService stages cart and wishlist actions behind the confirmation
// dialog. A visitor has at most one pending action; staging replaces it.
type ConfirmationService struct {
	*core
	cart     *CartStore
	wishlist *WishlistStore
	page     *PageService
	header   *HeaderService
}

// StageCart stages adding the selected variant to the cart. It fails with
// shared.ErrSelectionIncomplete until both color and size are chosen.
func (s *ConfirmationService) StageCart(ctx context.Context, visitorID string) (*dto.PendingView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	item, err := s.page.loadSelection(ctx, visitorID).CartItem()
	if err != nil {
		return nil, err
	}
	return s.stage(ctx, visitorID, storefront.StageCart(s.newID(), item, s.now()))
}

// StageWishlist stages the wishlist toggle for the selected color: removal when
// the product is already saved, addition otherwise.
func (s *ConfirmationService) StageWishlist(ctx context.Context, visitorID string) (*dto.PendingView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	entry, err := s.page.loadSelection(ctx, visitorID).WishlistEntry()
	if err != nil {
		return nil, err
	}
	saved := s.wishlist.load(ctx, visitorID).Contains(entry.ProductID)
	return s.stage(ctx, visitorID, storefront.StageWishlistToggle(s.newID(), entry, saved, s.now()))
}

// Pending returns the live pending action
func (s *ConfirmationService) Pending(ctx context.Context, visitorID string) (*dto.PendingView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	action, ok := s.load(ctx, visitorID)
	if !ok || action.Expired(s.now()) {
		return nil, shared.ErrNoPendingAction
	}
	return dto.ToPendingView(action), nil
}

// Confirm commits the pending action named id. The action is cleared before it
// is applied, so confirming twice commits once.
func (s *ConfirmationService) Confirm(ctx context.Context, visitorID, id string) (*dto.ConfirmResult, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	action, err := s.resolve(ctx, visitorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.snaps.remove(ctx, visitorID, KeyPendingConfirmation); err != nil {
		return nil, err
	}

	var notice storefront.Notice
	switch action.Kind {
	case storefront.ActionCart:
		if _, err := s.cart.add(ctx, visitorID, *action.CartItem); err != nil {
			return nil, err
		}
		notice = storefront.NoticeAddedToCart(*action.CartItem)
	case storefront.ActionWishlistAdd:
		entry := *action.WishlistEntry
		if _, err := s.wishlist.apply(ctx, visitorID, "add", func(w *wishlist.Wishlist) bool { return w.Add(entry) }); err != nil {
			return nil, err
		}
		notice = storefront.NoticeAddedToWishlist(entry)
	case storefront.ActionWishlistRemove:
		entry := *action.WishlistEntry
		if _, err := s.wishlist.apply(ctx, visitorID, "remove", func(w *wishlist.Wishlist) bool { return w.Remove(entry.ProductID) }); err != nil {
			return nil, err
		}
		notice = storefront.NoticeRemovedFromWishlist(entry)
	}

	s.metrics.IncConfirmation(string(action.Kind), confirmCommitted)
	return &dto.ConfirmResult{
		Kind:   action.Kind,
		Notice: notice,
		Header: s.header.header(ctx, visitorID),
	}, nil
}

// Cancel discards the pending action named id without touching any store
func (s *ConfirmationService) Cancel(ctx context.Context, visitorID, id string) error {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	action, err := s.resolve(ctx, visitorID, id)
	if err != nil {
		return err
	}
	if err := s.snaps.remove(ctx, visitorID, KeyPendingConfirmation); err != nil {
		return err
	}
	s.metrics.IncConfirmation(string(action.Kind), confirmCancelled)
	return nil
}

func (s *ConfirmationService) stage(ctx context.Context, visitorID string, action *storefront.PendingAction) (*dto.PendingView, error) {
	if err := s.snaps.save(ctx, visitorID, KeyPendingConfirmation, action); err != nil {
		return nil, err
	}
	s.metrics.IncConfirmation(string(action.Kind), confirmStaged)
	logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).Debug("staged action",
		zap.String("kind", string(action.Kind)),
		zap.String("confirmation_id", action.ID))
	return dto.ToPendingView(action), nil
}

// resolve returns the live pending action named id. A stored action that
// fails validation is discarded.
func (s *ConfirmationService) resolve(ctx context.Context, visitorID, id string) (*storefront.PendingAction, error) {
	action, ok := s.load(ctx, visitorID)
	if !ok {
		s.metrics.IncConfirmation("unknown", confirmRejected)
		return nil, shared.ErrNoPendingAction
	}
	if err := action.Resolve(id, s.now()); err != nil {
		s.metrics.IncConfirmation(string(action.Kind), confirmRejected)
		return nil, err
	}
	if err := action.Validate(); err != nil {
		logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).Warn("discarding invalid pending action", zap.Error(err))
		_ = s.snaps.remove(ctx, visitorID, KeyPendingConfirmation)
		return nil, shared.ErrNoPendingAction
	}
	return action, nil
}

func (s *ConfirmationService) load(ctx context.Context, visitorID string) (*storefront.PendingAction, bool) {
	action := &storefront.PendingAction{}
	if !s.snaps.load(ctx, visitorID, KeyPendingConfirmation, action) {
		return nil, false
	}
	return action, true
}
