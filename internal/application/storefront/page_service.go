package storefront

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/application/storefront/dto"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/domain/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

// PageService drives the product page selection of each visitor. Every change
// is saved under KeyProductSelections; a saved selection older than
// storefront.SelectionTTL is discarded on the next read.
type PageService struct {
	*core
	lookup   shipping.AddressLookup
	wishlist *WishlistStore
}

// GetPage returns the visitor's product page. Reading it refreshes the saved
// selection's timestamp.
func (s *PageService) GetPage(ctx context.Context, visitorID string) (*dto.PageView, error) {
	return s.mutate(ctx, visitorID, func(*storefront.Selection) error { return nil })
}

// SelectColor switches the page to the variant sold in color
func (s *PageService) SelectColor(ctx context.Context, visitorID, color string) (*dto.PageView, error) {
	return s.mutate(ctx, visitorID, func(sel *storefront.Selection) error {
		return sel.SelectColor(color)
	})
}

// SelectSize chooses a size of the current color
func (s *PageService) SelectSize(ctx context.Context, visitorID, size string) (*dto.PageView, error) {
	return s.mutate(ctx, visitorID, func(sel *storefront.Selection) error {
		return sel.SelectSize(size)
	})
}

// SelectImage shows a picture of the current gallery as the main image
func (s *PageService) SelectImage(ctx context.Context, visitorID, url string) (*dto.PageView, error) {
	return s.mutate(ctx, visitorID, func(sel *storefront.Selection) error {
		return sel.SelectImage(url)
	})
}

// SetPostalCode stores the postal code input with its mask applied
func (s *PageService) SetPostalCode(ctx context.Context, visitorID, input string) (*dto.PageView, error) {
	return s.mutate(ctx, visitorID, func(sel *storefront.Selection) error {
		sel.SetPostalCode(input)
		return nil
	})
}

// LookupShipping resolves the address of the current postal code input.
//
// The lookup runs without holding the visitor lock. If the input changed or
// another lookup started meanwhile, the result is dropped and the current page
// is returned together with shared.ErrStaleLookup. A not-found or failed lookup
// clears the address and returns the page with the lookup error.
func (s *PageService) LookupShipping(ctx context.Context, visitorID string) (*dto.PageView, error) {
	ctx, span := telemetry.StartSpan(ctx, "storefront", "lookup_shipping", telemetry.SpanAttrVisitorID, visitorID)
	defer span.End()

	unlock := s.locks.lock(visitorID)
	sel := s.loadSelection(ctx, visitorID)
	code, generation, err := sel.BeginLookup()
	if err != nil {
		unlock()
		return nil, err
	}
	err = s.saveSelection(ctx, visitorID, sel)
	unlock()
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrPostalCode, code.String())

	addr, lookupErr := s.lookup.Lookup(ctx, code)

	unlock = s.locks.lock(visitorID)
	defer unlock()

	sel = s.loadSelection(ctx, visitorID)
	err = sel.CompleteLookup(generation, addr, lookupErr)
	if errors.Is(err, shared.ErrStaleLookup) {
		s.metrics.ObserveAddressLookup(telemetry.LookupStale, 0)
		telemetry.SetAttributes(span, telemetry.SpanAttrLookupState, telemetry.LookupStale)
		logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).Debug("dropping stale address lookup",
			zap.Uint64("generation", generation))
		return s.pageView(ctx, visitorID, sel), err
	}
	if saveErr := s.saveSelection(ctx, visitorID, sel); saveErr != nil {
		return nil, saveErr
	}
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return s.pageView(ctx, visitorID, sel), err
}

// mutate loads the selection, applies fn and saves it. A rejected change is
// not saved.
func (s *PageService) mutate(ctx context.Context, visitorID string, fn func(*storefront.Selection) error) (*dto.PageView, error) {
	unlock := s.locks.lock(visitorID)
	defer unlock()

	sel := s.loadSelection(ctx, visitorID)
	if err := fn(sel); err != nil {
		return nil, err
	}
	if err := s.saveSelection(ctx, visitorID, sel); err != nil {
		return nil, err
	}
	return s.pageView(ctx, visitorID, sel), nil
}

// loadSelection restores the saved selection or the default one. A stale
// snapshot is deleted.
func (s *PageService) loadSelection(ctx context.Context, visitorID string) *storefront.Selection {
	product := s.catalog.Featured()

	var snap storefront.SelectionSnapshot
	if !s.snaps.load(ctx, visitorID, KeyProductSelections, &snap) {
		return storefront.NewSelection(product)
	}
	sel, fresh := storefront.RestoreSelection(product, snap, s.now())
	if !fresh {
		if err := s.snaps.remove(ctx, visitorID, KeyProductSelections); err != nil {
			logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).Warn("failed to delete stale selection", zap.Error(err))
		}
	}
	return sel
}

func (s *PageService) saveSelection(ctx context.Context, visitorID string, sel *storefront.Selection) error {
	return s.snaps.save(ctx, visitorID, KeyProductSelections, sel.Snapshot(s.now()))
}

func (s *PageService) pageView(ctx context.Context, visitorID string, sel *storefront.Selection) *dto.PageView {
	saved := s.wishlist.load(ctx, visitorID).Contains(sel.Product().ID)
	return dto.ToPageView(sel, saved)
}
