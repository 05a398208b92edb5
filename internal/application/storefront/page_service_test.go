package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/domain/storefront"
)

var avenidaPaulista = &shipping.Address{
	PostalCode:   "01310-100",
	Street:       "Avenida Paulista",
	Neighborhood: "Bela Vista",
	City:         "São Paulo",
	State:        "SP",
}

func TestPageService_DefaultPage(t *testing.T) {
	f := newFixture(t)

	page, err := f.svc.Page.GetPage(context.Background(), visitor)
	require.NoError(t, err)

	assert.Equal(t, string(storefront.StateNoColor), page.State)
	assert.Equal(t, "/images/tenis-1.png", page.MainImage)
	assert.Len(t, page.Images, 5)
	assert.Empty(t, page.SelectedColor)
	assert.Empty(t, page.AvailableSizes)
	assert.False(t, page.CanAddToCart)
	assert.Nil(t, page.Address)
	assert.Empty(t, page.ShippingOptions)
	assert.Equal(t, 25, page.Product.DiscountPercent)
	assert.Equal(t, "R$ 299,90", page.Product.Price.Formatted)
}

func TestPageService_Selection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.svc.Page.SelectColor(ctx, visitor, "#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, string(storefront.StateColor), page.State)
	assert.Equal(t, "Branco", page.SelectedColorName)
	assert.Equal(t, []string{"38", "39", "40", "41", "42", "43"}, page.AvailableSizes)

	page, err = f.svc.Page.SelectSize(ctx, visitor, "43")
	require.NoError(t, err)
	assert.Equal(t, string(storefront.StateComplete), page.State)
	assert.True(t, page.CanAddToCart)

	page, err = f.svc.Page.SelectImage(ctx, visitor, "/images/tenis-3.png")
	require.NoError(t, err)
	assert.Equal(t, "/images/tenis-3.png", page.MainImage)

	page, err = f.svc.Page.SelectColor(ctx, visitor, "#f54500")
	require.NoError(t, err)
	assert.Equal(t, string(storefront.StateColor), page.State, "43 is not sold in orange")
	assert.Empty(t, page.SelectedSize)
	assert.Equal(t, "/images/tenis-laranja-1.png", page.MainImage)
	assert.Len(t, page.Images, 2)
}

func TestPageService_RejectedChangesAreNotSaved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.selectVariant(t, "#000000", "40")

	tests := []struct {
		name string
		run  func() error
	}{
		{"unknown color", func() error { _, err := f.svc.Page.SelectColor(ctx, visitor, "#123456"); return err }},
		{"size not offered", func() error { _, err := f.svc.Page.SelectSize(ctx, visitor, "43"); return err }},
		{"image of another color", func() error { _, err := f.svc.Page.SelectImage(ctx, visitor, "/images/tenis-1.png"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), shared.ErrInvalidSelection)

			page, err := f.svc.Page.GetPage(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, "#000000", page.SelectedColor)
			assert.Equal(t, "40", page.SelectedSize)
			assert.Equal(t, "/images/tenis-preto-1.png", page.MainImage)
		})
	}
}

func TestPageService_SelectionPersistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.selectVariant(t, "#1f4618", "43")

	restarted := f.build(nil)
	page, err := restarted.Page.GetPage(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, "#1f4618", page.SelectedColor)
	assert.Equal(t, "43", page.SelectedSize)

	f.clock.Advance(10 * time.Minute)
	_, err = restarted.Page.GetPage(ctx, visitor)
	require.NoError(t, err)

	f.clock.Advance(10 * time.Minute)
	page, err = restarted.Page.GetPage(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, "#1f4618", page.SelectedColor, "reading the page refreshes the snapshot")

	f.clock.Advance(storefront.SelectionTTL)
	page, err = restarted.Page.GetPage(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, page.SelectedColor, "stale selections are dropped")
	assert.Equal(t, "/images/tenis-1.png", page.MainImage)
}

func TestPageService_SetPostalCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		input        string
		want         string
		wantComplete bool
	}{
		{input: "013", want: "013"},
		{input: "013101", want: "01310-1"},
		{input: "01310100", want: "01310-100", wantComplete: true},
		{input: "01310-100", want: "01310-100", wantComplete: true},
		{input: "0131010099", want: "01310-100", wantComplete: true},
		{input: "ab01310x1", want: "01310-1"},
		{input: " 01310-100", want: "01310-100", wantComplete: true},
		{input: "01.310-100", want: "01310-100", wantComplete: true},
		{input: "01310 - 100", want: "01310-100", wantComplete: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			page, err := f.svc.Page.SetPostalCode(ctx, visitor, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, page.PostalCode)
			assert.Equal(t, tt.wantComplete, page.PostalCodeComplete)
		})
	}
}

func TestPageService_LookupShipping(t *testing.T) {
	code := valueobject.PostalCode("01310100")

	t.Run("incomplete code skips the lookup", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		_, err := f.svc.Page.SetPostalCode(ctx, visitor, "0131")
		require.NoError(t, err)

		_, err = f.svc.Page.LookupShipping(ctx, visitor)
		assert.ErrorIs(t, err, shared.ErrInvalidPostalCode)
		f.lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.lookup.On("Lookup", mock.Anything, code).Return(avenidaPaulista, nil).Once()
		_, err := f.svc.Page.SetPostalCode(ctx, visitor, "01310100")
		require.NoError(t, err)

		page, err := f.svc.Page.LookupShipping(ctx, visitor)
		require.NoError(t, err)
		require.NotNil(t, page.Address)
		assert.Equal(t, "Avenida Paulista", page.Address.Street)
		assert.Equal(t, []string{"Avenida Paulista, Bela Vista", "São Paulo - SP, 01310-100"}, page.Address.Lines)
		require.Len(t, page.ShippingOptions, 2)
		assert.Equal(t, "R$ 19,90", page.ShippingOptions[0].Price.Formatted)
		assert.Equal(t, "R$ 29,90", page.ShippingOptions[1].Price.Formatted)

		page, err = f.build(nil).Page.GetPage(ctx, visitor)
		require.NoError(t, err)
		assert.NotNil(t, page.Address, "the address is saved with the selection")
		f.lookup.AssertExpectations(t)
	})

	t.Run("separators in the input still resolve", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.lookup.On("Lookup", mock.Anything, code).Return(avenidaPaulista, nil).Once()
		_, err := f.svc.Page.SetPostalCode(ctx, visitor, "01.310-100")
		require.NoError(t, err)

		page, err := f.svc.Page.LookupShipping(ctx, visitor)
		require.NoError(t, err)
		require.NotNil(t, page.Address)
		f.lookup.AssertExpectations(t)
	})

	for _, lookupErr := range []error{shared.ErrPostalCodeNotFound, shared.ErrAddressLookupFailed} {
		t.Run(lookupErr.Error(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.lookup.On("Lookup", mock.Anything, code).Return(avenidaPaulista, nil).Once()
			f.lookup.On("Lookup", mock.Anything, code).Return(nil, lookupErr).Once()
			_, err := f.svc.Page.SetPostalCode(ctx, visitor, "01310-100")
			require.NoError(t, err)
			_, err = f.svc.Page.LookupShipping(ctx, visitor)
			require.NoError(t, err)

			page, err := f.svc.Page.LookupShipping(ctx, visitor)
			assert.ErrorIs(t, err, lookupErr)
			require.NotNil(t, page)
			assert.Nil(t, page.Address, "a failed lookup clears the address")
			assert.Empty(t, page.ShippingOptions)
		})
	}
}

func TestPageService_LookupShippingDropsStaleResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Page.SetPostalCode(ctx, visitor, "01310100")
	require.NoError(t, err)

	f.lookup.On("Lookup", mock.Anything, valueobject.PostalCode("01310100")).
		Run(func(mock.Arguments) {
			// the visitor keeps typing while the request is in flight
			_, err := f.svc.Page.SetPostalCode(ctx, visitor, "20040002")
			require.NoError(t, err)
		}).
		Return(avenidaPaulista, nil).Once()

	page, err := f.svc.Page.LookupShipping(ctx, visitor)
	assert.ErrorIs(t, err, shared.ErrStaleLookup)
	require.NotNil(t, page)
	assert.Equal(t, "20040-002", page.PostalCode)
	assert.Nil(t, page.Address)

	page, err = f.svc.Page.GetPage(ctx, visitor)
	require.NoError(t, err)
	assert.Nil(t, page.Address)
}

func TestPageService_WishlistFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Wishlist.Add(ctx, visitor, wishlistEntry("nike-court-vision-low", "#000000", "Preto"))
	require.NoError(t, err)

	page, err := f.svc.Page.GetPage(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, page.InWishlist)
}
