package storefront

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
)

const (
	white  = "#FFFFFF"
	black  = "#000000"
	orange = "#f54500"
	green  = "#1f4618"
)

func TestNewSelection_Defaults(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	assert.Equal(t, StateNoColor, s.State())
	assert.Equal(t, "/images/tenis-1.png", s.MainImage())
	assert.Len(t, s.Images(), 5)
	assert.Empty(t, s.AvailableSizes())
	assert.Empty(t, s.Color())
	assert.Empty(t, s.Size())
	_, ok := s.Address()
	assert.False(t, ok)
}

func TestSelection_SelectColor(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	require.NoError(t, s.SelectColor(black))

	assert.Equal(t, StateColor, s.State())
	assert.Equal(t, "/images/tenis-preto-1.png", s.MainImage())
	assert.Equal(t, []string{"38", "39", "40", "41", "42"}, s.AvailableSizes())
	assert.Len(t, s.Images(), 3)

	assert.Equal(t, ErrUnknownColor, s.SelectColor("#abcdef"))
	assert.Equal(t, black, s.Color(), "invalid color leaves state untouched")
}

func TestSelection_ColorChangeDropsUnofferedSize(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		size     string
		to       string
		wantSize string
	}{
		{"size offered by new color is kept", white, "40", black, "40"},
		{"43 not sold in black", white, "43", black, ""},
		{"38 not sold in orange", black, "38", orange, ""},
		{"39 not sold in green", orange, "39", green, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(catalog.CourtVisionLow())
			require.NoError(t, s.SelectColor(tt.from))
			require.NoError(t, s.SelectSize(tt.size))

			require.NoError(t, s.SelectColor(tt.to))

			assert.Equal(t, tt.wantSize, s.Size())
			if tt.wantSize == "" {
				assert.Equal(t, StateColor, s.State())
			}
		})
	}
}

func TestSelection_SelectSize(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	assert.Equal(t, ErrSizeNeedsColor, s.SelectSize("40"))

	require.NoError(t, s.SelectColor(green))
	assert.Equal(t, ErrSizeUnavailable, s.SelectSize("39"))
	require.NoError(t, s.SelectSize("43"))
	assert.Equal(t, StateComplete, s.State())
}

func TestSelection_SelectImage(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	require.NoError(t, s.SelectImage("/images/tenis-3.png"))
	assert.Equal(t, "/images/tenis-3.png", s.MainImage())

	assert.Equal(t, ErrImageUnavailable, s.SelectImage("/images/tenis-preto-1.png"))

	require.NoError(t, s.SelectColor(black))
	require.NoError(t, s.SelectImage("/images/tenis-preto-2.png"))
	assert.Equal(t, "/images/tenis-preto-2.png", s.MainImage())
}

func TestSelection_CartItem(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	_, err := s.CartItem()
	assert.ErrorIs(t, err, shared.ErrSelectionIncomplete)

	require.NoError(t, s.SelectColor(orange))
	_, err = s.CartItem()
	assert.ErrorIs(t, err, shared.ErrSelectionIncomplete)

	require.NoError(t, s.SelectSize("41"))
	require.NoError(t, s.SelectImage("/images/tenis-laranja-2.png"))

	item, err := s.CartItem()
	require.NoError(t, err)
	assert.Equal(t, catalog.CourtVisionLowID, item.ProductID)
	assert.Equal(t, "Laranja Royal", item.ColorName)
	assert.Equal(t, "41", item.Size)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "/images/tenis-laranja-1.png", item.Image, "cart shows the color's first picture")
	assert.Equal(t, "R$ 299,90", item.Price.Format())
}

func TestSelection_WishlistEntry(t *testing.T) {
	s := NewSelection(catalog.CourtVisionLow())

	_, err := s.WishlistEntry()
	assert.ErrorIs(t, err, shared.ErrColorRequired)

	require.NoError(t, s.SelectColor(green))
	entry, err := s.WishlistEntry()
	require.NoError(t, err)
	assert.Equal(t, "Verde", entry.ColorName)
	assert.Equal(t, "/images/tenis-verde-1.png", entry.Image)
}

func TestSelection_PostalCodeLookup(t *testing.T) {
	addr := &shipping.Address{PostalCode: "01001-000", Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", State: "SP"}

	t.Run("masks input", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		assert.Equal(t, "01001-000", s.SetPostalCode("01001000"))
		assert.Equal(t, "01001-000", s.PostalCode())
	})

	t.Run("rejects incomplete code without starting a lookup", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		s.SetPostalCode("0100")
		before := s.LookupGeneration()

		_, _, err := s.BeginLookup()
		assert.ErrorIs(t, err, shared.ErrInvalidPostalCode)
		assert.Equal(t, before, s.LookupGeneration())
	})

	t.Run("applies current result", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		s.SetPostalCode("01001-000")

		code, gen, err := s.BeginLookup()
		require.NoError(t, err)
		assert.Equal(t, "01001000", code.String())

		require.NoError(t, s.CompleteLookup(gen, addr, nil))
		got, ok := s.Address()
		require.True(t, ok)
		assert.Equal(t, *addr, got)
	})

	t.Run("failure clears previous address", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		s.SetPostalCode("01001-000")
		_, gen, _ := s.BeginLookup()
		require.NoError(t, s.CompleteLookup(gen, addr, nil))

		_, gen, _ = s.BeginLookup()
		err := s.CompleteLookup(gen, nil, shared.ErrPostalCodeNotFound)
		assert.ErrorIs(t, err, shared.ErrPostalCodeNotFound)
		_, ok := s.Address()
		assert.False(t, ok)
	})

	t.Run("stale result is dropped after the input changes", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		s.SetPostalCode("01001-000")
		_, staleGen, _ := s.BeginLookup()

		s.SetPostalCode("20040-020")
		_, currentGen, _ := s.BeginLookup()

		err := s.CompleteLookup(staleGen, addr, nil)
		assert.True(t, errors.Is(err, shared.ErrStaleLookup))
		_, ok := s.Address()
		assert.False(t, ok)

		rio := &shipping.Address{PostalCode: "20040-020", City: "Rio de Janeiro", State: "RJ"}
		require.NoError(t, s.CompleteLookup(currentGen, rio, nil))
		got, _ := s.Address()
		assert.Equal(t, "Rio de Janeiro", got.City)
	})

	t.Run("retyping the same code keeps the lookup current", func(t *testing.T) {
		s := NewSelection(catalog.CourtVisionLow())
		s.SetPostalCode("01001-000")
		_, gen, _ := s.BeginLookup()

		s.SetPostalCode("01001000")
		assert.NoError(t, s.CompleteLookup(gen, addr, nil))
	})
}
