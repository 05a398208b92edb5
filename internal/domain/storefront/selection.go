package storefront

import (
	"slices"

	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
)

// SelectionState is the stage the visitor reached on the product page
type SelectionState string

const (
	StateNoColor  SelectionState = "no_color"
	StateColor    SelectionState = "color"
	StateComplete SelectionState = "complete"
)

var (
	ErrUnknownColor     = shared.NewDomainError("INVALID_SELECTION", "Cor indisponível para este produto")
	ErrSizeNeedsColor   = shared.NewDomainError("INVALID_SELECTION", "Selecione uma cor antes do tamanho")
	ErrSizeUnavailable  = shared.NewDomainError("INVALID_SELECTION", "Tamanho indisponível nesta cor")
	ErrImageUnavailable = shared.NewDomainError("INVALID_SELECTION", "Imagem não pertence à galeria atual")
)

// Selection is the product page state: gallery, chosen variant, postal code input
// and the address resolved for it. It is owned by one visitor and not safe for
// concurrent use.
type Selection struct {
	product    *catalog.Product
	images     []catalog.Image
	mainImage  string
	color      string
	size       string
	postalCode string
	address    *shipping.Address
	generation uint64
}

// NewSelection returns the state of a freshly opened product page: the first
// variant's gallery, no color, no size, no sizes on offer.
func NewSelection(p *catalog.Product) *Selection {
	first := p.DefaultVariant()
	return &Selection{
		product:   p,
		images:    first.Images,
		mainImage: first.PrimaryImage(),
	}
}

// Product returns the product the page renders
func (s *Selection) Product() *catalog.Product { return s.product }

func (s *Selection) MainImage() string        { return s.mainImage }
func (s *Selection) Color() string            { return s.color }
func (s *Selection) Size() string             { return s.size }
func (s *Selection) PostalCode() string       { return s.postalCode }
func (s *Selection) LookupGeneration() uint64 { return s.generation }

// Images returns the gallery currently shown
func (s *Selection) Images() []catalog.Image {
	return slices.Clone(s.images)
}

// AvailableSizes is empty until a color is chosen
func (s *Selection) AvailableSizes() []string {
	v, ok := s.Variant()
	if !ok {
		return []string{}
	}
	return slices.Clone(v.Sizes)
}

// Address returns the resolved delivery address, if any
func (s *Selection) Address() (shipping.Address, bool) {
	if s.address == nil {
		return shipping.Address{}, false
	}
	return *s.address, true
}

// Variant returns the chosen variant
func (s *Selection) Variant() (catalog.Variant, bool) {
	if s.color == "" {
		return catalog.Variant{}, false
	}
	return s.product.Variant(s.color)
}

// State reports how far the visitor got choosing the variant
func (s *Selection) State() SelectionState {
	switch {
	case s.color == "":
		return StateNoColor
	case s.size == "":
		return StateColor
	default:
		return StateComplete
	}
}

// SelectColor switches the gallery and size list to the chosen color, resets the
// main image to its first picture and drops a size the color does not offer.
func (s *Selection) SelectColor(color string) error {
	v, ok := s.product.Variant(color)
	if !ok {
		return ErrUnknownColor
	}
	s.applyVariant(v)
	if s.size != "" && !v.OffersSize(s.size) {
		s.size = ""
	}
	return nil
}

func (s *Selection) applyVariant(v catalog.Variant) {
	s.color = v.Color
	s.images = v.Images
	s.mainImage = v.PrimaryImage()
}

// SelectSize chooses a size offered by the current color
func (s *Selection) SelectSize(size string) error {
	v, ok := s.Variant()
	if !ok {
		return ErrSizeNeedsColor
	}
	if !v.OffersSize(size) {
		return ErrSizeUnavailable
	}
	s.size = size
	return nil
}

// SelectImage shows one of the current gallery's pictures as the main image
func (s *Selection) SelectImage(url string) error {
	if !slices.ContainsFunc(s.images, func(img catalog.Image) bool { return img.URL == url }) {
		return ErrImageUnavailable
	}
	s.mainImage = url
	return nil
}

// SetPostalCode stores the masked postal code input and returns it. Any lookup
// still in flight for the previous input becomes stale. A resolved address is
// kept until the next lookup completes.
func (s *Selection) SetPostalCode(input string) string {
	masked := valueobject.FormatPostalCodeInput(input)
	if masked != s.postalCode {
		s.generation++
	}
	s.postalCode = masked
	return masked
}

// BeginLookup validates the current postal code and starts a lookup for it.
// The returned generation must be handed back to CompleteLookup.
func (s *Selection) BeginLookup() (valueobject.PostalCode, uint64, error) {
	code, err := valueobject.NewPostalCode(s.postalCode)
	if err != nil {
		return "", 0, shared.ErrInvalidPostalCode
	}
	s.generation++
	return code, s.generation, nil
}

// CompleteLookup applies a lookup result. A result whose generation is no longer
// current is discarded with ErrStaleLookup; any lookup error clears the address.
func (s *Selection) CompleteLookup(generation uint64, addr *shipping.Address, lookupErr error) error {
	if generation != s.generation {
		return shared.ErrStaleLookup
	}
	if lookupErr != nil || addr == nil {
		s.address = nil
		return lookupErr
	}
	resolved := *addr
	s.address = &resolved
	return nil
}

// CartItem builds the cart line for the chosen variant: one unit shown with the
// color's first picture.
func (s *Selection) CartItem() (cart.LineItem, error) {
	v, ok := s.Variant()
	if !ok || s.size == "" {
		return cart.LineItem{}, shared.ErrSelectionIncomplete
	}
	return cart.LineItem{
		ProductID: s.product.ID,
		Name:      s.product.Name,
		Price:     s.product.Price,
		Image:     v.PrimaryImage(),
		Color:     v.Color,
		ColorName: v.ColorName,
		Size:      s.size,
		Quantity:  1,
	}, nil
}

// WishlistEntry builds the wishlist entry for the chosen color
func (s *Selection) WishlistEntry() (wishlist.Entry, error) {
	v, ok := s.Variant()
	if !ok {
		return wishlist.Entry{}, shared.ErrColorRequired
	}
	return wishlist.Entry{
		ProductID: s.product.ID,
		Name:      s.product.Name,
		Price:     s.product.Price,
		Image:     v.PrimaryImage(),
		Color:     v.Color,
		ColorName: v.ColorName,
	}, nil
}
