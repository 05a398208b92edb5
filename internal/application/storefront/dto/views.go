// Package dto holds the read models the storefront services return.
package dto

import (
	"fmt"
	"time"

	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/domain/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
)

// Fixed texts of the cart drawer and wishlist page
const (
	StoreName            = "Montink Store"
	EmptyCartTitle       = "Seu carrinho está vazio"
	EmptyCartDescription = "Adicione produtos ao seu carrinho para continuar comprando."
	ShippingAtCheckout   = "Calculado no checkout"
	ShippingNotice       = "O frete será calculado na página de pagamento."
	EmptyWishlistTitle   = "Sua lista de desejos está vazia"
	EmptyWishlistDetail  = "Adicione produtos à sua lista de desejos para encontrá-los facilmente mais tarde."
	WishlistPageTitle    = "Minha Lista de Desejos"
)

// PriceView is a BRL amount with its pt-BR rendering
type PriceView struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// NewPriceView converts a money value
func NewPriceView(m valueobject.Money) PriceView {
	return PriceView{
		Amount:    m.Amount().StringFixed(2),
		Currency:  string(m.Currency()),
		Formatted: m.Format(),
	}
}

// CartLineView is one cart line as the drawer lists it
type CartLineView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Color        string    `json:"color"`
	ColorName    string    `json:"color_name"`
	Size         string    `json:"size"`
	Quantity     int       `json:"quantity"`
	UnitPrice    PriceView `json:"unit_price"`
	Total        PriceView `json:"total"`
	CanDecrement bool      `json:"can_decrement"`
}

// CartView is the visitor's cart with its derived totals
type CartView struct {
	Items      []CartLineView `json:"items"`
	LineCount  int            `json:"line_count"`
	TotalItems int            `json:"total_items"`
	Subtotal   PriceView      `json:"subtotal"`
	IsOpen     bool           `json:"is_open"`
}

// ToCartView converts the cart aggregate
func ToCartView(c *cart.Cart, open bool) *CartView {
	items := c.Items()
	lines := make([]CartLineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLineView{
			ID:           item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			Color:        item.Color,
			ColorName:    item.ColorName,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    NewPriceView(item.Price),
			Total:        NewPriceView(item.Total()),
			CanDecrement: item.Quantity > 1,
		})
	}
	return &CartView{
		Items:      lines,
		LineCount:  c.LineCount(),
		TotalItems: c.TotalItems(),
		Subtotal:   NewPriceView(c.Subtotal()),
		IsOpen:     open,
	}
}

// DrawerView is everything the cart drawer renders
type DrawerView struct {
	Open             bool           `json:"open"`
	Title            string         `json:"title"`
	Empty            bool           `json:"empty"`
	EmptyTitle       string         `json:"empty_title,omitempty"`
	EmptyDescription string         `json:"empty_description,omitempty"`
	Lines            []CartLineView `json:"lines"`
	Subtotal         PriceView      `json:"subtotal"`
	Shipping         string         `json:"shipping"`
	ShippingNotice   string         `json:"shipping_notice,omitempty"`
	Total            PriceView      `json:"total"`
}

// ToDrawerView builds the drawer from a cart view. Shipping is not charged here,
// so the total equals the subtotal.
func ToDrawerView(c *CartView) *DrawerView {
	d := &DrawerView{
		Open:     c.IsOpen,
		Title:    fmt.Sprintf("Carrinho (%d)", c.TotalItems),
		Empty:    len(c.Items) == 0,
		Lines:    c.Items,
		Subtotal: c.Subtotal,
		Shipping: ShippingAtCheckout,
		Total:    c.Subtotal,
	}
	if d.Empty {
		d.EmptyTitle = EmptyCartTitle
		d.EmptyDescription = EmptyCartDescription
	} else {
		d.ShippingNotice = ShippingNotice
	}
	return d
}

// WishlistEntryView is one saved product
type WishlistEntryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Color     string    `json:"color"`
	ColorName string    `json:"color_name"`
	Price     PriceView `json:"price"`
}

// WishlistView is the wishlist page
type WishlistView struct {
	Title            string              `json:"title"`
	Items            []WishlistEntryView `json:"items"`
	Count            int                 `json:"count"`
	Empty            bool                `json:"empty"`
	EmptyTitle       string              `json:"empty_title,omitempty"`
	EmptyDescription string              `json:"empty_description,omitempty"`
}

// ToWishlistView converts the wishlist aggregate
func ToWishlistView(w *wishlist.Wishlist) *WishlistView {
	entries := w.Entries()
	v := &WishlistView{
		Title: WishlistPageTitle,
		Items: make([]WishlistEntryView, 0, len(entries)),
		Count: len(entries),
		Empty: len(entries) == 0,
	}
	for _, e := range entries {
		v.Items = append(v.Items, WishlistEntryView{
			ID:        e.ProductID,
			Name:      e.Name,
			Image:     e.Image,
			Color:     e.Color,
			ColorName: e.ColorName,
			Price:     NewPriceView(e.Price),
		})
	}
	if v.Empty {
		v.EmptyTitle = EmptyWishlistTitle
		v.EmptyDescription = EmptyWishlistDetail
	}
	return v
}

// HeaderView holds the header badges. A zero count hides its badge.
type HeaderView struct {
	StoreName     string `json:"store_name"`
	CartCount     int    `json:"cart_count"`
	WishlistCount int    `json:"wishlist_count"`
}

// ProductView is the catalog product as the page shows it
type ProductView struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Badge           string            `json:"badge"`
	Rating          int               `json:"rating"`
	ReviewCount     int               `json:"review_count"`
	Price           PriceView         `json:"price"`
	ListPrice       PriceView         `json:"list_price"`
	DiscountPercent int               `json:"discount_percent"`
	Description     []string          `json:"description"`
	Features        []string          `json:"features"`
	Variants        []catalog.Variant `json:"variants"`
}

// ToProductView converts a catalog product
func ToProductView(p *catalog.Product) *ProductView {
	return &ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Badge:           p.Badge,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Price:           NewPriceView(p.Price),
		ListPrice:       NewPriceView(p.ListPrice),
		DiscountPercent: p.DiscountPercent(),
		Description:     p.Description,
		Features:        p.Features,
		Variants:        p.Variants,
	}
}

// AddressView is a resolved address with its display lines
type AddressView struct {
	shipping.Address
	Lines []string `json:"lines"`
}

// ShippingOptionView is one delivery tier
type ShippingOptionView struct {
	Name  string    `json:"name"`
	Price PriceView `json:"price"`
}

// PageView is the product page state of one visitor
type PageView struct {
	Product            *ProductView         `json:"product"`
	State              string               `json:"state"`
	MainImage          string               `json:"main_image"`
	Images             []catalog.Image      `json:"images"`
	SelectedColor      string               `json:"selected_color"`
	SelectedColorName  string               `json:"selected_color_name"`
	SelectedSize       string               `json:"selected_size"`
	AvailableSizes     []string             `json:"available_sizes"`
	PostalCode         string               `json:"postal_code"`
	PostalCodeComplete bool                 `json:"postal_code_complete"`
	Address            *AddressView         `json:"address"`
	ShippingOptions    []ShippingOptionView `json:"shipping_options"`
	InWishlist         bool                 `json:"in_wishlist"`
	CanAddToCart       bool                 `json:"can_add_to_cart"`
	LookupGeneration   uint64               `json:"lookup_generation"`
}

// ToPageView renders a selection. Shipping options appear once an address is resolved.
func ToPageView(s *storefront.Selection, inWishlist bool) *PageView {
	v := &PageView{
		Product:            ToProductView(s.Product()),
		State:              string(s.State()),
		MainImage:          s.MainImage(),
		Images:             s.Images(),
		SelectedColor:      s.Color(),
		SelectedSize:       s.Size(),
		AvailableSizes:     s.AvailableSizes(),
		PostalCode:         s.PostalCode(),
		PostalCodeComplete: valueobject.IsPostalCodeComplete(s.PostalCode()),
		ShippingOptions:    []ShippingOptionView{},
		InWishlist:         inWishlist,
		CanAddToCart:       s.State() == storefront.StateComplete,
		LookupGeneration:   s.LookupGeneration(),
	}
	if variant, ok := s.Variant(); ok {
		v.SelectedColorName = variant.ColorName
	}
	if addr, ok := s.Address(); ok {
		v.Address = &AddressView{Address: addr, Lines: addr.Lines()}
		for _, opt := range shipping.Options() {
			v.ShippingOptions = append(v.ShippingOptions, ShippingOptionView{Name: opt.Name, Price: NewPriceView(opt.Price)})
		}
	}
	return v
}

// PendingView is a staged action waiting for the visitor's answer
type PendingView struct {
	ID        string                `json:"id"`
	Kind      storefront.ActionKind `json:"kind"`
	Prompt    storefront.Prompt     `json:"prompt"`
	StagedAt  time.Time             `json:"staged_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// ToPendingView converts a pending action
func ToPendingView(a *storefront.PendingAction) *PendingView {
	return &PendingView{
		ID:        a.ID,
		Kind:      a.Kind,
		Prompt:    a.Prompt,
		StagedAt:  a.StagedAt,
		ExpiresAt: a.StagedAt.Add(storefront.ConfirmationTTL),
	}
}

// ConfirmResult reports a committed action
type ConfirmResult struct {
	Kind   storefront.ActionKind `json:"kind"`
	Notice storefront.Notice     `json:"notice"`
	Header HeaderView            `json:"header"`
}
