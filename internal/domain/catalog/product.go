package catalog

import (
	"slices"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

// Image is one picture of a product variant
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Variant is a color option of the product with the sizes and pictures offered in it
type Variant struct {
	Color     string   `json:"color"`
	ColorName string   `json:"color_name"`
	Sizes     []string `json:"sizes"`
	Images    []Image  `json:"images"`
}

// OffersSize reports whether size is sold in this color
func (v Variant) OffersSize(size string) bool {
	return slices.Contains(v.Sizes, size)
}

// HasImage reports whether url is one of the variant's pictures
func (v Variant) HasImage(url string) bool {
	return slices.ContainsFunc(v.Images, func(img Image) bool { return img.URL == url })
}

// PrimaryImage returns the first picture URL, or "" for a variant without pictures
func (v Variant) PrimaryImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0].URL
}

// Product is the item sold by the storefront. It is immutable once built.
type Product struct {
	ID          string
	Name        string
	Price       valueobject.Money
	ListPrice   valueobject.Money
	Badge       string
	Rating      int
	ReviewCount int
	Description []string
	Features    []string
	Variants    []Variant
}

// DiscountPercent is the "% OFF" shown next to the list price
func (p *Product) DiscountPercent() int {
	return p.Price.DiscountPercentFrom(p.ListPrice)
}

// Variant looks up the variant sold in color
func (p *Product) Variant(color string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Color == color {
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariant is the variant the product page opens with
func (p *Product) DefaultVariant() Variant {
	if len(p.Variants) == 0 {
		return Variant{}
	}
	return p.Variants[0]
}

// Catalog holds the products the storefront can render
type Catalog interface {
	Product(id string) (*Product, bool)
	Featured() *Product
}

// StaticCatalog serves a fixed product list loaded at startup
type StaticCatalog struct {
	products []*Product
}

// NewStaticCatalog builds a catalog whose first product is the featured one.
// It panics on an empty list because the storefront cannot render without a product.
func NewStaticCatalog(products ...*Product) *StaticCatalog {
	if len(products) == 0 {
		panic("catalog: at least one product is required")
	}
	return &StaticCatalog{products: products}
}

// Product returns the product with the given id
func (c *StaticCatalog) Product(id string) (*Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Featured returns the product shown on the product page
func (c *StaticCatalog) Featured() *Product {
	return c.products[0]
}

var _ Catalog = (*StaticCatalog)(nil)
