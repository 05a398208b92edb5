package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

// Key identifies a cart line: the same product in another color or size is another line
type Key struct {
	ProductID string `json:"id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// LineItem is a product variant the visitor intends to buy
type LineItem struct {
	ProductID string            `json:"id"`
	Name      string            `json:"name"`
	Price     valueobject.Money `json:"price"`
	Image     string            `json:"image"`
	Color     string            `json:"color"`
	ColorName string            `json:"color_name"`
	Size      string            `json:"size"`
	Quantity  int               `json:"quantity"`
}

// Key returns the identity of the line
func (i LineItem) Key() Key {
	return Key{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

// Total is price × quantity
func (i LineItem) Total() valueobject.Money {
	return i.Price.MultiplyByInt(i.Quantity)
}

// Validate checks the invariants every stored line satisfies
func (i LineItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return shared.NewDomainError("INVALID_CART_ITEM", "Product id cannot be empty")
	}
	if i.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if i.Price.IsNegative() || i.Price.Currency() != valueobject.BRL {
		return shared.NewDomainError("INVALID_PRICE", "Price must be a non-negative amount in BRL")
	}
	return nil
}

// Cart is the ordered list of line items. The zero value is an empty cart.
type Cart struct {
	items []LineItem
}

// New builds a cart from previously stored lines, merging lines that share a key
func New(items ...LineItem) (*Cart, error) {
	c := &Cart{}
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the line with the given key
func (c *Cart) Find(key Key) (LineItem, bool) {
	if idx := c.indexOf(key); idx >= 0 {
		return c.items[idx], true
	}
	return LineItem{}, false
}

// Add appends item, or increases the quantity of the line already holding its key
func (c *Cart) Add(item LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if idx := c.indexOf(item.Key()); idx >= 0 {
		c.items[idx].Quantity += item.Quantity
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// Remove deletes the line with key and reports whether one existed
func (c *Cart) Remove(key Key) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// UpdateQuantity sets the quantity of the line with key, never below 1.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(key Key, quantity int) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.items[idx].Quantity = max(1, quantity)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// LineCount is the number of distinct lines
func (c *Cart) LineCount() int {
	return len(c.items)
}

// TotalItems is the sum of all quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of price × quantity over all lines
func (c *Cart) Subtotal() valueobject.Money {
	subtotal := valueobject.ZeroBRL()
	for _, item := range c.items {
		subtotal = subtotal.MustAdd(item.Total())
	}
	return subtotal
}

func (c *Cart) indexOf(key Key) int {
	for idx := range c.items {
		if c.items[idx].Key() == key {
			return idx
		}
	}
	return -1
}

// MarshalJSON stores the cart as a JSON array of lines
func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON restores a cart, rejecting any line that breaks the invariants
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	restored, err := New(items...)
	if err != nil {
		return fmt.Errorf("invalid cart snapshot: %w", err)
	}
	*c = *restored
	return nil
}
