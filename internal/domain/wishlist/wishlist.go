package wishlist

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

// Entry is a product the visitor saved for later. A product appears at most once.
type Entry struct {
	ProductID string            `json:"id"`
	Name      string            `json:"name"`
	Price     valueobject.Money `json:"price"`
	Image     string            `json:"image"`
	Color     string            `json:"color"`
	ColorName string            `json:"color_name"`
}

// Validate checks the invariants every stored entry satisfies
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ProductID) == "" {
		return shared.NewDomainError("INVALID_WISHLIST_ITEM", "Product id cannot be empty")
	}
	return nil
}

// Wishlist is the ordered set of saved products. The zero value is empty.
type Wishlist struct {
	entries []Entry
}

// New builds a wishlist from stored entries; later duplicates of a product are dropped
func New(entries ...Entry) (*Wishlist, error) {
	w := &Wishlist{}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		w.Add(e)
	}
	return w, nil
}

// Entries returns a copy of the entries in insertion order
func (w *Wishlist) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Find returns the entry saved for productID
func (w *Wishlist) Find(productID string) (Entry, bool) {
	idx := slices.IndexFunc(w.entries, func(e Entry) bool { return e.ProductID == productID })
	if idx < 0 {
		return Entry{}, false
	}
	return w.entries[idx], true
}

// Add saves e unless its product is already present, and reports whether it was added
func (w *Wishlist) Add(e Entry) bool {
	if w.Contains(e.ProductID) {
		return false
	}
	w.entries = append(w.entries, e)
	return true
}

// Remove deletes every entry of productID and reports whether any existed
func (w *Wishlist) Remove(productID string) bool {
	before := len(w.entries)
	w.entries = slices.DeleteFunc(w.entries, func(e Entry) bool { return e.ProductID == productID })
	return len(w.entries) != before
}

// Contains reports whether productID is saved
func (w *Wishlist) Contains(productID string) bool {
	return slices.ContainsFunc(w.entries, func(e Entry) bool { return e.ProductID == productID })
}

// Clear empties the wishlist
func (w *Wishlist) Clear() {
	w.entries = nil
}

// Len is the number of saved products
func (w *Wishlist) Len() int {
	return len(w.entries)
}

// MarshalJSON stores the wishlist as a JSON array of entries
func (w *Wishlist) MarshalJSON() ([]byte, error) {
	if w.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w.entries)
}

// UnmarshalJSON restores a wishlist, rejecting entries without a product id
func (w *Wishlist) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	restored, err := New(entries...)
	if err != nil {
		return fmt.Errorf("invalid wishlist snapshot: %w", err)
	}
	*w = *restored
	return nil
}
