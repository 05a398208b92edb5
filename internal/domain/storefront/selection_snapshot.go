package storefront

import (
	"time"

	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
)

// SelectionTTL is how long a saved product page selection stays restorable
const SelectionTTL = 15 * time.Minute

// SelectionSnapshot is the persisted form of a Selection
type SelectionSnapshot struct {
	MainImage        string            `json:"main_image"`
	SelectedColor    string            `json:"selected_color"`
	SelectedSize     string            `json:"selected_size"`
	PostalCode       string            `json:"postal_code"`
	Address          *shipping.Address `json:"address"`
	LookupGeneration uint64            `json:"lookup_generation"`
	Timestamp        int64             `json:"timestamp"` // unix milliseconds
}

// Snapshot captures the selection as of now
func (s *Selection) Snapshot(now time.Time) SelectionSnapshot {
	snap := SelectionSnapshot{
		MainImage:        s.mainImage,
		SelectedColor:    s.color,
		SelectedSize:     s.size,
		PostalCode:       s.postalCode,
		LookupGeneration: s.generation,
		Timestamp:        now.UnixMilli(),
	}
	if s.address != nil {
		addr := *s.address
		snap.Address = &addr
	}
	return snap
}

// Fresh reports whether the snapshot is younger than SelectionTTL
func (snap SelectionSnapshot) Fresh(now time.Time) bool {
	return now.UnixMilli()-snap.Timestamp < SelectionTTL.Milliseconds()
}

// RestoreSelection rebuilds a selection from a snapshot. A stale snapshot yields
// the default selection and false; the caller should then discard it.
//
// A saved color the product no longer sells falls back to the first variant, a
// saved main image outside the variant falls back to its first picture, and a
// saved size the variant does not offer is dropped. The postal code input and
// resolved address are restored as saved.
func RestoreSelection(p *catalog.Product, snap SelectionSnapshot, now time.Time) (*Selection, bool) {
	s := NewSelection(p)
	if !snap.Fresh(now) {
		return s, false
	}

	if v, ok := p.Variant(snap.SelectedColor); ok {
		s.applyVariant(v)
		if v.HasImage(snap.MainImage) {
			s.mainImage = snap.MainImage
		}
		if snap.SelectedSize != "" && v.OffersSize(snap.SelectedSize) {
			s.size = snap.SelectedSize
		}
	} else {
		s.applyVariant(p.DefaultVariant())
	}

	s.postalCode = snap.PostalCode
	s.generation = snap.LookupGeneration
	if snap.Address != nil {
		addr := *snap.Address
		s.address = &addr
	}
	return s, true
}
