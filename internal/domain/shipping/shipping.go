package shipping

import (
	"context"
	"fmt"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

// Address is the delivery address resolved from a postal code
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Lines renders the address the way the delivery box shows it
func (a Address) Lines() []string {
	return []string{
		fmt.Sprintf("%s, %s", a.Street, a.Neighborhood),
		fmt.Sprintf("%s - %s, %s", a.City, a.State, a.PostalCode),
	}
}

// Option is a delivery tier offered once an address is known
type Option struct {
	Name  string            `json:"name"`
	Price valueobject.Money `json:"price"`
}

var options = []Option{
	{Name: "Entrega padrão", Price: valueobject.MustBRL("19.90")},
	{Name: "Entrega expressa", Price: valueobject.MustBRL("29.90")},
}

// Options returns the flat-rate delivery tiers. They do not depend on the address.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// AddressLookup resolves postal codes to addresses.
//
// Implementations return an error matching shared.ErrPostalCodeNotFound when the
// code does not exist and shared.ErrAddressLookupFailed for any other failure.
type AddressLookup interface {
	Lookup(ctx context.Context, code valueobject.PostalCode) (*Address, error)
}
