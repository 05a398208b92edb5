package viacep

import "github.com/gustavohenri316/Montink-Store/internal/domain/shipping"

// addressResponse is the body of GET /ws/{cep}/json/
type addressResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	// true (or "true" on newer deployments) when the code does not exist
	Erro any `json:"erro,omitempty"`
}

func (r *addressResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func (r *addressResponse) toAddress(fallbackCEP string) *shipping.Address {
	cep := r.CEP
	if cep == "" {
		cep = fallbackCEP
	}
	return &shipping.Address{
		PostalCode:   cep,
		Street:       r.Logradouro,
		Complement:   r.Complemento,
		Neighborhood: r.Bairro,
		City:         r.Localidade,
		State:        r.UF,
	}
}
