package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so wrapped
// copies of the sentinels below match with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Storefront errors
var (
	ErrInvalidPostalCode   = NewDomainError("INVALID_POSTAL_CODE", "Por favor, digite um CEP válido com 8 dígitos.")
	ErrPostalCodeNotFound  = NewDomainError("POSTAL_CODE_NOT_FOUND", "Não foi possível encontrar o endereço para este CEP.")
	ErrAddressLookupFailed = NewDomainError("ADDRESS_LOOKUP_FAILED", "Ocorreu um erro ao consultar o CEP. Tente novamente.")
	ErrSelectionIncomplete = NewDomainError("SELECTION_INCOMPLETE", "Por favor, selecione cor e tamanho antes de adicionar ao carrinho.")
	ErrColorRequired       = NewDomainError("COLOR_REQUIRED", "Por favor, selecione uma cor antes de adicionar à lista de desejos.")
	ErrInvalidSelection    = NewDomainError("INVALID_SELECTION", "Opção indisponível para este produto")
	ErrNoPendingAction     = NewDomainError("NO_PENDING_ACTION", "Nenhuma ação aguardando confirmação")
	ErrStaleLookup         = NewDomainError("STALE_LOOKUP", "O CEP foi alterado durante a consulta")
)
