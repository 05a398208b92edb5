package storefront

import (
	"errors"
	"fmt"

	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
)

// NoticeVariant selects how a notice is styled
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeSuccess     NoticeVariant = "success"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a transient message shown to the visitor after an action
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

var (
	NoticeInvalidPostalCode = Notice{
		Title:       "CEP inválido",
		Description: "Por favor, digite um CEP válido com 8 dígitos.",
		Variant:     NoticeDestructive,
	}
	NoticePostalCodeNotFound = Notice{
		Title:       "CEP não encontrado",
		Description: "Não foi possível encontrar o endereço para este CEP.",
		Variant:     NoticeDestructive,
	}
	NoticeLookupFailed = Notice{
		Title:       "Erro ao consultar CEP",
		Description: "Ocorreu um erro ao consultar o CEP. Tente novamente.",
		Variant:     NoticeDestructive,
	}
	NoticeSelectOptions = Notice{
		Title:       "Selecione as opções",
		Description: "Por favor, selecione cor e tamanho antes de adicionar ao carrinho.",
		Variant:     NoticeDestructive,
	}
	NoticeSelectColor = Notice{
		Title:       "Selecione uma cor",
		Description: "Por favor, selecione uma cor antes de adicionar à lista de desejos.",
		Variant:     NoticeDestructive,
	}
)

// NoticeAddedToCart confirms a committed cart action
func NoticeAddedToCart(item cart.LineItem) Notice {
	return Notice{
		Title:       "Produto adicionado ao carrinho",
		Description: fmt.Sprintf("%s - %s, Tamanho %s", item.Name, item.ColorName, item.Size),
		Variant:     NoticeSuccess,
	}
}

// NoticeAddedToWishlist confirms a saved product
func NoticeAddedToWishlist(e wishlist.Entry) Notice {
	return Notice{
		Title:       "Produto adicionado à lista de desejos",
		Description: fmt.Sprintf("%s - %s", e.Name, e.ColorName),
		Variant:     NoticeSuccess,
	}
}

// NoticeRemovedFromWishlist confirms a removed product
func NoticeRemovedFromWishlist(e wishlist.Entry) Notice {
	return Notice{
		Title:       "Produto removido da lista de desejos",
		Description: fmt.Sprintf("%s - %s", e.Name, e.ColorName),
		Variant:     NoticeDefault,
	}
}

// NoticeForError returns the notice shown for a rejected action, if err has one
func NoticeForError(err error) (Notice, bool) {
	switch {
	case errors.Is(err, shared.ErrInvalidPostalCode):
		return NoticeInvalidPostalCode, true
	case errors.Is(err, shared.ErrPostalCodeNotFound):
		return NoticePostalCodeNotFound, true
	case errors.Is(err, shared.ErrAddressLookupFailed):
		return NoticeLookupFailed, true
	case errors.Is(err, shared.ErrSelectionIncomplete):
		return NoticeSelectOptions, true
	case errors.Is(err, shared.ErrColorRequired):
		return NoticeSelectColor, true
	default:
		return Notice{}, false
	}
}
