package storefront

import (
	"fmt"
	"time"

	"github.com/gustavohenri316/Montink-Store/internal/domain/cart"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/wishlist"
)

// ActionKind is what a confirmation commits
type ActionKind string

const (
	ActionCart           ActionKind = "cart"
	ActionWishlistAdd    ActionKind = "wishlist-add"
	ActionWishlistRemove ActionKind = "wishlist-remove"
)

// ConfirmationTTL bounds how long a staged action can still be confirmed
const ConfirmationTTL = 15 * time.Minute

// Prompt is the text of the confirmation dialog
type Prompt struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ConfirmLabel string `json:"confirm_label"`
	CancelLabel  string `json:"cancel_label"`
}

// NewPrompt builds the dialog text for kind. size is only shown for cart actions.
func NewPrompt(kind ActionKind, productName, colorName, size string) Prompt {
	p := Prompt{CancelLabel: "Cancelar"}

	switch kind {
	case ActionCart:
		p.Title = "Adicionar ao Carrinho"
		if size != "" {
			p.Description = fmt.Sprintf("Você está adicionando %s na cor %s, tamanho %s ao seu carrinho.", productName, colorName, size)
		} else {
			p.Description = fmt.Sprintf("Você está adicionando %s na cor %s ao seu carrinho.", productName, colorName)
		}
	case ActionWishlistAdd:
		p.Title = "Adicionar aos Favoritos"
		p.Description = fmt.Sprintf("Você está adicionando %s na cor %s à sua lista de favoritos.", productName, colorName)
	case ActionWishlistRemove:
		p.Title = "Remover dos Favoritos"
		p.Description = fmt.Sprintf("Você está removendo %s na cor %s da sua lista de favoritos.", productName, colorName)
	}
	p.ConfirmLabel = p.Title
	return p
}

// PendingAction is a store mutation staged behind the confirmation dialog.
// Nothing changes until it is confirmed; cancelling discards it.
type PendingAction struct {
	ID            string          `json:"id"`
	Kind          ActionKind      `json:"kind"`
	CartItem      *cart.LineItem  `json:"cart_item,omitempty"`
	WishlistEntry *wishlist.Entry `json:"wishlist_entry,omitempty"`
	Prompt        Prompt          `json:"prompt"`
	StagedAt      time.Time       `json:"staged_at"`
}

// StageCart stages adding item to the cart
func StageCart(id string, item cart.LineItem, now time.Time) *PendingAction {
	return &PendingAction{
		ID:       id,
		Kind:     ActionCart,
		CartItem: &item,
		Prompt:   NewPrompt(ActionCart, item.Name, item.ColorName, item.Size),
		StagedAt: now,
	}
}

// StageWishlistToggle stages adding entry to the wishlist, or removing its product
// when it is already saved. The direction is fixed when the action is staged.
func StageWishlistToggle(id string, entry wishlist.Entry, alreadySaved bool, now time.Time) *PendingAction {
	kind := ActionWishlistAdd
	if alreadySaved {
		kind = ActionWishlistRemove
	}
	return &PendingAction{
		ID:            id,
		Kind:          kind,
		WishlistEntry: &entry,
		Prompt:        NewPrompt(kind, entry.Name, entry.ColorName, ""),
		StagedAt:      now,
	}
}

// Expired reports whether the action can no longer be confirmed
func (a *PendingAction) Expired(now time.Time) bool {
	return now.Sub(a.StagedAt) >= ConfirmationTTL
}

// Resolve checks that id names this action and that it is still live
func (a *PendingAction) Resolve(id string, now time.Time) error {
	if a == nil || a.ID != id || a.Expired(now) {
		return shared.ErrNoPendingAction
	}
	return nil
}

// Validate rejects actions whose payload does not match their kind
func (a *PendingAction) Validate() error {
	switch a.Kind {
	case ActionCart:
		if a.CartItem == nil {
			return fmt.Errorf("pending %s action without cart item", a.Kind)
		}
		return a.CartItem.Validate()
	case ActionWishlistAdd, ActionWishlistRemove:
		if a.WishlistEntry == nil {
			return fmt.Errorf("pending %s action without wishlist entry", a.Kind)
		}
		return a.WishlistEntry.Validate()
	default:
		return fmt.Errorf("unknown pending action kind %q", a.Kind)
	}
}
