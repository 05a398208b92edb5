package wishlist

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

func entry(id, color string) Entry {
	return Entry{
		ProductID: id,
		Name:      "Tênis Nike Court Vision Low Next Nature Masculino",
		Price:     valueobject.MustBRL("299.90"),
		Image:     "/images/tenis-1.png",
		Color:     color,
		ColorName: "Branco",
	}
}

func TestWishlist_AddIsIdempotentPerProduct(t *testing.T) {
	w := &Wishlist{}

	assert.True(t, w.Add(entry("nike-court-vision-low", "#FFFFFF")))
	assert.False(t, w.Add(entry("nike-court-vision-low", "#000000")))

	require.Equal(t, 1, w.Len())
	saved, ok := w.Find("nike-court-vision-low")
	require.True(t, ok)
	assert.Equal(t, "#FFFFFF", saved.Color, "first saved color wins")
}

func TestWishlist_RemoveAndContains(t *testing.T) {
	w, err := New(entry("a", "#FFFFFF"), entry("b", "#000000"))
	require.NoError(t, err)

	assert.True(t, w.Contains("a"))
	assert.True(t, w.Remove("a"))
	assert.False(t, w.Contains("a"))
	assert.False(t, w.Remove("a"))
	assert.Equal(t, []Entry{entry("b", "#000000")}, w.Entries())

	w.Clear()
	assert.Equal(t, 0, w.Len())
}

func TestNew_DropsDuplicatesAndRejectsEmptyIDs(t *testing.T) {
	w, err := New(entry("a", "#FFFFFF"), entry("a", "#000000"))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())

	_, err = New(entry("", "#FFFFFF"))
	assert.Error(t, err)
}

func TestWishlist_RandomOperationsKeepProductsUnique(t *testing.T) {
	f := gofakeit.New(7)
	ids := []string{"a", "b", "c", "d"}
	w := &Wishlist{}

	for range 300 {
		id := f.RandomString(ids)
		if f.Bool() {
			w.Add(entry(id, f.HexColor()))
		} else {
			w.Remove(id)
			require.False(t, w.Contains(id))
		}

		seen := map[string]bool{}
		for _, e := range w.Entries() {
			require.False(t, seen[e.ProductID])
			seen[e.ProductID] = true
		}
	}
}

func TestWishlist_JSON(t *testing.T) {
	w, err := New(entry("a", "#FFFFFF"))
	require.NoError(t, err)

	data, err := json.Marshal(w)
	require.NoError(t, err)

	var restored Wishlist
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, w.Entries(), restored.Entries())

	empty, err := json.Marshal(&Wishlist{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))

	assert.Error(t, json.Unmarshal([]byte(`[{"id":""}]`), &restored))
	assert.Error(t, json.Unmarshal([]byte(`"oops"`), &restored))
}
