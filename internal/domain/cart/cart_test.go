package cart

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

func sneaker(color, size string, quantity int) LineItem {
	return LineItem{
		ProductID: "nike-court-vision-low",
		Name:      "Tênis Nike Court Vision Low Next Nature Masculino",
		Price:     valueobject.MustBRL("299.90"),
		Image:     "/images/tenis-1.png",
		Color:     color,
		ColorName: "Branco",
		Size:      size,
		Quantity:  quantity,
	}
}

func TestCart_AddMergesSameKey(t *testing.T) {
	c := &Cart{}

	require.NoError(t, c.Add(sneaker("#FFFFFF", "40", 1)))
	require.NoError(t, c.Add(sneaker("#FFFFFF", "40", 2)))

	require.Equal(t, 1, c.LineCount())
	assert.Equal(t, 3, c.Items()[0].Quantity)
	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, c.Subtotal().Equals(valueobject.MustBRL("899.70")))
}

func TestCart_AddDistinctKeys(t *testing.T) {
	c := &Cart{}

	require.NoError(t, c.Add(sneaker("#FFFFFF", "40", 1)))
	require.NoError(t, c.Add(sneaker("#FFFFFF", "41", 1)))
	require.NoError(t, c.Add(sneaker("#000000", "40", 1)))

	assert.Equal(t, 3, c.LineCount())
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "41", c.Items()[1].Size)
}

func TestCart_AddRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		code string
	}{
		{"zero quantity", sneaker("#FFFFFF", "40", 0), "INVALID_QUANTITY"},
		{"missing id", LineItem{Quantity: 1, Price: valueobject.ZeroBRL()}, "INVALID_CART_ITEM"},
		{"negative price", LineItem{ProductID: "x", Quantity: 1, Price: valueobject.MustBRL("-1")}, "INVALID_PRICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cart{}
			err := c.Add(tt.item)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.True(t, c.IsEmpty())
		})
	}
}

func TestCart_RemoveMatchesFullKey(t *testing.T) {
	c, err := New(sneaker("#FFFFFF", "40", 1), sneaker("#FFFFFF", "41", 1))
	require.NoError(t, err)

	assert.False(t, c.Remove(Key{ProductID: "nike-court-vision-low", Color: "#000000", Size: "40"}))
	assert.Equal(t, 2, c.LineCount())

	assert.True(t, c.Remove(Key{ProductID: "nike-court-vision-low", Color: "#FFFFFF", Size: "40"}))
	require.Equal(t, 1, c.LineCount())
	assert.Equal(t, "41", c.Items()[0].Size)
}

func TestCart_UpdateQuantity(t *testing.T) {
	key := Key{ProductID: "nike-court-vision-low", Color: "#FFFFFF", Size: "40"}

	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"raise", 5, 5},
		{"one", 1, 1},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(sneaker("#FFFFFF", "40", 2), sneaker("#FFFFFF", "41", 2))
			require.NoError(t, err)

			assert.True(t, c.UpdateQuantity(key, tt.quantity))

			line, ok := c.Find(key)
			require.True(t, ok)
			assert.Equal(t, tt.want, line.Quantity)

			other, _ := c.Find(Key{ProductID: key.ProductID, Color: "#FFFFFF", Size: "41"})
			assert.Equal(t, 2, other.Quantity, "sibling line of the same product must not change")
		})
	}

	t.Run("missing line", func(t *testing.T) {
		c := &Cart{}
		assert.False(t, c.UpdateQuantity(key, 3))
	})
}

func TestCart_Clear(t *testing.T) {
	c, err := New(sneaker("#FFFFFF", "40", 2))
	require.NoError(t, err)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c, err := New(sneaker("#FFFFFF", "40", 1))
	require.NoError(t, err)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.TotalItems())
}

// Random add/update/remove sequences must keep every line unique and positive,
// and the aggregates must always equal a fresh recomputation.
func TestCart_RandomOperationsKeepInvariants(t *testing.T) {
	f := gofakeit.New(42)
	colors := []string{"#FFFFFF", "#000000", "#f54500", "#1f4618"}
	sizes := []string{"38", "39", "40", "41", "42", "43"}

	c := &Cart{}
	for range 500 {
		key := Key{
			ProductID: f.RandomString([]string{"nike-court-vision-low", "air-max"}),
			Color:     f.RandomString(colors),
			Size:      f.RandomString(sizes),
		}

		switch f.Number(0, 2) {
		case 0:
			item := sneaker(key.Color, key.Size, f.Number(1, 5))
			item.ProductID = key.ProductID
			require.NoError(t, c.Add(item))
		case 1:
			c.UpdateQuantity(key, f.Number(-2, 6))
		default:
			c.Remove(key)
		}

		seen := map[Key]bool{}
		total := 0
		subtotal := valueobject.ZeroBRL()
		for _, line := range c.Items() {
			require.False(t, seen[line.Key()], "duplicate key %v", line.Key())
			require.GreaterOrEqual(t, line.Quantity, 1)
			seen[line.Key()] = true
			total += line.Quantity
			subtotal = subtotal.MustAdd(line.Price.MultiplyByInt(line.Quantity))
		}
		require.Equal(t, total, c.TotalItems())
		require.True(t, subtotal.Equals(c.Subtotal()))
	}
}

func TestCart_JSON(t *testing.T) {
	t.Run("empty cart is an empty array", func(t *testing.T) {
		data, err := json.Marshal(&Cart{})
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("restores lines", func(t *testing.T) {
		original, err := New(sneaker("#FFFFFF", "40", 2), sneaker("#000000", "42", 1))
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var restored Cart
		require.NoError(t, json.Unmarshal(data, &restored))
		assert.Equal(t, original.Items(), restored.Items())
	})

	t.Run("rejects lines breaking invariants", func(t *testing.T) {
		var c Cart
		err := json.Unmarshal([]byte(`[{"id":"x","price":{"amount":"1"},"quantity":0}]`), &c)
		assert.ErrorContains(t, err, "invalid cart snapshot")
	})

	t.Run("rejects non-array payloads", func(t *testing.T) {
		var c Cart
		assert.Error(t, json.Unmarshal([]byte(`{"items":[]}`), &c))
	})
}
