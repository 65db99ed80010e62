package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	r := Receipt{
		OrderID: "ORD001",
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items: []LineItem{
			{Name: "Wireless Earbuds", Quantity: 1, Price: 79.99},
			{Name: "Phone Case", Quantity: 2, Price: 24.99},
		},
		Total:  129.99,
		Status: "delivered",
	}

	html, err := RenderHTML(r)
	require.NoError(t, err)

	t.Run("SectionsInOrder", func(t *testing.T) {
		brand := strings.Index(html, "REFNET")
		greeting := strings.Index(html, "order #ORD001")
		firstItem := strings.Index(html, "Wireless Earbuds")
		secondItem := strings.Index(html, "Phone Case")
		aggregate := strings.Index(html, "Items total")
		total := strings.LastIndex(html, "Total")

		for _, idx := range []int{brand, greeting, firstItem, secondItem, aggregate, total} {
			require.NotEqual(t, -1, idx)
		}
		assert.Less(t, brand, greeting)
		assert.Less(t, greeting, firstItem)
		assert.Less(t, firstItem, secondItem)
		assert.Less(t, secondItem, aggregate)
		assert.Less(t, aggregate, total)
	})

	t.Run("PerItemAmounts", func(t *testing.T) {
		assert.Contains(t, html, "$79.99")
		// 2 × 24.99
		assert.Contains(t, html, "$49.98")
	})

	t.Run("AggregateRow", func(t *testing.T) {
		assert.Contains(t, html, "Quantity: 3")
		// 79.99 + 49.98, independent from the stored total below.
		assert.Contains(t, html, "$129.97")
	})

	t.Run("StoredTotalVerbatim", func(t *testing.T) {
		assert.Contains(t, html, "$129.99")
	})
}

func TestRenderHTML_ZeroQuantity(t *testing.T) {
	r := Receipt{
		OrderID: "ORD009",
		Items:   []LineItem{{Name: "Power Bank", Quantity: 0, Price: 49.99}},
	}

	html, err := RenderHTML(r)
	require.NoError(t, err)
	assert.Contains(t, html, "Quantity: 0")
	assert.Contains(t, html, "$0.00")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$30.00", FormatPrice(30))
	assert.Equal(t, "$129.99", FormatPrice(129.99))
}
