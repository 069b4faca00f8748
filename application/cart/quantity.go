package cart

import (
	"strconv"

	"github.com/muhammadheryan/food-delivery/model"
)

// ClampQuantity bounds q to [1, stock]. Stock below one still leaves a single unit so the line
// can be shown and removed.
func ClampQuantity(q, stock int) int {
	upper := stock
	if upper < 1 {
		upper = 1
	}
	if q < 1 {
		return 1
	}
	if q > upper {
		return upper
	}
	return q
}

// Increment is a no-op at stock.
func Increment(q, stock int) int {
	return ClampQuantity(q+1, stock)
}

// Decrement is a no-op at one.
func Decrement(q, stock int) int {
	return ClampQuantity(q-1, stock)
}

func LineTotal(item model.CartItem) float64 {
	return item.MenuItem.Price * float64(item.Quantity)
}

func GrandTotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += LineTotal(it)
	}
	return total
}

// FormatAmount renders an amount with two decimals, e.g. 200 -> "200.00".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func newView(items []model.CartItem) *model.CartView {
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.CartView{
		Items:      items,
		GrandTotal: FormatAmount(GrandTotal(items)),
	}
}

func findLine(items []model.CartItem, itemID string) (model.CartItem, bool) {
	for _, it := range items {
		if it.MenuItem.ID == itemID || it.ID == itemID {
			return it, true
		}
	}
	return model.CartItem{}, false
}
