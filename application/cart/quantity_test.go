package cart_test

import (
	"testing"

	"github.com/muhammadheryan/food-delivery/application/cart"
	"github.com/muhammadheryan/food-delivery/model"
	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name  string
		q     int
		stock int
		want  int
	}{
		{name: "within range", q: 3, stock: 5, want: 3},
		{name: "below one", q: 0, stock: 5, want: 1},
		{name: "negative", q: -4, stock: 5, want: 1},
		{name: "above stock", q: 9, stock: 5, want: 5},
		{name: "no stock keeps one unit", q: 3, stock: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cart.ClampQuantity(tt.q, tt.stock))
		})
	}
}

func TestIncrementDecrement(t *testing.T) {
	assert.Equal(t, 5, cart.Increment(5, 5), "increment at stock is a no-op")
	assert.Equal(t, 4, cart.Increment(3, 5))
	assert.Equal(t, 1, cart.Decrement(1, 5), "decrement at one is a no-op")
	assert.Equal(t, 2, cart.Decrement(3, 5))
}

func TestGrandTotal(t *testing.T) {
	items := []model.CartItem{
		{MenuItem: model.MenuItem{ID: "a", Price: 50}, Quantity: 2},
		{MenuItem: model.MenuItem{ID: "b", Price: 100}, Quantity: 1},
	}
	assert.Equal(t, 200.0, cart.GrandTotal(items))
	assert.Equal(t, "200.00", cart.FormatAmount(cart.GrandTotal(items)))
	assert.Equal(t, "0.00", cart.FormatAmount(cart.GrandTotal(nil)))
	assert.Equal(t, "12.50", cart.FormatAmount(12.5))
}
