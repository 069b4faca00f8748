package model

type CartItem struct {
	ID       string   `json:"_id"`
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

type AddToCartRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// CartView is the cart as rendered: lines plus the formatted grand total.
type CartView struct {
	Items      []CartItem `json:"items"`
	GrandTotal string     `json:"grand_total"`
}

// DeliveryForm is the checkout form.
type DeliveryForm struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"len=10,digits"`
	Address string `json:"address" validate:"notblank"`
}

type CreateOrderRequest struct {
	Address string `json:"address"`
	Contact string `json:"contact"`
}

type CheckoutResponse struct {
	OrderID  string `json:"order_id"`
	NextStep string `json:"next_step"`
}
