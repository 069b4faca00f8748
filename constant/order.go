package constant

// OrderStatus values are compared case-sensitively against what the marketplace returns.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusAccepted       OrderStatus = "Accepted"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusReadyForPickup OrderStatus = "Ready for Pickup"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatusFlow is the forward order of the lifecycle. Cancelled sits outside of it.
var OrderStatusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "Cash on Delivery"
	PaymentMethodCard PaymentMethod = "Card Payment"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPlaced    PaymentStatus = "Placed"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)
