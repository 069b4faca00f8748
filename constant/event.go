package constant

const (
	EventExchange   = "marketplace_events"
	InvalidateQueue = "cache_invalidation_queue"

	EventOrderCreated        = "order.created"
	EventOrderCancelled      = "order.cancelled"
	EventOrderStatus         = "order.status"
	EventPaymentCompleted    = "payment.completed"
	EventVerificationDecided = "verification.decided"
	EventDeliveryUpdated     = "delivery.updated"

	TopicDriverLocation = "driver.location"
)
