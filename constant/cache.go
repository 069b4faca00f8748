package constant

import "fmt"

// Logical resource names shared by every cache reader and writer.
const (
	ResourceCart                    = "cart"
	ResourceOrders                  = "orders"
	ResourceOwnerOrders             = "ownerOrders"
	ResourceDeliveries              = "deliveries"
	ResourceRestaurants             = "restaurants"
	ResourceUnverifiedRestaurants   = "unverifiedRestaurants"
	ResourceDeliveryPartners        = "deliveryPartners"
	ResourceComplaints              = "complaints"
	ResourceCustomerNotifications   = "customerNotifications"
	ResourceRestaurantNotifications = "restaurantNotifications"
	ResourceDriverNotifications     = "driverNotifications"
	ResourceAdminNotifications      = "adminNotifications"
)

// NotificationResource maps a role to its notification cache entry.
var NotificationResource = map[Role]string{
	RoleCustomer:   ResourceCustomerNotifications,
	RoleRestaurant: ResourceRestaurantNotifications,
	RoleDriver:     ResourceDriverNotifications,
	RoleAdmin:      ResourceAdminNotifications,
}

// MenuResource is the cache entry holding one restaurant's menu.
func MenuResource(restaurantID string) string {
	return "menu:" + restaurantID
}

// UserCacheKey scopes a resource to one user: qc:{user_id}:{resource}
func UserCacheKey(userID, resource string) string {
	return fmt.Sprintf("qc:%s:%s", userID, resource)
}

// SharedCacheKey is used for resources that look the same to every caller.
func SharedCacheKey(resource string) string {
	return fmt.Sprintf("qc:shared:%s", resource)
}
