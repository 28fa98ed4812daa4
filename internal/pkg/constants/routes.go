package constants

// Static route constants
const (
	APIRoute   = "/api"
	APIV1Route = "/v1"

	ProductsRoute      = "/products"
	CartRoute          = "/cart"
	CheckoutRoute      = "/checkout"
	OrdersRoute        = "/orders"
	AddressesRoute     = "/addresses"
	SubscriptionsRoute = "/subscriptions"
	AdminRoute         = "/admin"
)
