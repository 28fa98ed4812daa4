package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/controllers"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/constants"
	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group(constants.APIV1Route)

	// Public routes
	v1.Post("/users/register", controllers.HandleUserRegister)
	v1.Get(constants.ProductsRoute, controllers.HandleProductList)
	v1.Get(constants.ProductsRoute+"/:uuid", controllers.HandleProductGet)

	// Authenticated routes (API key)
	auth := v1.Group("", middleware.APIKeyAuthMiddleware(), middleware.RequireAuth())

	auth.Get("/users/me", controllers.HandleUserMe)

	auth.Get(constants.CartRoute, controllers.HandleCartGet)
	auth.Post(constants.CartRoute+"/items", controllers.HandleCartAddItem)
	auth.Put(constants.CartRoute+"/items/:productId", controllers.HandleCartUpdateItem)
	auth.Delete(constants.CartRoute+"/items/:productId", controllers.HandleCartRemoveItem)

	auth.Post(constants.CheckoutRoute, controllers.HandleCheckout)

	auth.Get(constants.OrdersRoute, controllers.HandleOrderList)
	auth.Get(constants.OrdersRoute+"/:number", controllers.HandleOrderGet)
	auth.Post(constants.OrdersRoute+"/:number/cancel", controllers.HandleOrderCancel)

	auth.Get(constants.AddressesRoute, controllers.HandleAddressList)
	auth.Post(constants.AddressesRoute, controllers.HandleAddressCreate)
	auth.Put(constants.AddressesRoute+"/:id", controllers.HandleAddressUpdate)
	auth.Delete(constants.AddressesRoute+"/:id", controllers.HandleAddressDelete)
	auth.Post(constants.AddressesRoute+"/:id/default", controllers.HandleAddressSetDefault)

	auth.Post(constants.SubscriptionsRoute, controllers.HandleSubscriptionCreate)
	auth.Get(constants.SubscriptionsRoute, controllers.HandleSubscriptionList)
	auth.Get(constants.SubscriptionsRoute+"/:uuid", controllers.HandleSubscriptionGet)
	auth.Post(constants.SubscriptionsRoute+"/:uuid/pause", controllers.HandleSubscriptionPause)
	auth.Post(constants.SubscriptionsRoute+"/:uuid/resume", controllers.HandleSubscriptionResume)
	auth.Post(constants.SubscriptionsRoute+"/:uuid/cancel", controllers.HandleSubscriptionCancel)

	// Admin routes
	admin := v1.Group(constants.AdminRoute, middleware.APIKeyAuthMiddleware(), middleware.RequireAdmin())
	admin.Post(constants.ProductsRoute, controllers.HandleAdminProductCreate)
	admin.Put(constants.ProductsRoute+"/:uuid", controllers.HandleAdminProductUpdate)
	admin.Post(constants.SubscriptionsRoute+"/:uuid/accept", controllers.HandleAdminSubscriptionAccept)
	admin.Put(constants.OrdersRoute+"/:number/status", controllers.HandleAdminOrderStatusUpdate)
	admin.Post("/generation/run", controllers.HandleAdminGenerationRun)
	admin.Get("/generation/last-run", controllers.HandleAdminGenerationLastRun)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
