package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/controllers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/middleware"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", controllers.SignUpSeller)
	auth.Post("/login", controllers.SignInSeller)
	auth.Get("/me", middleware.DeserializeSeller, controllers.GetMe)

	links := api.Group("/checkout-links")
	links.Post("/", middleware.DeserializeSeller, controllers.CreateCheckoutLink)
	links.Get("/", middleware.DeserializeSeller, controllers.GetCheckoutLinks)
	links.Get("/:sellerSlug/:checkoutSlug", controllers.GetCheckoutLinkBySlug)
	links.Post("/:sellerSlug/:checkoutSlug/visit", controllers.TrackVisit)
	links.Get("/:id", middleware.DeserializeSeller, controllers.GetCheckoutLink)
	links.Patch("/:id", middleware.DeserializeSeller, controllers.UpdateCheckoutLink)
	links.Delete("/:id", middleware.DeserializeSeller, controllers.DeleteCheckoutLink)

	orders := api.Group("/orders")
	orders.Post("/", controllers.CreateOrder)
	orders.Get("/", middleware.DeserializeSeller, controllers.GetOrders)
	orders.Patch("/", middleware.DeserializeSeller, controllers.UpdateOrderStatus)
	orders.Get("/:id", controllers.GetOrder)

	customers := api.Group("/customers", middleware.DeserializeSeller)
	customers.Get("/", controllers.GetCustomers)
	customers.Get("/:id", controllers.GetCustomer)

	api.Post("/upload", middleware.DeserializeSeller, controllers.UploadImage)

	SetupWebsocketRoute(app)
}
