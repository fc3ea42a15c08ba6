// Package routes wires the API surface onto the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/ecobazaar/app/controllers"
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
	"github.com/shashiranjanraj/ecobazaar/pkg/rbac"
	"github.com/shashiranjanraj/ecobazaar/pkg/router"
)

// RegisterAPI mounts every endpoint under /api. Role groups layer rbac on
// top of the JWT middleware; admins may also use the buyer and seller
// surfaces.
func RegisterAPI(r *router.Router) {
	authC := controllers.NewAuthController()
	buyerC := controllers.NewBuyerController()
	cartC := controllers.NewCartController()
	sellerC := controllers.NewSellerController()
	adminC := controllers.NewAdminController()
	profileC := controllers.NewProfileController()

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", ctx.Wrap(authC.Signup))
	auth.Post("/login", "auth.login", ctx.Wrap(authC.Login))

	protected := api.Group("", middleware.AuthMiddleware)
	protected.Get("/test", "auth.test", ctx.Wrap(profileC.Test))

	profile := protected.Group("/profile")
	profile.Get("", "profile.show", ctx.Wrap(profileC.Show))
	profile.Put("", "profile.update", ctx.Wrap(profileC.Update))
	profile.Delete("", "profile.delete", ctx.Wrap(profileC.Delete))

	buyer := protected.Group("/buyer", rbac.HasRole(models.RoleBuyer, models.RoleAdmin))
	buyer.Get("/dashboard", "buyer.dashboard", ctx.Wrap(buyerC.Dashboard))
	buyer.Get("/products", "buyer.products", ctx.Wrap(buyerC.Products))
	buyer.Get("/products/{id}", "buyer.products.show", ctx.Wrap(buyerC.Product))
	buyer.Get("/orders", "buyer.orders", ctx.Wrap(buyerC.Orders))
	buyer.Get("/orders/{id}", "buyer.orders.show", ctx.Wrap(buyerC.Order))
	buyer.Get("/cart", "buyer.cart", ctx.Wrap(cartC.Items))
	buyer.Post("/cart/add", "buyer.cart.add", ctx.Wrap(cartC.Add))
	buyer.Put("/cart/{id}", "buyer.cart.update", ctx.Wrap(cartC.Update))
	buyer.Delete("/cart/{id}", "buyer.cart.remove", ctx.Wrap(cartC.Remove))
	buyer.Post("/cart/checkout", "buyer.cart.checkout", ctx.Wrap(cartC.Checkout))

	seller := protected.Group("/seller", rbac.HasRole(models.RoleSeller, models.RoleAdmin))
	seller.Get("/dashboard", "seller.dashboard", ctx.Wrap(sellerC.Dashboard))
	seller.Get("/products", "seller.products", ctx.Wrap(sellerC.Products))
	seller.Post("/products", "seller.products.create", ctx.Wrap(sellerC.Create))
	seller.Delete("/products/{id}", "seller.products.delete", ctx.Wrap(sellerC.Delete))
	seller.Post("/products/{id}/image", "seller.products.image", ctx.Wrap(sellerC.UploadImage))

	admin := protected.Group("/admin", rbac.HasRole(models.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(adminC.Dashboard))
	admin.Get("/products/pending", "admin.products.pending", ctx.Wrap(adminC.Pending))
	admin.Post("/products/{id}/approve", "admin.products.approve", ctx.Wrap(adminC.Approve))
	admin.Post("/products/{id}/reject", "admin.products.reject", ctx.Wrap(adminC.Reject))
}
