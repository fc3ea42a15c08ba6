package controllers

import (
	"github.com/shashiranjanraj/ecobazaar/app/resources"
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
)

// BuyerController serves the approved catalogue, the buyer dashboard, and
// order history.
type BuyerController struct {
	products  *services.ProductService
	orders    *services.OrderService
	dashboard *services.DashboardService
}

func NewBuyerController() *BuyerController {
	return &BuyerController{
		products:  services.NewProductService(),
		orders:    services.NewOrderService(),
		dashboard: services.NewDashboardService(),
	}
}

// Products handles GET /api/buyer/products.
func (b *BuyerController) Products(c *ctx.Context) {
	ps, err := b.products.ListApproved()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Products(ps))
}

// Product handles GET /api/buyer/products/{id}.
func (b *BuyerController) Product(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := b.products.GetApproved(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Product(p))
}

// Orders handles GET /api/buyer/orders.
func (b *BuyerController) Orders(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	orders, err := b.orders.ForBuyer(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Order handles GET /api/buyer/orders/{id}.
func (b *BuyerController) Order(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := b.orders.Get(userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// Dashboard handles GET /api/buyer/dashboard.
func (b *BuyerController) Dashboard(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	username, _ := middleware.UsernameFromCtx(c.R)

	payload, err := b.dashboard.Buyer(userID, username)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(payload)
}
