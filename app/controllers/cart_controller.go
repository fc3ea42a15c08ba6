package controllers

import (
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
)

// CartController handles the buyer's cart and checkout.
type CartController struct {
	cart   *services.CartService
	orders *services.OrderService
}

func NewCartController() *CartController {
	return &CartController{
		cart:   services.NewCartService(),
		orders: services.NewOrderService(),
	}
}

// Add handles POST /api/buyer/cart/add.
func (cc *CartController) Add(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	var in services.AddToCartInput
	if !c.BindJSON(&in) {
		return
	}

	line, err := cc.cart.Add(userID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(line)
}

// Items handles GET /api/buyer/cart.
func (cc *CartController) Items(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	items, err := cc.cart.Items(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(items)
}

// Update handles PUT /api/buyer/cart/{id}.
func (cc *CartController) Update(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in services.UpdateCartInput
	if !c.BindJSON(&in) {
		return
	}

	line, err := cc.cart.UpdateItem(userID, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(line)
}

// Remove handles DELETE /api/buyer/cart/{id}.
func (cc *CartController) Remove(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := cc.cart.RemoveItem(userID, id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Item removed"})
}

// Checkout handles POST /api/buyer/cart/checkout.
func (cc *CartController) Checkout(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	result, err := cc.orders.Checkout(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(result)
}
