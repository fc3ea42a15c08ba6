package controllers

import (
	"github.com/shashiranjanraj/ecobazaar/app/resources"
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
)

// AdminController owns the product review queue and the system dashboard.
type AdminController struct {
	products  *services.ProductService
	dashboard *services.DashboardService
}

func NewAdminController() *AdminController {
	return &AdminController{
		products:  services.NewProductService(),
		dashboard: services.NewDashboardService(),
	}
}

// Pending handles GET /api/admin/products/pending.
func (a *AdminController) Pending(c *ctx.Context) {
	ps, err := a.products.ListPending()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Products(ps))
}

// Approve handles POST /api/admin/products/{id}/approve.
func (a *AdminController) Approve(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := a.products.Approve(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Product(p))
}

// Reject handles POST /api/admin/products/{id}/reject.
func (a *AdminController) Reject(c *ctx.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := a.products.Reject(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Product(p))
}

// Dashboard handles GET /api/admin/dashboard.
func (a *AdminController) Dashboard(c *ctx.Context) {
	username, _ := middleware.UsernameFromCtx(c.R)

	payload, err := a.dashboard.Admin(username)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(payload)
}
