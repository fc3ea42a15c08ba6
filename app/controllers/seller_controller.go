package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ecobazaar/app/resources"
	"github.com/shashiranjanraj/ecobazaar/app/services"
	"github.com/shashiranjanraj/ecobazaar/pkg/ctx"
	"github.com/shashiranjanraj/ecobazaar/pkg/middleware"
)

// maxImageBytes caps product image uploads at 8 MB.
const maxImageBytes = 8 << 20

// SellerController manages a seller's own listings.
type SellerController struct {
	products  *services.ProductService
	dashboard *services.DashboardService
}

func NewSellerController() *SellerController {
	return &SellerController{
		products:  services.NewProductService(),
		dashboard: services.NewDashboardService(),
	}
}

// Create handles POST /api/seller/products.
func (s *SellerController) Create(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	var in services.CreateProductInput
	if !c.BindJSON(&in) {
		return
	}

	p, err := s.products.Create(userID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resources.Product(p))
}

// Products handles GET /api/seller/products.
func (s *SellerController) Products(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)

	ps, err := s.products.ListBySeller(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Products(ps))
}

// Delete handles DELETE /api/seller/products/{id}.
func (s *SellerController) Delete(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.products.Delete(id, userID, role); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Product deleted"})
}

// UploadImage handles POST /api/seller/products/{id}/image.
// Expects a multipart form with an "image" file field.
func (s *SellerController) UploadImage(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := c.R.ParseMultipartForm(maxImageBytes); err != nil {
		c.Error(http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	p, err := s.products.AttachImage(id, userID, role, header.Filename, file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resources.Product(p))
}

// Dashboard handles GET /api/seller/dashboard.
func (s *SellerController) Dashboard(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	username, _ := middleware.UsernameFromCtx(c.R)

	payload, err := s.dashboard.Seller(userID, username)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(payload)
}
