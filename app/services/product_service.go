package services

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/repositories"
	"github.com/shashiranjanraj/ecobazaar/pkg/cache"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
	"github.com/shashiranjanraj/ecobazaar/pkg/metrics"
	"github.com/shashiranjanraj/ecobazaar/pkg/storage"
	"gorm.io/gorm"
)

// CreateProductInput is the request body for POST /api/seller/products.
type CreateProductInput struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=1000"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Quantity        int      `json:"quantity" validate:"gte=0"`
	EcoRating       float64  `json:"ecoRating" validate:"gte=0,lte=10"`
	ImageURL        string   `json:"imageUrl" validate:"max=500"`
	CarbonFootprint *float64 `json:"carbonFootprint"`
}

// ProductService implements the catalogue and its approval workflow.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// Create persists a new PENDING product for sellerID. The carbon footprint
// is taken from the input when supplied, otherwise derived from the eco
// rating.
func (s *ProductService) Create(sellerID uint, in CreateProductInput) (models.Product, error) {
	footprint := in.CarbonFootprint
	if footprint == nil {
		f := models.DerivedCarbonFootprint(in.EcoRating)
		footprint = &f
	}

	p := models.Product{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Quantity:        in.Quantity,
		EcoRating:       in.EcoRating,
		ImageURL:        in.ImageURL,
		CarbonFootprint: footprint,
		Status:          models.ProductPending,
		SellerID:        sellerID,
	}
	if err := s.products.Create(&p); err != nil {
		return models.Product{}, err
	}

	logger.Info("product submitted", "product_id", p.ID, "seller_id", sellerID, "name", p.Name)
	return p, nil
}

// ListBySeller returns a seller's own products regardless of status.
func (s *ProductService) ListBySeller(sellerID uint) ([]models.Product, error) {
	return s.products.BySeller(sellerID)
}

// ListApproved returns the public catalogue.
func (s *ProductService) ListApproved() ([]models.Product, error) {
	return s.products.Approved()
}

// GetApproved returns one catalogue product; products still pending review
// or rejected are invisible to buyers.
func (s *ProductService) GetApproved(id uint) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return models.Product{}, err
	}
	if p.Status != models.ProductApproved {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, nil
}

// ListPending returns products awaiting review.
func (s *ProductService) ListPending() ([]models.Product, error) {
	return s.products.ByStatus(models.ProductPending)
}

// Approve marks a product as catalogue-visible. Repeated decisions on the
// same product are allowed; the last one wins.
func (s *ProductService) Approve(id uint) (models.Product, error) {
	return s.decide(id, models.ProductApproved)
}

// Reject marks a product as rejected.
func (s *ProductService) Reject(id uint) (models.Product, error) {
	return s.decide(id, models.ProductRejected)
}

func (s *ProductService) decide(id uint, status string) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return models.Product{}, err
	}

	p.Status = status
	if err := s.products.Update(&p); err != nil {
		return models.Product{}, err
	}

	cache.Forget(repositories.ApprovedCacheKey)
	metrics.ProductsReviewed.WithLabelValues(status).Inc()
	logger.Info("product reviewed", "product_id", p.ID, "status", status)
	return p, nil
}

// Delete removes a product. Only the owning seller or an admin may delete.
func (s *ProductService) Delete(id, requesterID uint, requesterRole string) error {
	p, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	if p.SellerID != requesterID && requesterRole != models.RoleAdmin {
		return fmt.Errorf("%w: product %d belongs to another seller", ErrForbidden, id)
	}

	if err := s.products.Delete(&p); err != nil {
		return err
	}

	cache.Forget(repositories.ApprovedCacheKey)
	logger.Info("product deleted", "product_id", id, "requester_id", requesterID)
	return nil
}

// AttachImage stores an uploaded product image on the configured disk and
// saves its public URL on the product. Ownership rules match Delete.
func (s *ProductService) AttachImage(id, requesterID uint, requesterRole, filename string, file io.Reader) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return models.Product{}, err
	}

	if p.SellerID != requesterID && requesterRole != models.RoleAdmin {
		return models.Product{}, fmt.Errorf("%w: product %d belongs to another seller", ErrForbidden, id)
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	dst := fmt.Sprintf("products/%d/image%s", p.ID, ext)
	if err := storage.PutStream(dst, file); err != nil {
		return models.Product{}, err
	}

	p.ImageURL = storage.URL(dst)
	if err := s.products.Update(&p); err != nil {
		return models.Product{}, err
	}

	cache.Forget(repositories.ApprovedCacheKey)
	return p, nil
}
