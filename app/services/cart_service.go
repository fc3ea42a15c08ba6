package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/repositories"
	"gorm.io/gorm"
)

// AddToCartInput is the request body for POST /api/buyer/cart/add.
type AddToCartInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartInput is the request body for PUT /api/buyer/cart/{id}.
type UpdateCartInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartItemView joins a cart line with live product data. Prices and
// footprints here are NOT snapshots; they follow the current product.
type CartItemView struct {
	ID              uint     `json:"id"`
	ProductID       uint     `json:"productId"`
	Name            string   `json:"name"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Price           float64  `json:"price"`
	EcoRating       float64  `json:"ecoRating"`
	CarbonFootprint *float64 `json:"carbonFootprint,omitempty"`
	Quantity        int      `json:"quantity"`
	Subtotal        float64  `json:"subtotal"`
	LineFootprint   float64  `json:"lineFootprint"`
}

// CartService implements the per-buyer cart.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Add merges quantity into the buyer's line for the product, creating the
// line when absent. The merged quantity must not exceed current stock.
func (s *CartService) Add(buyerID uint, in AddToCartInput) (models.CartItem, error) {
	p, err := s.products.FindByID(in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, fmt.Errorf("%w: product %d", ErrNotFound, in.ProductID)
		}
		return models.CartItem{}, err
	}
	if p.Status != models.ProductApproved {
		return models.CartItem{}, fmt.Errorf("%w: product %q is not available", ErrConflict, p.Name)
	}

	line, err := s.carts.FindLine(buyerID, in.ProductID)
	switch {
	case err == nil:
		merged := line.Quantity + in.Quantity
		if merged > p.Quantity {
			return models.CartItem{}, fmt.Errorf("%w: only %d of %q in stock", ErrConflict, p.Quantity, p.Name)
		}
		line.Quantity = merged
		if err := s.carts.Update(&line); err != nil {
			return models.CartItem{}, err
		}
		return line, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if in.Quantity > p.Quantity {
			return models.CartItem{}, fmt.Errorf("%w: only %d of %q in stock", ErrConflict, p.Quantity, p.Name)
		}
		line = models.CartItem{BuyerID: buyerID, ProductID: in.ProductID, Quantity: in.Quantity}
		if err := s.carts.Create(&line); err != nil {
			return models.CartItem{}, err
		}
		return line, nil

	default:
		return models.CartItem{}, err
	}
}

// UpdateItem replaces the quantity of one of the buyer's own lines.
func (s *CartService) UpdateItem(buyerID, itemID uint, in UpdateCartInput) (models.CartItem, error) {
	line, err := s.ownedLine(buyerID, itemID)
	if err != nil {
		return models.CartItem{}, err
	}

	p, err := s.products.FindByID(line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		return models.CartItem{}, err
	}
	if in.Quantity > p.Quantity {
		return models.CartItem{}, fmt.Errorf("%w: only %d of %q in stock", ErrConflict, p.Quantity, p.Name)
	}

	line.Quantity = in.Quantity
	if err := s.carts.Update(&line); err != nil {
		return models.CartItem{}, err
	}
	return line, nil
}

// RemoveItem deletes one of the buyer's own lines.
func (s *CartService) RemoveItem(buyerID, itemID uint) error {
	line, err := s.ownedLine(buyerID, itemID)
	if err != nil {
		return err
	}
	return s.carts.Delete(&line)
}

// Items returns the buyer's cart joined with live product data.
func (s *CartService) Items(buyerID uint) ([]CartItemView, error) {
	lines, err := s.carts.ForBuyer(buyerID)
	if err != nil {
		return nil, err
	}

	views := make([]CartItemView, 0, len(lines))
	for _, line := range lines {
		p, err := s.products.FindByID(line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product removed since the line was added; purge the
				// stale line so it cannot linger or reach checkout.
				if err := s.carts.Delete(&line); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		view := CartItemView{
			ID:              line.ID,
			ProductID:       p.ID,
			Name:            p.Name,
			ImageURL:        p.ImageURL,
			Price:           p.Price,
			EcoRating:       p.EcoRating,
			CarbonFootprint: p.CarbonFootprint,
			Quantity:        line.Quantity,
			Subtotal:        p.Price * float64(line.Quantity),
		}
		if p.CarbonFootprint != nil {
			view.LineFootprint = *p.CarbonFootprint * float64(line.Quantity)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CartService) ownedLine(buyerID, itemID uint) (models.CartItem, error) {
	line, err := s.carts.Find(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return models.CartItem{}, err
	}
	if line.BuyerID != buyerID {
		return models.CartItem{}, fmt.Errorf("%w: cart item %d", ErrForbidden, itemID)
	}
	return line, nil
}
