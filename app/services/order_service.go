package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ecobazaar/app/jobs"
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/repositories"
	"github.com/shashiranjanraj/ecobazaar/pkg/cache"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
	"github.com/shashiranjanraj/ecobazaar/pkg/event"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
	"github.com/shashiranjanraj/ecobazaar/pkg/metrics"
	"github.com/shashiranjanraj/ecobazaar/pkg/queue"
	"gorm.io/gorm"
)

// CheckoutResult is returned by a successful checkout.
type CheckoutResult struct {
	OrderID              uint    `json:"orderId"`
	TotalAmount          float64 `json:"totalAmount"`
	TotalCarbonFootprint float64 `json:"totalCarbonFootprint"`
	Status               string  `json:"status"`
	Message              string  `json:"message"`
}

// OrderView is one order in a buyer's history.
type OrderView struct {
	ID                   uint               `json:"id"`
	TotalAmount          float64            `json:"totalAmount"`
	TotalCarbonFootprint *float64           `json:"totalCarbonFootprint,omitempty"`
	Status               string             `json:"status"`
	CreatedAt            string             `json:"createdAt"`
	Items                []models.OrderItem `json:"items,omitempty"`
}

// OrderService converts carts into orders.
type OrderService struct {
	orders   *repositories.OrderRepository
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Checkout atomically turns the buyer's cart into an order. Every line is
// re-validated inside the transaction; the stock decrement is conditional,
// so a concurrent checkout of the last unit fails here instead of
// oversubscribing. Any failure rolls the whole unit of work back and
// leaves the cart untouched.
func (s *OrderService) Checkout(buyerID uint) (CheckoutResult, error) {
	lines, err := s.carts.ForBuyer(buyerID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(lines) == 0 {
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return CheckoutResult{}, fmt.Errorf("%w: cart is empty", ErrInvalid)
	}

	var order models.Order

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var totalAmount, totalFootprint float64

		type pricedLine struct {
			line models.CartItem
			prod models.Product
		}
		priced := make([]pricedLine, 0, len(lines))

		for _, line := range lines {
			p, err := s.products.FindByIDTx(tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					metrics.CheckoutFailures.WithLabelValues("unavailable").Inc()
					return fmt.Errorf("%w: product %d no longer exists", ErrConflict, line.ProductID)
				}
				return err
			}
			if p.Status != models.ProductApproved {
				metrics.CheckoutFailures.WithLabelValues("unavailable").Inc()
				return fmt.Errorf("%w: product %q is not available", ErrConflict, p.Name)
			}
			if line.Quantity > p.Quantity {
				metrics.CheckoutFailures.WithLabelValues("stock").Inc()
				return fmt.Errorf("%w: only %d of %q in stock", ErrConflict, p.Quantity, p.Name)
			}

			totalAmount += p.Price * float64(line.Quantity)
			if p.CarbonFootprint != nil {
				totalFootprint += *p.CarbonFootprint * float64(line.Quantity)
			}
			priced = append(priced, pricedLine{line: line, prod: p})
		}

		order = models.Order{
			BuyerID:              buyerID,
			TotalAmount:          totalAmount,
			TotalCarbonFootprint: &totalFootprint,
			Status:               models.OrderPending,
		}
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return err
		}

		for _, pl := range priced {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: pl.prod.ID,
				Quantity:  pl.line.Quantity,
				Price:     pl.prod.Price,
			}
			if pl.prod.CarbonFootprint != nil {
				f := *pl.prod.CarbonFootprint * float64(pl.line.Quantity)
				item.CarbonFootprint = &f
			}
			if err := s.orders.CreateItemTx(tx, &item); err != nil {
				return err
			}

			ok, err := s.products.DecrementStock(tx, pl.prod.ID, pl.line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				metrics.CheckoutFailures.WithLabelValues("stock").Inc()
				return fmt.Errorf("%w: only %d of %q in stock", ErrConflict, pl.prod.Quantity, pl.prod.Name)
			}
		}

		return s.carts.ClearForBuyer(tx, buyerID)
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	cache.Forget(repositories.ApprovedCacheKey)
	metrics.RecordOrder(order.TotalAmount)
	event.Fire("order.placed", order)
	if err := queue.Dispatch(jobs.OrderConfirmationJob{OrderID: order.ID, BuyerID: buyerID}); err != nil {
		logger.Warn("order confirmation dispatch failed", "order_id", order.ID, "error", err)
	}

	logger.Info("order placed",
		"order_id", order.ID,
		"buyer_id", buyerID,
		"total", order.TotalAmount,
	)

	return CheckoutResult{
		OrderID:              order.ID,
		TotalAmount:          order.TotalAmount,
		TotalCarbonFootprint: *order.TotalCarbonFootprint,
		Status:               order.Status,
		Message:              "Order placed",
	}, nil
}

// ForBuyer returns the buyer's order history, newest first.
func (s *OrderService) ForBuyer(buyerID uint) ([]OrderView, error) {
	orders, err := s.orders.ForBuyer(buyerID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, s.view(o))
	}
	return views, nil
}

// Get returns one of the buyer's orders with its lines.
func (s *OrderService) Get(buyerID, orderID uint) (OrderView, error) {
	o, err := s.orders.Find(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return OrderView{}, err
	}
	if o.BuyerID != buyerID {
		return OrderView{}, fmt.Errorf("%w: order %d", ErrForbidden, orderID)
	}

	view := s.view(o)
	items, err := s.orders.Items(o.ID)
	if err != nil {
		return OrderView{}, err
	}
	view.Items = items
	return view, nil
}

func (s *OrderService) view(o models.Order) OrderView {
	return OrderView{
		ID:                   o.ID,
		TotalAmount:          o.TotalAmount,
		TotalCarbonFootprint: o.TotalCarbonFootprint,
		Status:               o.Status,
		CreatedAt:            o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
