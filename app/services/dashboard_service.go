package services

import (
	"fmt"
	"math"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/app/repositories"
)

// DashboardService assembles the per-role landing payloads.
type DashboardService struct {
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func NewDashboardService() *DashboardService {
	return &DashboardService{
		users:    repositories.NewUserRepository(),
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
	}
}

// Buyer summarizes a buyer's purchase history: order count, accumulated
// carbon footprint (1 decimal), and the five most recent orders.
func (s *DashboardService) Buyer(userID uint, username string) (map[string]interface{}, error) {
	count, err := s.orders.CountForBuyer(userID)
	if err != nil {
		return nil, err
	}

	all, err := s.orders.ForBuyer(userID)
	if err != nil {
		return nil, err
	}
	var footprint float64
	for _, o := range all {
		if o.TotalCarbonFootprint != nil {
			footprint += *o.TotalCarbonFootprint
		}
	}

	recent, err := s.orders.Recent(userID, 5)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"username":             username,
		"role":                 models.RoleBuyer,
		"userId":               userID,
		"totalPurchases":       count,
		"totalCarbonFootprint": math.Round(footprint*10) / 10,
		"recentOrders":         recent,
	}, nil
}

// Seller summarizes a seller's listings by approval state.
func (s *DashboardService) Seller(userID uint, username string) (map[string]interface{}, error) {
	products, err := s.products.BySeller(userID)
	if err != nil {
		return nil, err
	}

	var approved, pending int64
	for _, p := range products {
		switch p.Status {
		case models.ProductApproved:
			approved++
		case models.ProductPending:
			pending++
		}
	}

	return map[string]interface{}{
		"username":         username,
		"role":             models.RoleSeller,
		"totalProducts":    len(products),
		"approvedProducts": approved,
		"pendingProducts":  pending,
		"products":         products,
	}, nil
}

// Admin summarizes the whole system: user counts per role and the five
// most recent signups.
func (s *DashboardService) Admin(username string) (map[string]interface{}, error) {
	total, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	buyers, err := s.users.CountByRole(models.RoleBuyer)
	if err != nil {
		return nil, err
	}
	sellers, err := s.users.CountByRole(models.RoleSeller)
	if err != nil {
		return nil, err
	}

	recent, err := s.users.Recent(5)
	if err != nil {
		return nil, err
	}
	recentViews := make([]string, 0, len(recent))
	for _, u := range recent {
		recentViews = append(recentViews, fmt.Sprintf("%s (%s) - %s", u.Username, u.Role, u.Email))
	}

	return map[string]interface{}{
		"username":     username,
		"role":         models.RoleAdmin,
		"totalUsers":   total,
		"totalBuyers":  buyers,
		"totalSellers": sellers,
		"systemHealth": "OK",
		"recentUsers":  recentViews,
	}, nil
}
