package repositories

import (
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateTx persists an order inside an open transaction.
func (r *OrderRepository) CreateTx(tx *gorm.DB, order *models.Order) error {
	return orm.Tx(tx).Create(order)
}

// CreateItemTx persists one order line inside an open transaction.
func (r *OrderRepository) CreateItemTx(tx *gorm.DB, item *models.OrderItem) error {
	return orm.Tx(tx).Create(item)
}

// ForBuyer returns all of a buyer's orders, newest first.
func (r *OrderRepository) ForBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Get(&orders)
	return orders, err
}

// Recent returns the buyer's n most recent orders.
func (r *OrderRepository) Recent(buyerID uint, n int) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(n).
		Get(&orders)
	return orders, err
}

// Find looks up a single order by primary key.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, err
}

// Items returns the lines of one order.
func (r *OrderRepository) Items(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := orm.DB().Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Get(&items)
	return items, err
}

// CountForBuyer returns how many orders a buyer has placed.
func (r *OrderRepository) CountForBuyer(buyerID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Where("buyer_id = ?", buyerID).Count(&n)
	return n, err
}
