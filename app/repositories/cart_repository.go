package repositories

import (
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ForBuyer returns every cart line belonging to buyerID, oldest first.
func (r *CartRepository) ForBuyer(buyerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("buyer_id = ?", buyerID).
		Order("created_at ASC").
		Get(&items)
	return items, err
}

// Find looks up a single cart line by primary key.
func (r *CartRepository) Find(id uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).Where("id = ?", id).First(&item)
	return item, err
}

// FindLine returns the buyer's existing line for a product, if any.
func (r *CartRepository) FindLine(buyerID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		First(&item)
	return item, err
}

// Create persists a new cart line.
func (r *CartRepository) Create(item *models.CartItem) error {
	return orm.DB().Create(item)
}

// Update persists changes to an existing cart line.
func (r *CartRepository) Update(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// Delete removes a cart line.
func (r *CartRepository) Delete(item *models.CartItem) error {
	return orm.DB().Delete(item)
}

// ClearForBuyer deletes all of a buyer's cart lines inside tx.
func (r *CartRepository) ClearForBuyer(tx *gorm.DB, buyerID uint) error {
	return orm.Tx(tx).Where("buyer_id = ?", buyerID).Delete(&models.CartItem{})
}
