package repositories

import (
	"time"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/orm"
	"gorm.io/gorm"
)

// approvedCacheKey caches the public catalogue; invalidated on any write
// that can change it (approve, reject, delete, stock decrement).
const ApprovedCacheKey = "products:approved"

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&p)
	return p, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(p *models.Product) error {
	return orm.DB().Create(p)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	return orm.DB().Save(p)
}

// Delete removes a product record.
func (r *ProductRepository) Delete(p *models.Product) error {
	return orm.DB().Delete(p)
}

// BySeller returns every product owned by sellerID, newest first.
func (r *ProductRepository) BySeller(sellerID uint) ([]models.Product, error) {
	var ps []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Get(&ps)
	return ps, err
}

// ByStatus returns every product in the given approval state.
func (r *ProductRepository) ByStatus(status string) ([]models.Product, error) {
	var ps []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("status = ?", status).
		Order("created_at DESC").
		Get(&ps)
	return ps, err
}

// Approved returns the public catalogue through the read-through cache.
func (r *ProductRepository) Approved() ([]models.Product, error) {
	var ps []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("status = ?", models.ProductApproved).
		Order("created_at DESC").
		Cache(ApprovedCacheKey, 5*time.Minute, &ps)
	return ps, err
}

// CountBySeller returns per-status counts for one seller's dashboard.
func (r *ProductRepository) CountBySeller(sellerID uint, status string) (int64, error) {
	var n int64
	q := orm.DB().Model(&models.Product{}).Where("seller_id = ?", sellerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n)
	return n, err
}

// DecrementStock atomically subtracts qty from the product's stock inside
// tx. It only succeeds when enough stock remains; the caller must treat a
// false return as a conflict and roll back the surrounding transaction.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, productID uint, qty int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FindByIDTx looks up a product inside an open transaction.
func (r *ProductRepository) FindByIDTx(tx *gorm.DB, id uint) (models.Product, error) {
	var p models.Product
	err := orm.Tx(tx).Model(&models.Product{}).Where("id = ?", id).First(&p)
	return p, err
}
