package models

import "gorm.io/gorm"

// CartItem is one line of a buyer's cart. There is at most one row per
// (buyer, product) pair; adding the same product again merges quantities.
type CartItem struct {
	gorm.Model
	BuyerID   uint `gorm:"not null;index;uniqueIndex:idx_cart_buyer_product" json:"buyerId"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_buyer_product"       json:"productId"`
	Quantity  int  `gorm:"not null"                                          json:"quantity"`
}
