package models

import "gorm.io/gorm"

// Order lifecycle states. Checkout only ever produces PENDING; the remaining
// states exist for fulfilment tooling outside this service.
const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// Order is the immutable result of a checkout. Totals are computed once at
// checkout time and never change, whatever happens to the products later.
type Order struct {
	gorm.Model
	BuyerID              uint     `gorm:"not null;index" json:"buyerId"`
	TotalAmount          float64  `gorm:"not null"       json:"totalAmount"`
	TotalCarbonFootprint *float64 `json:"totalCarbonFootprint"`
	Status               string   `gorm:"size:20;not null;default:PENDING" json:"status"`
}

// OrderItem snapshots one cart line at checkout: unit price and the line's
// total carbon footprint as they were at that moment.
type OrderItem struct {
	gorm.Model
	OrderID         uint     `gorm:"not null;index" json:"orderId"`
	ProductID       uint     `gorm:"not null"       json:"productId"`
	Quantity        int      `gorm:"not null"       json:"quantity"`
	Price           float64  `gorm:"not null"       json:"price"`
	CarbonFootprint *float64 `json:"carbonFootprint"`
}
