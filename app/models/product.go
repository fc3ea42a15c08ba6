package models

import "gorm.io/gorm"

// Product approval states. Sellers create PENDING products; only an admin
// moves them to APPROVED or REJECTED, and only APPROVED products are
// purchasable.
const (
	ProductPending  = "PENDING"
	ProductApproved = "APPROVED"
	ProductRejected = "REJECTED"
)

// Product is a seller's catalogue listing.
//
// CarbonFootprint is in kg CO2e per unit. It is seller-supplied or derived
// from the eco rating at creation time; a nil value means "unknown" and is
// skipped when summing order footprints.
type Product struct {
	gorm.Model
	Name            string   `gorm:"size:200;not null;index" json:"name"`
	Description     string   `gorm:"size:1000"               json:"description"`
	Price           float64  `gorm:"not null"                json:"price"`
	ImageURL        string   `gorm:"size:500"                json:"imageUrl"`
	Quantity        int      `gorm:"not null;default:0"      json:"quantity"`
	EcoRating       float64  `gorm:"not null"                json:"ecoRating"`
	CarbonFootprint *float64 `json:"carbonFootprint"`
	Status          string   `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	SellerID        uint     `gorm:"not null;index"          json:"sellerId"`
}

// DerivedCarbonFootprint maps an eco rating to a default footprint:
// rating 10 → 0.1 kg, rating 0 → 15 kg, floored at 0.1.
func DerivedCarbonFootprint(ecoRating float64) float64 {
	fp := 15.0 - ecoRating*1.49
	if fp < 0.1 {
		return 0.1
	}
	return fp
}
