package seeders

import (
	"errors"

	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("demo_catalogue", SeedDemoCatalogue)
}

// SeedAdminUser creates the bootstrap ADMIN account if it does not exist.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username: "admin",
		Email:    "admin@ecobazaar.local",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

// SeedDemoCatalogue creates one demo seller with a few approved products.
func SeedDemoCatalogue(db *gorm.DB) error {
	var seller models.User
	err := db.Where("username = ?", "greengoods").First(&seller).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := auth.HashPassword("seller123")
		if err != nil {
			return err
		}
		seller = models.User{
			Username: "greengoods",
			Email:    "seller@ecobazaar.local",
			Password: hash,
			Role:     models.RoleSeller,
		}
		if err := db.Create(&seller).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Product{}).Where("seller_id = ?", seller.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []models.Product{
		{
			Name:        "Bamboo Toothbrush",
			Description: "Compostable handle, soft bristles.",
			Price:       3.50,
			Quantity:    200,
			EcoRating:   9,
			Status:      models.ProductApproved,
			SellerID:    seller.ID,
		},
		{
			Name:        "Recycled Notebook",
			Description: "A5 notebook made from 100% recycled paper.",
			Price:       6.00,
			Quantity:    120,
			EcoRating:   8,
			Status:      models.ProductApproved,
			SellerID:    seller.ID,
		},
		{
			Name:        "Solar Phone Charger",
			Description: "5W folding solar panel with USB output.",
			Price:       29.90,
			Quantity:    40,
			EcoRating:   7,
			Status:      models.ProductPending,
			SellerID:    seller.ID,
		},
	}
	for i := range demo {
		f := models.DerivedCarbonFootprint(demo[i].EcoRating)
		demo[i].CarbonFootprint = &f
		if err := db.Create(&demo[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
