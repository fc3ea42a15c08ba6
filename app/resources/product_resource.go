// Package resources defines the API transformers shaping model JSON output.
package resources

import (
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/collection"
	"github.com/shashiranjanraj/ecobazaar/pkg/resource"
)

// ProductResource controls the JSON shape of a product.
type ProductResource struct{ resource.Base }

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	p, ok := v.(models.Product)
	if !ok {
		return resource.Map{}
	}
	return Product(p)
}

// Product maps one product to its API shape.
func Product(p models.Product) resource.Map {
	out := resource.Map{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"ecoRating":   p.EcoRating,
		"status":      p.Status,
		"sellerId":    p.SellerID,
		"createdAt":   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.ImageURL != "" {
		out["imageUrl"] = p.ImageURL
	}
	if p.CarbonFootprint != nil {
		out["carbonFootprint"] = *p.CarbonFootprint
	}
	return out
}

// Products maps a product slice to its API shape.
func Products(ps []models.Product) []resource.Map {
	return collection.Map(ps, Product)
}
