// Package listeners registers the in-process event handlers. It is wired
// by a blank import from the CLI entrypoint so the init() runs at boot.
package listeners

import (
	"github.com/shashiranjanraj/ecobazaar/app/models"
	"github.com/shashiranjanraj/ecobazaar/pkg/event"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
)

func init() {
	event.Listen("order.placed", logOrderPlaced)
}

// logOrderPlaced records a sustainability audit line for every order.
func logOrderPlaced(payload interface{}) {
	order, ok := payload.(models.Order)
	if !ok {
		return
	}

	var footprint float64
	if order.TotalCarbonFootprint != nil {
		footprint = *order.TotalCarbonFootprint
	}
	logger.Info("sustainability audit",
		"order_id", order.ID,
		"buyer_id", order.BuyerID,
		"total_amount", order.TotalAmount,
		"total_carbon_kg", footprint,
	)
}
