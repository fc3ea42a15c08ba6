// Package jobs defines the background jobs dispatched by the services.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
	"github.com/shashiranjanraj/ecobazaar/pkg/queue"
)

// OrderConfirmationJob notifies the buyer after a successful checkout.
// There is no outbound mail channel, so confirmation is a structured log
// entry a downstream system can pick up from the Mongo sink.
type OrderConfirmationJob struct {
	OrderID uint `json:"orderId"`
	BuyerID uint `json:"buyerId"`
}

func (j OrderConfirmationJob) Handle() error {
	if j.OrderID == 0 {
		return fmt.Errorf("order confirmation: missing order id")
	}
	logger.Info("order confirmation sent", "order_id", j.OrderID, "buyer_id", j.BuyerID)
	return nil
}

func init() {
	queue.Register("jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
}
