package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/webshop-labs/order/internal/service/models/outbox"
)

// Routing keys for notification events published by the outbox worker.
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusChanged = "order.status_changed"
	RoutingKeyOpinionCreated     = "order.opinion_created"
)

// OrderCreated is emitted after an order and its lines are committed.
type OrderCreated struct {
	OrderID      int64     `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	LineCount    int       `json:"lineCount"`
	OrderDate    time.Time `json:"orderDate"`
}

// OrderStatusChanged is emitted after a status transition is committed.
type OrderStatusChanged struct {
	OrderID        int64  `json:"orderId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

// OpinionCreated is emitted after an opinion insert is committed.
type OpinionCreated struct {
	OrderID int64 `json:"orderId"`
	Rating  int   `json:"rating"`
}

// NewMessage wraps a payload into an outbox message ready for staging.
func NewMessage(routingKey string, payload any) (outbox.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return outbox.Message{}, fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 10
	}

	now := time.Now()

	return outbox.Message{
		MessageID:   uuid.NewString(),
		RoutingKey:  routingKey,
		Payload:     body,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
