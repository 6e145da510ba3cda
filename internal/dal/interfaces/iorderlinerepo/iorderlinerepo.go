package iorderlinerepo

import (
	"context"

	"github.com/webshop-labs/order/internal/service/models/orderline"
)

// Repository defines order line persistence operations.
type Repository interface {
	// BulkInsert stores all lines of an order in one statement.
	BulkInsert(ctx context.Context, lines []orderline.OrderLine) error

	// ListByOrderID fetches the lines of one order.
	ListByOrderID(ctx context.Context, orderID int64) ([]orderline.OrderLine, error)
}
