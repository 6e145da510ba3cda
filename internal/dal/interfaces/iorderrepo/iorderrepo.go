package iorderrepo

import (
	"context"

	"github.com/webshop-labs/order/internal/service/models/order"
)

// Repository defines order header persistence operations.
type Repository interface {
	// Insert stores a new order header and returns the assigned id.
	Insert(ctx context.Context, o order.Order) (int64, error)

	// GetByIDForUpdate fetches an order header with a row lock, so a
	// read-check-write sequence inside a transaction serializes against
	// concurrent transitions on the same order. Returns nil when the order
	// does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus persists a new status for the order.
	UpdateStatus(ctx context.Context, id int64, status order.Status) error

	// Query lists orders matching the filter, joined with their opinion.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
