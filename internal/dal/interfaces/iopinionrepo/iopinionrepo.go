package iopinionrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/order/internal/service/models/opinion"
)

// ErrDuplicate is returned when an opinion already exists for the order.
// The unique constraint on order_id is the authoritative backstop behind
// the service-level pre-check.
var ErrDuplicate = errors.New("opinion already exists for order")

// Repository defines opinion persistence operations.
type Repository interface {
	// Insert stores a new opinion and returns it with the server-assigned
	// id and creation timestamp. Returns ErrDuplicate on a unique violation.
	Insert(ctx context.Context, op opinion.Opinion) (*opinion.Opinion, error)

	// ExistsByOrderID reports whether the order already has an opinion.
	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
}
