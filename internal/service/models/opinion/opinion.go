package opinion

import "time"

// Rating bounds for a customer opinion.
const (
	MinRating = 1
	MaxRating = 5
)

// Opinion is a single customer review attached to a completed or cancelled
// order. At most one opinion exists per order.
type Opinion struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
