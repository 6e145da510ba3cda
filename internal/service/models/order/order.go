package order

import (
	"time"

	"github.com/webshop-labs/order/internal/service/models/opinion"
	"github.com/webshop-labs/order/internal/service/models/orderline"
)

// Order represents a customer purchase: the header plus its line items.
// Customer contact fields are written once at creation and never updated.
type Order struct {
	ID           int64                 `json:"id"`
	SubjectID    *int64                `json:"subjectId,omitempty"`
	CustomerName string                `json:"customerName"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Status       Status                `json:"status"`
	OrderDate    time.Time             `json:"orderDate"`
	Lines        []orderline.OrderLine `json:"lines,omitempty"`
	Opinion      *opinion.Opinion      `json:"opinion,omitempty"`
}

// OwnedBy reports whether the order belongs to the given subject.
// Orders placed anonymously belong to nobody.
func (o *Order) OwnedBy(subjectID int64) bool {
	return o.SubjectID != nil && *o.SubjectID == subjectID
}
