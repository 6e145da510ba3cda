package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/internal/service/services/ordersvc"
	"github.com/webshop-labs/order/pkg/problem"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (int64, error)
}

// productInRequest is one requested product-quantity pair.
type productInRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// createOrderRequest is the order-creation payload.
type createOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Products     []productInRequest `json:"products"`
}

func (r *createOrderRequest) toModel(subjectID *int64) ordersvc.CreateOrderRequest {
	lines := make([]ordersvc.LineRequest, 0, len(r.Products))
	for _, p := range r.Products {
		lines = append(lines, ordersvc.LineRequest{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	return ordersvc.CreateOrderRequest{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		SubjectID:    subjectID,
		Lines:        lines,
	}
}

// CreateOrder handles the order-creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, problem.Problem{
			Type:     "https://webshop-labs.github.io/errors/malformed-body",
			Title:    "Malformed request body",
			Detail:   err.Error(),
			Status:   http.StatusBadRequest,
			Instance: r.URL.Path,
		})
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	// Orders may be placed anonymously; the owning subject is recorded only
	// when the request carried a verified identity.
	var subjectID *int64
	if principal, ok := identity.FromContext(r.Context()); ok {
		subjectID = &principal.SubjectID
	}

	orderID, err := service.CreateOrder(r.Context(), req.toModel(subjectID))
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]any{"order_id": orderID}); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
