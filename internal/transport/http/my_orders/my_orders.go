package myorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/pkg/problem"
)

type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// MyOrders returns the authenticated customer's own orders.
func MyOrders(w http.ResponseWriter, r *http.Request, service service) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		problem.WriteError(w, r, apperr.Forbidden(
			"missing-identity",
			"Access denied",
			"Listing your orders requires an authenticated identity.",
		))

		return
	}

	orders, err := service.GetOrders(r.Context(), order.QueryOrdersModel{SubjectID: &principal.SubjectID})
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response for my orders", "error", err)
	}
}
