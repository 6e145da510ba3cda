package ordersbystatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/pkg/problem"
)

type service interface {
	GetOrdersByStatus(ctx context.Context, statusID int) ([]order.Order, error)
}

// OrdersByStatus returns all orders in one status. Staff only.
func OrdersByStatus(w http.ResponseWriter, r *http.Request, service service) {
	statusID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		problem.WriteError(w, r, apperr.Validation(
			"invalid-status-id",
			"Invalid status id",
			"The status id in the path must be a number.",
		))

		return
	}

	orders, err := service.GetOrdersByStatus(r.Context(), statusID)
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response for orders by status", "error", err)
	}
}
