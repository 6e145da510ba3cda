package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/pkg/problem"
)

type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// ListOrders returns all orders, newest first. Staff only.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	filter := order.QueryOrdersModel{}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response for list orders", "error", err)
	}
}
