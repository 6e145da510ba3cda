package liststatuses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/order/internal/service/services/ordersvc"
)

type service interface {
	ListStatuses() []ordersvc.StatusInfo
}

// ListStatuses returns the order status dictionary.
func ListStatuses(w http.ResponseWriter, _ *http.Request, service service) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(service.ListStatuses()); err != nil {
		slog.Error("Error sending response for list statuses", "error", err)
	}
}
