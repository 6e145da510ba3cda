package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/services/ordersvc"
	"github.com/webshop-labs/order/pkg/problem"
)

// service is an interface for the service layer.
type service interface {
	ChangeStatus(ctx context.Context, orderID int64, newStatusID int) (*ordersvc.StatusTransition, error)
}

// updateStatusRequest is the status-change payload.
type updateStatusRequest struct {
	NewStatusID int `json:"new_status_id"`
}

// updateStatusResponse reports the committed transition.
type updateStatusResponse struct {
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

// UpdateStatus handles the status-change request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		problem.WriteError(w, r, apperr.Validation(
			"invalid-order-id",
			"Invalid order id",
			"The order id in the path must be a number.",
		))

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.WriteError(w, r, apperr.Validation(
			"malformed-body",
			"Malformed request body",
			err.Error(),
		))
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	transition, err := service.ChangeStatus(r.Context(), orderID, req.NewStatusID)
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := updateStatusResponse{
		PreviousStatus: transition.PreviousStatus.String(),
		NewStatus:      transition.NewStatus.String(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending response for status update", "error", err)
	}
}
