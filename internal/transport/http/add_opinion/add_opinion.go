package addopinion

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/internal/service/models/opinion"
	"github.com/webshop-labs/order/pkg/problem"
)

// service is an interface for the service layer.
type service interface {
	AddOpinion(ctx context.Context, orderID, subjectID int64, rating int, content string) (*opinion.Opinion, error)
}

// addOpinionRequest is the opinion-submission payload.
type addOpinionRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// AddOpinion handles the opinion-submission request. The route is gated on a
// verified customer identity, so a missing principal is a server-side wiring
// fault rather than a client error.
func AddOpinion(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		problem.WriteError(w, r, apperr.Validation(
			"invalid-order-id",
			"Invalid order id",
			"The order id in the path must be a number.",
		))

		return
	}

	principal, ok := identity.FromContext(r.Context())
	if !ok {
		problem.WriteError(w, r, apperr.Forbidden(
			"not-owner",
			"Access denied",
			"Opinions can only be added to your own orders.",
		))

		return
	}

	var req addOpinionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.WriteError(w, r, apperr.Validation(
			"malformed-body",
			"Malformed request body",
			err.Error(),
		))
		slog.Error("Error decoding request body for add opinion", "error", err)

		return
	}

	created, err := service.AddOpinion(r.Context(), orderID, principal.SubjectID, req.Rating, req.Content)
	if err != nil {
		problem.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for add opinion", "error", err)
	}
}
