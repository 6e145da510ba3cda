package problem

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/order/internal/apperr"
)

// typePrefix namespaces the machine-readable problem type identifiers.
const typePrefix = "https://webshop-labs.github.io/errors/"

// Problem is the structured error body shared by every failing response:
// a machine-readable type, a short title, a human-readable detail, the HTTP
// status, the request's target resource and error-specific extra fields.
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Detail   string         `json:"detail"`
	Status   int            `json:"status"`
	Instance string         `json:"instance"`
	Extras   map[string]any `json:"-"`
}

// MarshalJSON inlines the extra fields next to the fixed ones.
func (p Problem) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"type":     p.Type,
		"title":    p.Title,
		"detail":   p.Detail,
		"status":   p.Status,
		"instance": p.Instance,
	}
	for k, v := range p.Extras {
		body[k] = v
	}

	return json.Marshal(body)
}

// FromAppError builds the response body for a structured service error.
func FromAppError(e *apperr.Error, instance string) Problem {
	return Problem{
		Type:     typePrefix + e.Slug,
		Title:    e.Title,
		Detail:   e.Detail,
		Status:   e.HTTPStatus(),
		Instance: instance,
		Extras:   e.Extras,
	}
}

// WriteError classifies err and writes it as a problem response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindUpstream {
		slog.Error("upstream failure", "error", err, "path", r.URL.Path)
	}

	Write(w, FromAppError(appErr, r.URL.Path))
}

// Write serializes the problem with its status code.
func Write(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error writing problem response", "error", err)
	}
}
