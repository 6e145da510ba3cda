package updatestatus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/internal/service/services/ordersvc"
)

type stubService struct {
	gotOrderID  int64
	gotStatusID int
	transition  *ordersvc.StatusTransition
	err         error
}

func (s *stubService) ChangeStatus(_ context.Context, orderID int64, newStatusID int) (*ordersvc.StatusTransition, error) {
	s.gotOrderID = orderID
	s.gotStatusID = newStatusID

	return s.transition, s.err
}

func newRequest(orderID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID, strings.NewReader(body))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", orderID)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpdateStatus(t *testing.T) {
	svc := &stubService{
		transition: &ordersvc.StatusTransition{
			PreviousStatus: order.StatusNew,
			NewStatus:      order.StatusConfirmed,
		},
	}

	rec := httptest.NewRecorder()
	UpdateStatus(rec, newRequest("7", `{"new_status_id": 2}`), svc)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotOrderID)
	assert.Equal(t, 2, svc.gotStatusID)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NEW", resp["previous_status"])
	assert.Equal(t, "CONFIRMED", resp["new_status"])
}

func TestUpdateStatus_InvalidPathID(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	UpdateStatus(rec, newRequest("abc", `{"new_status_id": 2}`), svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://webshop-labs.github.io/errors/invalid-order-id", body["type"])
}

func TestUpdateStatus_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        *apperr.Error
		wantStatus int
	}{
		{
			name:       "order not found",
			err:        apperr.NotFound("order-not-found", "Order does not exist", "No order with id 7 was found."),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "cancelled is terminal",
			err:        apperr.StateViolation("order-cancelled", "Order cancelled", "The status of an order that has already been cancelled cannot be changed."),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{err: tc.err}

			rec := httptest.NewRecorder()
			UpdateStatus(rec, newRequest("7", `{"new_status_id": 4}`), svc)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "https://webshop-labs.github.io/errors/"+tc.err.Slug, body["type"])
		})
	}
}
