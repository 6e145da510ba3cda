package addopinion

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
	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/internal/service/models/opinion"
)

type stubService struct {
	gotOrderID   int64
	gotSubjectID int64
	gotRating    int
	gotContent   string
	created      *opinion.Opinion
	err          error
}

func (s *stubService) AddOpinion(_ context.Context, orderID, subjectID int64, rating int, content string) (*opinion.Opinion, error) {
	s.gotOrderID = orderID
	s.gotSubjectID = subjectID
	s.gotRating = rating
	s.gotContent = content

	return s.created, s.err
}

func newRequest(orderID, body string, principal *identity.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID+"/opinions", strings.NewReader(body))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", orderID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)

	if principal != nil {
		ctx = identity.WithPrincipal(ctx, *principal)
	}

	return req.WithContext(ctx)
}

func TestAddOpinion(t *testing.T) {
	svc := &stubService{
		created: &opinion.Opinion{ID: 3, OrderID: 7, Rating: 5, Content: "very good"},
	}
	principal := &identity.Principal{SubjectID: 5, Role: identity.RoleCustomer}

	rec := httptest.NewRecorder()
	AddOpinion(rec, newRequest("7", `{"rating": 5, "content": "very good"}`, principal), svc)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.gotOrderID)
	assert.Equal(t, int64(5), svc.gotSubjectID)
	assert.Equal(t, 5, svc.gotRating)
	assert.Equal(t, "very good", svc.gotContent)

	var created opinion.Opinion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.ID)
}

func TestAddOpinion_NoPrincipal(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	AddOpinion(rec, newRequest("7", `{"rating": 5, "content": "very good"}`, nil), svc)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddOpinion_ServiceError(t *testing.T) {
	svc := &stubService{
		err: apperr.Conflict(
			"duplicate-opinion",
			"Opinion already exists",
			"An opinion has already been added to this order.",
		),
	}
	principal := &identity.Principal{SubjectID: 5, Role: identity.RoleCustomer}

	rec := httptest.NewRecorder()
	AddOpinion(rec, newRequest("7", `{"rating": 2, "content": "second"}`, principal), svc)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://webshop-labs.github.io/errors/duplicate-opinion", body["type"])
}
