package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/order/internal/apperr"
)

func TestMarshalInlinesExtras(t *testing.T) {
	p := Problem{
		Type:     typePrefix + "unknown-product",
		Title:    "Unknown product",
		Detail:   "The order references products that do not exist in the catalog.",
		Status:   http.StatusNotFound,
		Instance: "/api/orders",
		Extras:   map[string]any{"missing_product_ids": []int64{7, 9}},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, typePrefix+"unknown-product", body["type"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Equal(t, []any{float64(7), float64(9)}, body["missing_product_ids"])
	assert.NotContains(t, body, "extras")
}

func TestWriteError(t *testing.T) {
	t.Run("structured error", func(t *testing.T) {
		appErr := apperr.Conflict(
			"duplicate-opinion",
			"Opinion already exists",
			"An opinion has already been added to this order.",
		)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/7/opinions", nil)

		WriteError(rec, req, appErr)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, typePrefix+"duplicate-opinion", body["type"])
		assert.Equal(t, "/api/orders/7/opinions", body["instance"])
	})

	t.Run("untyped error becomes 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

		WriteError(rec, req, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, typePrefix+"internal", body["type"])
	})
}
