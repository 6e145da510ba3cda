package ordersvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/order/internal/apperr"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName: "Jan Kowalski",
		Email:        "jan@example.com",
		Phone:        "+48123456789",
		Lines: []LineRequest{
			{ProductID: 1, Quantity: 2},
		},
	}
}

func TestValidateCreateOrder_Valid(t *testing.T) {
	assert.NoError(t, validateCreateOrder(validRequest()))
}

func TestValidateCreateOrder_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		mut     func(r *CreateOrderRequest)
		missing []string
	}{
		{
			name:    "no customer name",
			mut:     func(r *CreateOrderRequest) { r.CustomerName = "" },
			missing: []string{"customer_name"},
		},
		{
			name:    "no email",
			mut:     func(r *CreateOrderRequest) { r.Email = "" },
			missing: []string{"email"},
		},
		{
			name:    "no phone",
			mut:     func(r *CreateOrderRequest) { r.Phone = "" },
			missing: []string{"phone"},
		},
		{
			name: "everything missing",
			mut: func(r *CreateOrderRequest) {
				r.CustomerName, r.Email, r.Phone = "", "", ""
			},
			missing: []string{"customer_name", "email", "phone"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mut(&req)

			err := validateCreateOrder(req)
			require.Error(t, err)

			appErr := apperr.From(err)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, "missing-fields", appErr.Slug)
			assert.Equal(t, tc.missing, appErr.Extras["missing_fields"])
		})
	}
}

func TestValidateCreateOrder_Phone(t *testing.T) {
	valid := []string{
		"+48123456789",
		"+12345678",        // minimal: + and 8 digits
		"+123456789012345", // maximal: + and 15 digits
	}
	for _, phone := range valid {
		req := validRequest()
		req.Phone = phone
		assert.NoErrorf(t, validateCreateOrder(req), "phone %q", phone)
	}

	invalid := []string{
		"48123456789",       // no plus
		"+0123456789",       // leading zero
		"+1234567",          // too short
		"+1234567890123456", // too long
		"+48 123 456 789",   // spaces
		"+48abc456789",      // letters
	}
	for _, phone := range invalid {
		req := validRequest()
		req.Phone = phone

		err := validateCreateOrder(req)
		require.Errorf(t, err, "phone %q", phone)

		appErr := apperr.From(err)
		assert.Equal(t, "invalid-phone", appErr.Slug)
		assert.Equal(t, phone, appErr.Extras["provided_number"])
		assert.Equal(t, len(phone), appErr.Extras["number_length"])
	}
}

func TestValidateCreateOrder_EmptyProductList(t *testing.T) {
	req := validRequest()
	req.Lines = nil

	err := validateCreateOrder(req)
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "empty-order", appErr.Slug)
}

func TestValidateCreateOrder_Quantity(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		req := validRequest()
		req.Lines = []LineRequest{{ProductID: 9, Quantity: qty}}

		err := validateCreateOrder(req)
		require.Errorf(t, err, "quantity %d", qty)

		appErr := apperr.From(err)
		assert.Equal(t, "invalid-quantity", appErr.Slug)
		assert.Equal(t, int64(9), appErr.Extras["product_id"])
		assert.Equal(t, qty, appErr.Extras["provided_quantity"])
	}
}

func TestValidateOpinion(t *testing.T) {
	assert.NoError(t, validateOpinion(1, "fine"))
	assert.NoError(t, validateOpinion(5, "great"))

	for _, rating := range []int{0, -1, 6, 100} {
		err := validateOpinion(rating, "content")
		require.Errorf(t, err, "rating %d", rating)
		assert.Equal(t, "invalid-rating", apperr.From(err).Slug)
	}

	for _, content := range []string{"", "   ", "\n\t"} {
		err := validateOpinion(3, content)
		require.Errorf(t, err, "content %q", content)
		assert.Equal(t, "missing-content", apperr.From(err).Slug)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	// A request failing the first check must report that check even when
	// later checks would fail too.
	req := CreateOrderRequest{Phone: "invalid"}

	err := validateCreateOrder(req)
	require.Error(t, err)
	assert.Equal(t, "missing-fields", apperr.From(err).Slug)
}
