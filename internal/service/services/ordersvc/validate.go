package ordersvc

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/service/models/opinion"
)

// phonePattern is the accepted international phone format: a plus sign, a
// leading significant digit and 7 to 14 further digits. Registered as a
// custom tag because the built-in e164 tag also accepts a leading zero.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

// requestFieldNames maps validated struct fields to their wire names.
var requestFieldNames = map[string]string{
	"CustomerName": "customer_name",
	"Email":        "email",
	"Phone":        "phone",
}

// validateCreateOrder checks an order-creation request and translates the
// first failing stage into a structured error: missing customer fields win
// over a malformed phone, which wins over the product list checks. No
// external calls are made.
func validateCreateOrder(req CreateOrderRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Upstream("failed to validate order request", err)
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() != "required" {
			continue
		}
		if name, ok := requestFieldNames[fe.StructField()]; ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperr.Validation(
			"missing-fields",
			"Missing required customer data",
			"Required customer fields are empty.",
		).With("missing_fields", missing)
	}

	// Field errors arrive in struct order, so the first match below already
	// follows the check precedence.
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "Phone":
			return apperr.Validation(
				"invalid-phone",
				"Invalid phone number format",
				"The phone number contains illegal characters, has a wrong length or does not start with +.",
			).With("provided_number", req.Phone).With("number_length", len(req.Phone))
		case "Lines":
			return apperr.Validation(
				"empty-order",
				"Empty order",
				"An order must contain at least one product.",
			)
		case "Quantity":
			line := req.Lines[lineIndex(fe.StructNamespace())]

			return apperr.Validation(
				"invalid-quantity",
				"Invalid product quantity",
				fmt.Sprintf("Product %d has an invalid quantity (%d). Quantity must be a number greater than zero.",
					line.ProductID, line.Quantity),
			).With("product_id", line.ProductID).With("provided_quantity", line.Quantity)
		}
	}

	return apperr.Validation("invalid-request", "Invalid order request", fieldErrs.Error())
}

// lineIndex extracts the slice index from a dive error namespace such as
// "CreateOrderRequest.Lines[2].Quantity".
func lineIndex(namespace string) int {
	open := strings.IndexByte(namespace, '[')
	closing := strings.IndexByte(namespace, ']')
	idx, err := strconv.Atoi(namespace[open+1 : closing])
	if err != nil {
		return 0
	}

	return idx
}

// opinionInput carries the opinion fields through the validator.
type opinionInput struct {
	Rating  int    `validate:"gte=1,lte=5"`
	Content string `validate:"notblank"`
}

// validateOpinion checks the rating range and opinion content.
func validateOpinion(rating int, content string) error {
	err := validate.Struct(opinionInput{Rating: rating, Content: content})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Upstream("failed to validate opinion", err)
	}

	for _, fe := range fieldErrs {
		if fe.StructField() == "Rating" {
			return apperr.Validation(
				"invalid-rating",
				"Invalid rating",
				fmt.Sprintf("Rating must be an integer between %d and %d.", opinion.MinRating, opinion.MaxRating),
			).With("provided_rating", rating)
		}
	}

	return apperr.Validation(
		"missing-content",
		"Missing opinion content",
		"Opinion content is required and must not be empty.",
	)
}
