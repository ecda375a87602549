// Package draft holds the product form being authored and its submit-time
// validation.
package draft

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
)

const (
	MsgRequiredFields = "All required fields must be valid: name, product details, price > 0, quantity > 0"
	MsgOptionalFields = "Category and unit must be valid, discount and tax must be between 0 and 100"
)

// ProductDraft keeps the form values as the operator typed them. Numbers are
// only parsed by Validate.
type ProductDraft struct {
	Name            string          `json:"name"`
	Details         string          `json:"productDetails"`
	Price           string          `json:"price"`
	Category        domain.Category `json:"category"`
	Quantity        string          `json:"quantity"`
	Unit            domain.Unit     `json:"unit"`
	DiscountPercent string          `json:"discountPercent"`
	TaxPercent      string          `json:"taxPercent"`
}

func New() ProductDraft {
	return ProductDraft{Category: domain.CategoryFruits, Unit: domain.UnitKilogram}
}

// Validated is a draft whose fields passed Validate, with numbers parsed.
type Validated struct {
	Name     string
	Details  string
	Price    float64
	Category domain.Category
	Quantity int
	Unit     domain.Unit
	Discount float64
	Tax      float64
}

type requiredFields struct {
	Name     string  `validate:"required"`
	Details  string  `validate:"required"`
	Price    float64 `validate:"gt=0"`
	Quantity int     `validate:"gt=0"`
}

type optionalFields struct {
	Category string  `validate:"category"`
	Unit     string  `validate:"unit"`
	Discount float64 `validate:"gte=0,lte=100"`
	Tax      float64 `validate:"gte=0,lte=100"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.Categories, domain.Category(fl.Field().String()))
	})
	v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.Units, domain.Unit(fl.Field().String()))
	})
	return v
}

// Validate checks the whole draft at once. Any failure yields a single
// validation error and leaves d untouched.
func (d ProductDraft) Validate() (Validated, error) {
	price, priceOK := parseNumber(d.Price)
	quantity, quantityErr := strconv.Atoi(strings.TrimSpace(d.Quantity))

	req := requiredFields{
		Name:     strings.TrimSpace(d.Name),
		Details:  strings.TrimSpace(d.Details),
		Price:    price,
		Quantity: quantity,
	}
	if !priceOK || quantityErr != nil || validate.Struct(req) != nil {
		return Validated{}, errs.Validation(MsgRequiredFields)
	}

	discount, discountOK := parsePercent(d.DiscountPercent)
	tax, taxOK := parsePercent(d.TaxPercent)
	opt := optionalFields{
		Category: string(d.Category),
		Unit:     string(d.Unit),
		Discount: discount,
		Tax:      tax,
	}
	if !discountOK || !taxOK || validate.Struct(opt) != nil {
		return Validated{}, errs.Validation(MsgOptionalFields)
	}

	return Validated{
		Name:     d.Name,
		Details:  d.Details,
		Price:    price,
		Category: d.Category,
		Quantity: quantity,
		Unit:     d.Unit,
		Discount: discount,
		Tax:      tax,
	}, nil
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parsePercent treats a blank value as 0.
func parsePercent(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, true
	}
	return parseNumber(s)
}
