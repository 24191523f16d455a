// Package validation checks shoe records at the input boundary (HTTP bodies
// and catalog files) before they reach the resolver, which never validates.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fleveque/shoe-card-service/internal/model"
)

// Validator wraps a configured go-playground validator instance.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that understands decimal fields and the
// sale-price-below-price rule.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names (sale_price) instead of Go field names (SalePrice).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal is a struct, so numeric tags like gte need a float view.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	v.RegisterStructValidation(saleBelowPrice, model.ShoeRecord{})

	return &Validator{validate: v}
}

func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.InexactFloat64()
	}
	return nil
}

func saleBelowPrice(sl validator.StructLevel) {
	shoe := sl.Current().Interface().(model.ShoeRecord)
	if shoe.SalePrice.Valid && !shoe.SalePrice.Decimal.LessThan(shoe.Price) {
		sl.ReportError(shoe.SalePrice, "sale_price", "SalePrice", "ltprice", "")
	}
}

// Shoe validates a single record.
func (v *Validator) Shoe(shoe model.ShoeRecord) error {
	return v.validate.Struct(shoe)
}

// Shoes validates every record and reports the index of the first failure.
func (v *Validator) Shoes(shoes []model.ShoeRecord) error {
	for i, s := range shoes {
		if err := v.Shoe(s); err != nil {
			return fmt.Errorf("shoe %d (%s): %w", i, s.Slug, err)
		}
	}
	return nil
}

// FormatError flattens validation errors into field -> message pairs that
// are safe to return to API clients.
func FormatError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "is required"
		case "gte":
			errs[field] = fmt.Sprintf("must be at least %s", e.Param())
		case "ltprice":
			errs[field] = "must be lower than price"
		default:
			errs[field] = fmt.Sprintf("failed %s validation", e.Tag())
		}
	}
	return errs
}
