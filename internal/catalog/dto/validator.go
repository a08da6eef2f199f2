package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a form field name to its validation message
type FieldErrors map[string]string

// Validator checks DTOs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator aware of decimal fields and form field names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &Validator{validate: v}
}

// Validate returns the failing fields of the DTO; an empty map means valid
func (v *Validator) Validate(d ProductDTO) FieldErrors {
	fields := FieldErrors{}

	err := v.validate.Struct(d)
	if err == nil {
		return fields
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["_"] = err.Error()
		return fields
	}

	for _, fe := range validationErrors {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

// decimalValue lets numeric tags such as gte and lte apply to decimal fields
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s is required", fe.Field())
	case "min":
		return fmt.Sprintf("The %s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s must have at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("The %s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid", fe.Field())
	}
}
