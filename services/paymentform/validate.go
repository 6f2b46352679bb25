package paymentform

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var billingValidator = newBillingValidator()

func newBillingValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBilling checks the trimmed billing details and reports all violations at once.
func validateBilling(billing BillingDetails) error {
	err := billingValidator.Struct(billing.Trimmed())
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("error validating billing details: %s", err)
	}

	violations := make([]Violation, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, Violation{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}

	return &ValidationError{Violations: violations}
}

func messageFor(fieldName string, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", fieldLabels[fieldName])
	case "email":
		return "Invalid email"
	default:
		return fmt.Sprintf("%s is invalid", fieldLabels[fieldName])
	}
}
