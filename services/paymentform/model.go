package paymentform

import (
	"fmt"
	"strings"
	"time"

	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/services/checkoutapi"
)

const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldAddressLine1 = "addressLine1"
	FieldCity         = "city"
	FieldPostalCode   = "postalCode"
	FieldCountry      = "country"
	FieldPhone        = "phone"
)

// FieldNames lists the billing fields in the order they appear on the form.
var FieldNames = []string{FieldName, FieldEmail, FieldAddressLine1, FieldCity, FieldPostalCode, FieldCountry, FieldPhone}

var fieldLabels = map[string]string{
	FieldName:         "Name",
	FieldEmail:        "Email",
	FieldAddressLine1: "Address Line 1",
	FieldCity:         "City",
	FieldPostalCode:   "Postal Code",
	FieldCountry:      "Country",
	FieldPhone:        "Phone",
}

type BillingDetails struct {
	Name         string `form:"name" json:"name" validate:"required"`
	Email        string `form:"email" json:"email" validate:"required,email"`
	AddressLine1 string `form:"addressLine1" json:"addressLine1" validate:"required"`
	City         string `form:"city" json:"city" validate:"required"`
	PostalCode   string `form:"postalCode" json:"postalCode" validate:"required"`
	Country      string `form:"country" json:"country" validate:"required"`
	Phone        string `form:"phone" json:"phone" validate:"required"`
}

// With returns a copy in which only the named field has been replaced.
func (b BillingDetails) With(fieldName string, value string) (BillingDetails, error) {
	switch fieldName {
	case FieldName:
		b.Name = value
	case FieldEmail:
		b.Email = value
	case FieldAddressLine1:
		b.AddressLine1 = value
	case FieldCity:
		b.City = value
	case FieldPostalCode:
		b.PostalCode = value
	case FieldCountry:
		b.Country = value
	case FieldPhone:
		b.Phone = value
	default:
		return b, myerrors.NewInvalidInputError(fmt.Errorf("unknown billing field '%s'", fieldName))
	}
	return b, nil
}

func (b BillingDetails) Get(fieldName string) string {
	switch fieldName {
	case FieldName:
		return b.Name
	case FieldEmail:
		return b.Email
	case FieldAddressLine1:
		return b.AddressLine1
	case FieldCity:
		return b.City
	case FieldPostalCode:
		return b.PostalCode
	case FieldCountry:
		return b.Country
	case FieldPhone:
		return b.Phone
	default:
		return ""
	}
}

func (b BillingDetails) Trimmed() BillingDetails {
	return BillingDetails{
		Name:         strings.TrimSpace(b.Name),
		Email:        strings.TrimSpace(b.Email),
		AddressLine1: strings.TrimSpace(b.AddressLine1),
		City:         strings.TrimSpace(b.City),
		PostalCode:   strings.TrimSpace(b.PostalCode),
		Country:      strings.TrimSpace(b.Country),
		Phone:        strings.TrimSpace(b.Phone),
	}
}

func (b BillingDetails) toCheckoutAPI() checkoutapi.BillingDetails {
	return checkoutapi.BillingDetails{
		Name:         b.Name,
		Email:        b.Email,
		AddressLine1: b.AddressLine1,
		City:         b.City,
		PostalCode:   b.PostalCode,
		Country:      b.Country,
		Phone:        b.Phone,
	}
}

type SubmissionState int

const (
	SubmissionStateIdle SubmissionState = iota
	SubmissionStateValidating
	SubmissionStateTokenizing
	SubmissionStateSubmitting
	SubmissionStateSucceeded
	SubmissionStateFailed
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionStateIdle:
		return "Idle"
	case SubmissionStateValidating:
		return "Validating"
	case SubmissionStateTokenizing:
		return "Tokenizing"
	case SubmissionStateSubmitting:
		return "Submitting"
	case SubmissionStateSucceeded:
		return "Succeeded"
	case SubmissionStateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("SubmissionState(%d)", int(s))
	}
}

// FormState is everything one mounted checkout form knows about itself.
type FormState struct {
	UID          string
	CartUID      string
	Billing      BillingDetails
	State        SubmissionState
	ErrorMessage string
	Violations   map[string]string
	InProgress   bool
	Attempts     int
	CreatedAt    time.Time
	LastModified *time.Time
}

func (f FormState) HasError() bool {
	return f.ErrorMessage != ""
}

func (f FormState) IsSubmitDisabled() bool {
	return f.InProgress
}

func (f FormState) SubmitLabel() string {
	if f.InProgress {
		return "Processing..."
	}
	return "Pay Now"
}
