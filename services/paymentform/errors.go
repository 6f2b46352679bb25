package paymentform

import (
	"fmt"
	"net/http"
	"strings"
)

type Violation struct {
	Field   string
	Message string
}

// ValidationError holds every violation found, not just the first one.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, ", ")
}

func (e *ValidationError) GetHTTPErrorCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ViolationsByField() map[string]string {
	byField := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		byField[v.Field] = v.Message
	}
	return byField
}

// TokenizationError carries the message of the tokenization provider unchanged.
type TokenizationError struct {
	Message string
}

func (e *TokenizationError) Error() string {
	return e.Message
}

func (e *TokenizationError) GetHTTPErrorCode() int {
	return http.StatusPaymentRequired
}

type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("Payment could not be completed: %s", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func (e *SubmissionError) GetHTTPErrorCode() int {
	return http.StatusBadGateway
}
