package exceptions

import (
	"billsync-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"strings"
)

// TransportError wraps a network-level failure talking to the billing
// backend. The HTTP exchange never completed, so nothing can be said about
// whether the backend acted on the request.
type TransportError struct {
	Resource string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %s: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError is an HTTP >= 400 answer from the billing backend, with the
// raw body kept for defect-signature inspection.
type BackendError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("billing backend returned %d for %s", e.StatusCode, e.Resource)
}

// CreateNotRecoveredError is raised when a consommation create failed, the
// failure looked ambiguous, and recovery still found no created record.
// ExpectedItemCount is carried for diagnostics.
type CreateNotRecoveredError struct {
	ExpectedItemCount int
	Err               error
}

func (e *CreateNotRecoveredError) Error() string {
	return fmt.Sprintf(constvars.ErrDevCreateNotRecovered, e.ExpectedItemCount)
}

func (e *CreateNotRecoveredError) Unwrap() error {
	return e.Err
}

func NewTransportError(resource string, err error) *TransportError {
	return &TransportError{Resource: resource, Err: err}
}

func NewBackendError(resource string, statusCode int, body string) *BackendError {
	return &BackendError{Resource: resource, StatusCode: statusCode, Body: body}
}

// MentionsDefectField reports whether the backend error body names the
// internal field involved in the known serialization defect.
func MentionsDefectField(body string) bool {
	return strings.Contains(body, constvars.DefectMarkerInternalField)
}

// MentionsDefectExceptionClass reports whether the backend error body names
// the exception class thrown by the known serialization defect.
func MentionsDefectExceptionClass(body string) bool {
	return strings.Contains(body, constvars.DefectMarkerExceptionClass)
}

// HasServerErrorBody reports the third ambiguity signature: the backend
// answered 500 but still produced a body, which the defective serializer does
// after the record was persisted.
func HasServerErrorBody(err *BackendError) bool {
	return err.StatusCode == constvars.StatusInternalServerError && strings.TrimSpace(err.Body) != ""
}

// IsAmbiguousCreateFailure classifies a consommation create failure. A clean
// HTTP error status with none of the defect signatures is unambiguous; the
// known serialization-defect shapes mean the create may have persisted even
// though the call failed, so the caller should attempt recovery.
func IsAmbiguousCreateFailure(err error) bool {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if MentionsDefectField(backendErr.Body) || MentionsDefectExceptionClass(backendErr.Body) {
			return true
		}
		return HasServerErrorBody(backendErr)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		message := transportErr.Err.Error()
		return MentionsDefectField(message) || MentionsDefectExceptionClass(message)
	}

	return false
}
