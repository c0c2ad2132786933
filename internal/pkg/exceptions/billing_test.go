package exceptions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAmbiguousCreateFailure(t *testing.T) {
	t.Run("Backend Error With Defect Field Marker", func(t *testing.T) {
		err := NewBackendError("/consommation", 400, `{"error":"could not serialize patientServiceBill"}`)
		assert.True(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Backend Error With Defect Exception Class", func(t *testing.T) {
		err := NewBackendError("/consommation", 400, "ConversionException: cannot convert")
		assert.True(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Internal Error With Body", func(t *testing.T) {
		err := NewBackendError("/consommation", 500, `{"error":"unexpected state"}`)
		assert.True(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Internal Error With Blank Body Is Clean", func(t *testing.T) {
		err := NewBackendError("/consommation", 500, "   \n")
		assert.False(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Clean Client Rejection", func(t *testing.T) {
		err := NewBackendError("/consommation", 400, "invalid beneficiary")
		assert.False(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Transport Error With Marker In Message", func(t *testing.T) {
		err := NewTransportError("/consommation", errors.New("decode failed near ConversionException"))
		assert.True(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Plain Transport Error Is Not Ambiguous", func(t *testing.T) {
		err := NewTransportError("/consommation", errors.New("connection refused"))
		assert.False(t, IsAmbiguousCreateFailure(err))
	})

	t.Run("Unrelated Error Is Not Ambiguous", func(t *testing.T) {
		assert.False(t, IsAmbiguousCreateFailure(errors.New("ConversionException mentioned in a plain error")))
	})

	t.Run("Wrapped Backend Error Still Classified", func(t *testing.T) {
		inner := NewBackendError("/consommation", 500, "ConversionException")
		wrapped := &TransportError{Resource: "/consommation", Err: inner}
		assert.True(t, IsAmbiguousCreateFailure(wrapped))
	})
}

func TestHasServerErrorBody(t *testing.T) {
	assert.True(t, HasServerErrorBody(NewBackendError("/consommation", 500, "boom")))
	assert.False(t, HasServerErrorBody(NewBackendError("/consommation", 500, "")))
	assert.False(t, HasServerErrorBody(NewBackendError("/consommation", 502, "bad gateway")))
}

func TestCreateNotRecoveredError(t *testing.T) {
	cause := NewBackendError("/consommation", 500, "ConversionException")
	err := &CreateNotRecoveredError{ExpectedItemCount: 3, Err: cause}

	assert.Contains(t, err.Error(), "3")

	var backendErr *BackendError
	assert.True(t, errors.As(err, &backendErr))
	assert.Equal(t, 500, backendErr.StatusCode)
}
