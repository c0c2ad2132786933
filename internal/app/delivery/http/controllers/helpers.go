package controllers

import (
	"billsync-service/internal/pkg/exceptions"
	"errors"
)

// asClientError maps backend-layer failures onto the error envelope the UI
// understands. CustomError values pass through untouched.
func asClientError(err error) error {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	// Checked before the transport/backend shapes it may wrap.
	var notRecovered *exceptions.CreateNotRecoveredError
	if errors.As(err, &notRecovered) {
		return exceptions.ErrConsommationCreateFailed(err)
	}

	var transportErr *exceptions.TransportError
	if errors.As(err, &transportErr) {
		return exceptions.ErrBillingBackendUnavailable(err)
	}

	var backendErr *exceptions.BackendError
	if errors.As(err, &backendErr) {
		return exceptions.ErrBillingBackendRejected(err, backendErr.StatusCode)
	}

	return exceptions.ErrServerProcess(err)
}
