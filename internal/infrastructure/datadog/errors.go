package datadog

import "errors"

// Sentinel errors for Datadog sink operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, datadog.ErrSubmitFailed) {
//	    // the whole batch was lost
//	}
var (
	// ErrMissingCredentials indicates the API or application key is not set.
	ErrMissingCredentials = errors.New("datadog: api_key and app_key are required")

	// ErrSubmitFailed indicates a metrics submission failed at the
	// transport level (network, auth, server error).
	ErrSubmitFailed = errors.New("datadog: submit failed")
)
