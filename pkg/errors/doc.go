// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The agent loop classifies every failure by code: NOT_FOUND and
// MALFORMED_INVOCATION are fed back to the oracle, SERVICE_UNAVAILABLE and
// ORACLE_UNAVAILABLE end a question after bounded retries.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to list pods",
//	    cause,
//	    map[string]any{
//	        "namespace": ns,
//	    },
//	)
//
//	if errors.CodeOf(err) == errors.ErrCodeNotFound {
//	    // recoverable
//	}
package errors
