// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The codes follow the failure taxonomy of the poller: construction errors
// abort startup, configuration errors abort a device session before polling,
// transport errors abort a single poll and decode errors never surface.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTransport,
//	    "failed to walk subtree",
//	    cause,
//	    map[string]any{
//	        "host": host,
//	        "oid":  rootOID,
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeConfiguration) {
//	    // do not retry
//	}
package errors
