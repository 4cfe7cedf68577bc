// File: types/errors.go
package types

import "fmt"

// ApiErrorKind classifies the errors the SDK surfaces.
type ApiErrorKind string

const (
	// InvalidFilter means an unknown filter name was supplied.
	InvalidFilter ApiErrorKind = "InvalidFilter"
	// InvalidFilterValue means the filter name is known but its value is
	// not allowed (bad area type, bad date format).
	InvalidFilterValue ApiErrorKind = "InvalidFilterValue"
	// InvalidStructure means an unknown structure field was supplied.
	InvalidStructure ApiErrorKind = "InvalidStructure"
	// TransportError means the HTTP call itself failed, or the server
	// replied with a non-2xx status.
	TransportError ApiErrorKind = "TransportError"
	// DecodeError means the response body was not parseable as JSON.
	DecodeError ApiErrorKind = "DecodeError"
)

// ApiError is the error type returned by the SDK. Msg names the offending
// input and, for validation errors, the full set of legal alternatives.
type ApiError struct {
	Kind ApiErrorKind
	Msg  string
	Err  error
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ApiError) Unwrap() error {
	return e.Err
}
