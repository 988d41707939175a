package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches any upstream response with a non-2xx status.
	ErrRequestFailed = errors.New("request failed")
	// ErrDecodeFailed matches any payload that could not be decoded.
	ErrDecodeFailed = errors.New("decode failed")
)

// RequestFailedError is returned when the upstream answers with a non-success status.
type RequestFailedError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *RequestFailedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// DecodeFailedError is returned when a body is not valid JSON or not convertible to the requested scalar.
type DecodeFailedError struct {
	Kind string
	Err  error
}

func (e *DecodeFailedError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

// Is reports whether target is ErrDecodeFailed.
func (e *DecodeFailedError) Is(target error) bool {
	return target == ErrDecodeFailed
}

func (e *DecodeFailedError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by a RequestFailedError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, true
	}
	return 0, false
}
