package dajiala

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRestricted marks content the upstream will never serve again.
// Matched via errors.Is against *UpstreamError.
var ErrRestricted = errors.New("content access restricted")

// ErrEmptyContent means the call succeeded but yielded no usable content.
var ErrEmptyContent = errors.New("empty content")

// TransportError wraps a network-level failure (connection error,
// timeout). The client never retries these; the enclosing operation
// decides what to do.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is an API-level rejection: a successful round trip whose
// envelope carried a non-zero code.
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Code, e.Message)
}

// Restricted reports whether the rejection is the permanent
// "restricted access" kind.
func (e *UpstreamError) Restricted() bool {
	return strings.Contains(e.Message, "限制访问") ||
		strings.Contains(strings.ToLower(e.Message), "restricted")
}

// Is lets errors.Is(err, ErrRestricted) match restricted rejections.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrRestricted && e.Restricted()
}

// DecodeError is a schema mismatch between the envelope's data payload
// and the endpoint's expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FetchErrorCode maps a backfill error to the code recorded on the
// article, so partial failures stay visible in the persisted snapshot.
func FetchErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRestricted) {
		return "restricted"
	}
	if errors.Is(err, ErrEmptyContent) {
		return "empty_content"
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return err.Error()
}
