package voltax

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// Error is the base error type. Failures that fit no more specific category
// (for example a request that could not even be constructed) surface as a
// bare *Error.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// FieldViolation is one field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports input that failed schema or business-rule checks.
// It is always returned before any network activity, so correcting the input
// and retrying is safe.
type ValidationError struct {
	Message    string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %d field violation(s), first: %s %s",
		e.Message, len(e.Violations), e.Violations[0].Field, e.Violations[0].Message)
}

func newValidationError(message string, violations ...FieldViolation) *ValidationError {
	return &ValidationError{Message: message, Violations: violations}
}

// GatewayError reports a rejection by the remote gateway: a non-success HTTP
// status, or an application-level failure flag on an otherwise successful
// response. It carries enough detail for the caller to decide whether to
// retry, surface the failure, or escalate.
type GatewayError struct {
	Provider   string
	StatusCode int
	Message    string
	Body       json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// NetworkError reports a request that was sent but got no response back:
// timeout, connection failure, DNS failure. The transport error is kept for
// diagnostics and unwrapping.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "no response from payment gateway: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// classifyGatewayFailure turns a failed gateway round trip into one of the
// taxonomy errors. Every adapter's failure path funnels through here; the
// adapter supplies only its provider name.
func classifyGatewayFailure(provider string, resp *resty.Response, err error) error {
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return &NetworkError{Err: err}
		}
		return &Error{Message: err.Error()}
	}
	if resp != nil && resp.IsError() {
		body := rawBody(resp)
		return &GatewayError{
			Provider:   provider,
			StatusCode: resp.StatusCode(),
			Message:    gatewayMessage(body),
			Body:       body,
		}
	}
	return &Error{Message: "Unknown error occurred"}
}

// gatewayMessage pulls the conventional message field out of an error body.
// The five gateways use either "message" or "msg".
func gatewayMessage(body []byte) string {
	var probe struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(body, &probe) == nil {
		if probe.Message != "" {
			return probe.Message
		}
		if probe.Msg != "" {
			return probe.Msg
		}
	}
	return "request rejected by gateway"
}
