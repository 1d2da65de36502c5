package cloud

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/aws/smithy-go"
)

type ErrorKind string

const (
	ErrAuthFailed  ErrorKind = "auth_failed"
	ErrForbidden   ErrorKind = "forbidden"
	ErrThrottled   ErrorKind = "throttled"
	ErrUnreachable ErrorKind = "unreachable"
	ErrNotFound    ErrorKind = "not_found"
	ErrInvalid     ErrorKind = "invalid_request"
	ErrUnknown     ErrorKind = "unknown"
)

type APIError struct {
	Kind      ErrorKind
	Operation string
	Err       error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrAuthFailed:
		return fmt.Sprintf("%s: aws authentication failed: %v", e.Operation, e.Err)
	case ErrForbidden:
		return fmt.Sprintf("%s: aws authorization failed: %v", e.Operation, e.Err)
	case ErrThrottled:
		return fmt.Sprintf("%s: aws request throttled: %v", e.Operation, e.Err)
	case ErrUnreachable:
		return fmt.Sprintf("%s: aws endpoint unreachable: %v", e.Operation, e.Err)
	default:
		return fmt.Sprintf("%s: aws API error: %v", e.Operation, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

var errorCodeKinds = map[string]ErrorKind{
	"AuthFailure":                 ErrAuthFailed,
	"InvalidClientTokenId":        ErrAuthFailed,
	"ExpiredToken":                ErrAuthFailed,
	"ExpiredTokenException":       ErrAuthFailed,
	"SignatureDoesNotMatch":       ErrAuthFailed,
	"UnrecognizedClientException": ErrAuthFailed,
	"UnauthorizedOperation":       ErrForbidden,
	"AccessDenied":                ErrForbidden,
	"AccessDeniedException":       ErrForbidden,
	"RequestLimitExceeded":        ErrThrottled,
	"Throttling":                  ErrThrottled,
	"ThrottlingException":         ErrThrottled,
	"PriorRequestNotComplete":     ErrThrottled,
	"NoSuchHostedZone":            ErrNotFound,
	"NoSuchChange":                ErrNotFound,
	"InvalidInstanceID.NotFound":  ErrNotFound,
	"InvalidChangeBatch":          ErrInvalid,
	"InvalidInput":                ErrInvalid,
	"InvalidParameterValue":       ErrInvalid,
}

func classifyAWSError(operation string, err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if kind, ok := errorCodeKinds[apiErr.ErrorCode()]; ok {
			return &APIError{Kind: kind, Operation: operation, Err: err}
		}
		return &APIError{Kind: ErrUnknown, Operation: operation, Err: err}
	}
	if isCredentialsError(err) {
		return &APIError{Kind: ErrAuthFailed, Operation: operation, Err: err}
	}
	if isUnreachable(err) {
		return &APIError{Kind: ErrUnreachable, Operation: operation, Err: err}
	}
	return &APIError{Kind: ErrUnknown, Operation: operation, Err: err}
}

// KindOf reports the classified kind of err, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrUnknown
}

func isCredentialsError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "no ec2 imds role found") ||
		strings.Contains(msg, "anonymous credentials")
}

func isUnreachable(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{"connection refused", "no such host", "i/o timeout", "context deadline exceeded"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
