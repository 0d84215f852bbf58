package dotlas

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an APIError into the failure categories callers branch on.
type Kind int

const (
	// KindAuth covers invalid or missing API keys (HTTP 401/403).
	KindAuth Kind = iota + 1
	// KindNotFound covers unknown cities, areas or places (HTTP 404).
	KindNotFound
	// KindValidation covers parameters rejected client-side or by the
	// service (HTTP 400/422).
	KindValidation
	// KindService covers any other non-2xx response.
	KindService
	// KindNetwork covers transport failures: DNS, connect, timeout.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// maxBodySnippet bounds how much of a failed response body is kept for
// diagnostics.
const maxBodySnippet = 512

// APIError is returned for every failed call. StatusCode is zero for
// client-side validation failures and transport errors.
type APIError struct {
	Kind       Kind
	StatusCode int
	Body       string
	cause      error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("dotlas: %s: HTTP %d: %s", e.Kind, e.StatusCode, e.Body)
	case e.cause != nil:
		return fmt.Sprintf("dotlas: %s: %v", e.Kind, e.cause)
	default:
		return fmt.Sprintf("dotlas: %s: %s", e.Kind, e.Body)
	}
}

func (e *APIError) Unwrap() error { return e.cause }

// classifyStatus maps a non-2xx response to an APIError per the service's
// documented status usage: 401/403 invalid key, 404 missing data, 400/422
// invalid parameters.
func classifyStatus(status int, body []byte) *APIError {
	kind := KindService
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindAuth
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = KindValidation
	}
	return &APIError{Kind: kind, StatusCode: status, Body: snippet(body)}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		s = s[:maxBodySnippet]
	}
	return s
}

func newValidationError(format string, args ...any) *APIError {
	return &APIError{Kind: KindValidation, Body: fmt.Sprintf(format, args...)}
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, cause: err}
}

func kindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsAuth reports whether err is an auth failure.
func IsAuth(err error) bool { return kindOf(err) == KindAuth }

// IsNotFound reports whether err is a missing-data failure.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsValidation reports whether err is a parameter validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsService reports whether err is an unclassified server failure.
func IsService(err error) bool { return kindOf(err) == KindService }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return kindOf(err) == KindNetwork }
