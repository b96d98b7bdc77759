package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"

	// Stage 1: fetching the store page.
	ErrCodeFetchStatus  = "FETCH_HTTP_STATUS"
	ErrCodeFetchNetwork = "FETCH_NETWORK"

	// Stage 4: requesting the structured report from the model.
	ErrCodeProviderFailure = "LLM_PROVIDER_FAILURE"
	ErrCodeProviderAuth    = "LLM_AUTH_FAILURE"
	ErrCodeProviderRate    = "LLM_RATE_LIMITED"
	ErrCodeParseFailure    = "LLM_PARSE_FAILURE"

	// Stage 5: rendering the report.
	ErrCodeRenderMissing = "RENDER_MISSING_FIELD"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// HTTPStatus carries the upstream status code for FETCH_HTTP_STATUS.
	HTTPStatus int `json:"http_status,omitempty"`

	// Raw carries the unparsed model output for LLM_PARSE_FAILURE so the
	// operator can diagnose what the model actually returned.
	Raw string `json:"raw,omitempty"`
}

// AuditError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type AuditError struct {
	Code    string
	Message string
	Err     error // wrapped original error

	// HTTPStatus is set for ErrCodeFetchStatus.
	HTTPStatus int

	// Raw is set for ErrCodeParseFailure: the model text that failed to parse.
	Raw string
}

func (e *AuditError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError.
func NewAuditError(code, message string, err error) *AuditError {
	return &AuditError{Code: code, Message: message, Err: err}
}

// NewFetchStatusError creates the error for a non-200 upstream response.
func NewFetchStatusError(status int, url string) *AuditError {
	return &AuditError{
		Code:       ErrCodeFetchStatus,
		Message:    fmt.Sprintf("store returned HTTP %d for %s (the site may be protected or the URL wrong)", status, url),
		HTTPStatus: status,
	}
}

// NewParseFailure creates the error for model output that failed schema parsing.
func NewParseFailure(message string, raw string, err error) *AuditError {
	return &AuditError{Code: ErrCodeParseFailure, Message: message, Raw: raw, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *AuditError) ToDetail() *ErrorDetail {
	return &ErrorDetail{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Raw:        e.Raw,
	}
}
