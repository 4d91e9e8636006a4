// Package errors provides the standardized error taxonomy shared by the HTTP layer and the job workers.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller input errors.
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeRequestTooLarge ErrorCode = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"

	// Provider transport errors.
	ErrCodeGenAICredentialMissing ErrorCode = "GENAI_CREDENTIAL_MISSING"
	ErrCodeGenAIRequestFailed     ErrorCode = "GENAI_REQUEST_FAILED"
	ErrCodeGenAITimeout           ErrorCode = "GENAI_TIMEOUT"

	// Malformed provider output.
	ErrCodeMalformedOutput ErrorCode = "MALFORMED_OUTPUT"
	ErrCodeSchemaMismatch  ErrorCode = "SCHEMA_MISMATCH"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is the shape thrown to the Zeebe engine when a job cannot be served.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for job variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidRequestError reports a missing or malformed caller field. message is surfaced verbatim.
func NewInvalidRequestError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRequestTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTooLarge,
		Message:   "Request body too large",
		Details:   fmt.Sprintf("limit: %d bytes", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitedError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests, please slow down",
		Details:   fmt.Sprintf("client: %s", key),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAICredentialMissingError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAICredentialMissing,
		Message:   "Generation provider credential is not configured",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAIRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIRequestFailed,
		Message:   "Generation provider request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAITimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generation provider timeout",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedOutputError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedOutput,
		Message:   "Invalid JSON response from AI",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSchemaMismatchError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaMismatch,
		Message:   "Missing required fields",
		Details:   strings.Join(missing, ", "),
		Retryable: false,
		Metadata:  map[string]interface{}{"missingFields": missing},
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Something went wrong!",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Conversions
// ==========================

// ConvertToBPMNError converts a StandardError for the Zeebe engine. Codes are passed through.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// HTTPStatus maps an error code to the response status of the REST layer.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeGenAITimeout:
		return http.StatusGatewayTimeout
	case ErrCodeGenAIRequestFailed, ErrCodeGenAICredentialMissing:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// GetErrorCategory groups error codes by origin: caller input, provider transport, malformed output.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "GENAI"):
		return "PROVIDER"
	case code == ErrCodeMalformedOutput || code == ErrCodeSchemaMismatch:
		return "OUTPUT"
	case code == ErrCodeInvalidRequest || code == ErrCodeRequestTooLarge || code == ErrCodeRateLimited:
		return "INPUT"
	default:
		return "OTHER"
	}
}
