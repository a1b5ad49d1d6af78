// Package apierror defines the error envelope returned to API clients.
// Every 4xx/5xx body goes through it, so internals (SQL errors, stack
// traces) never reach the wire.
package apierror

// Machine-readable codes the dashboard switches on.
const (
	CodeNotFound          = "not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeInvalidMovement   = "invalid_movement_type"
	CodeConflict          = "conflict"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal"
)

// APIError is the canonical error envelope for all non-2xx responses.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// WithCode attaches a machine-readable code alongside the human message.
func WithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError reports per-field failures from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
