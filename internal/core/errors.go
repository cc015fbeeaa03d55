package core

import "fmt"

// ProviderError signals that an AI provider could not produce a review:
// either the remote call failed after exhausting retries, or a fatal client
// error (bad credential, bad request) occurred on the first attempt.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps an underlying failure with provider identity.
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Err: err}
}

// ValidationError signals invalid pull request input. It aborts the pipeline
// before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid pull request data: %s: %s", e.Field, e.Message)
}

// NewValidationError describes why the given field made the input unusable.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
