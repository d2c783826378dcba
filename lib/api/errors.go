package api

import (
	"net/http"
)

// ErrorKind classifies why a request could not be served
type ErrorKind int

const (
	// RequestMalformed means the body was missing or could not be parsed
	RequestMalformed ErrorKind = iota + 1
	// ValidationFailed means the grant type was unsupported or a required field was missing
	ValidationFailed
	// ConfigurationMissing means the user pool or client id was not configured
	ConfigurationMissing
	// ChallengeRequired means the provider asked for another step instead of issuing tokens
	ChallengeRequired
	// ProviderFailure covers every error raised by the identity provider call
	ProviderFailure
)

func (k ErrorKind) String() string {
	switch k {
	case RequestMalformed:
		return "RequestMalformed"
	case ValidationFailed:
		return "ValidationFailed"
	case ConfigurationMissing:
		return "ConfigurationMissing"
	case ChallengeRequired:
		return "ChallengeRequired"
	case ProviderFailure:
		return "ProviderFailure"
	default:
		return "Unknown"
	}
}

// StatusCode maps the kind onto the HTTP status returned to the caller
func (k ErrorKind) StatusCode() int {
	switch k {
	case RequestMalformed, ValidationFailed:
		return http.StatusBadRequest
	case ChallengeRequired:
		return http.StatusUnauthorized
	case ProviderFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Failure is a request outcome that ends in an error envelope
type Failure struct {
	Kind    ErrorKind
	Message string // Message exposed to the caller
	Err     error  // Underlying cause, logged but never serialized
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Kind.String() + ": " + f.Message + ": " + f.Err.Error()
	}
	return f.Kind.String() + ": " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// StatusCode returns the HTTP status for this failure
func (f *Failure) StatusCode() int {
	return f.Kind.StatusCode()
}

// NewFailure creates a Failure without an underlying cause
func NewFailure(kind ErrorKind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// WrapFailure creates a Failure carrying the error that caused it
func WrapFailure(kind ErrorKind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: err}
}
