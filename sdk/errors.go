package vaultsdk

import (
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/endpoint"
)

var (
	// ErrEmptyMount is returned when an operation is called without a mount.
	ErrEmptyMount = errors.New("mount is required")

	// ErrUnknownAlgorithm is returned for an Algorithm outside the supported set.
	ErrUnknownAlgorithm = errors.New("unknown key algorithm")

	// ErrInvalidDigestLength is returned when a hash-signing call receives
	// anything other than a 32-byte digest.
	ErrInvalidDigestLength = encoding.ErrInvalidDigestLength

	// ErrNegativeValue is returned when a transaction amount or gas price is
	// negative.
	ErrNegativeValue = encoding.ErrNegativeValue

	// ErrEmptyResponse is returned when the backend omits the response data.
	ErrEmptyResponse = endpoint.ErrEmptyResponse
)

// ClientError is the single error type returned by Client methods.
type ClientError struct {
	// Op is the name of the failed operation, e.g. "create_key".
	Op string

	// Err is the underlying cause: a transport or backend error from the
	// Vault API client, a response decoding error, or an input error
	// detected before the request was sent.
	Err error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	var respErr *api.ResponseError
	if errors.As(e.Err, &respErr) {
		switch len(respErr.Errors) {
		case 0:
			return fmt.Sprintf("vault: %s: HTTP %d", e.Op, respErr.StatusCode)
		case 1:
			return fmt.Sprintf("vault: %s: %s (HTTP %d)", e.Op, respErr.Errors[0], respErr.StatusCode)
		default:
			return fmt.Sprintf("vault: %s: %v (HTTP %d)", e.Op, respErr.Errors, respErr.StatusCode)
		}
	}
	return fmt.Sprintf("vault: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code of a backend error, or 0 if the
// failure did not come from an HTTP response.
func (e *ClientError) StatusCode() int {
	var respErr *api.ResponseError
	if errors.As(e.Err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}

// Errors returns the error messages of a backend error response.
func (e *ClientError) Errors() []string {
	var respErr *api.ResponseError
	if errors.As(e.Err, &respErr) {
		return respErr.Errors
	}
	return nil
}

func newClientError(op string, err error) error {
	return &ClientError{Op: op, Err: err}
}
