package domain

import "errors"

var (
	ErrNotConfigured    = errors.New("balance source not configured")
	ErrTransport        = errors.New("upstream transport failure")
	ErrUpstreamRejected = errors.New("upstream rejected request")
	ErrMissingPayload   = errors.New("upstream response missing data")
	ErrParse            = errors.New("upstream response malformed")
	ErrPersistence      = errors.New("balance cache persistence failure")
	ErrSecretNotFound   = errors.New("secret not found")
)
