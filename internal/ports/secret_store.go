package ports

import "context"

// SecretStore holds the dashboard access token. Get reports
// domain.ErrSecretNotFound for an unknown key and Delete of an unknown key
// succeeds.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
