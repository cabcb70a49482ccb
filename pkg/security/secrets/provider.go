// Package secrets resolves credentials from the environment or a mounted
// secrets directory.
//
// The distill service needs exactly one secret, the completion API key. It
// is looked up on every request so a key added, rotated, or removed after
// startup takes effect without a restart:
//
//	mgr := secrets.NewManager([]secrets.SecretProvider{
//	    secrets.NewEnvProvider(""),
//	}, secrets.CacheConfig{})
//	key, err := mgr.GetSecret(ctx, "openai-api-key") // reads OPENAI_API_KEY
//
// Secret values must never be logged. Names are redacted in debug output.
package secrets

import (
	"context"
	"errors"
)

// ErrSecretNotFound is returned when no provider holds the requested secret.
var ErrSecretNotFound = errors.New("secret not found")

// SecretProvider retrieves secrets from a backend.
type SecretProvider interface {
	// GetSecret retrieves a secret by name. A missing secret wraps
	// ErrSecretNotFound.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name (env, file).
	Provider() string

	// Supports indicates if this provider may hold the given secret name.
	Supports(name string) bool
}

// RefreshableProvider can reload secrets without restart.
type RefreshableProvider interface {
	SecretProvider

	// Refresh drops any values the provider has cached.
	Refresh(ctx context.Context) error
}

// changeNotifier is implemented by providers that detect changes on their
// own (the watching FileProvider) so the Manager can drop its cache too.
type changeNotifier interface {
	OnChange(fn func())
}
