package health

import (
	"context"
	"errors"
	"fmt"
)

// CredentialResolver resolves the completion API credential.
type CredentialResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// ErrCredentialMissing is reported when no API key is configured.
var ErrCredentialMissing = errors.New("completion credential not configured")

// CredentialCheck fails while the completion API key cannot be resolved.
// The key itself never appears in the result.
func CredentialCheck(resolver CredentialResolver) CheckFunc {
	return func(ctx context.Context) error {
		key, err := resolver.Resolve(ctx)
		if err != nil || key == "" {
			return ErrCredentialMissing
		}
		return nil
	}
}

// SchedulerCheck fails when a background job such as the rate limit sweeper
// is not running.
func SchedulerCheck(name string, running func() bool) CheckFunc {
	return func(ctx context.Context) error {
		if !running() {
			return fmt.Errorf("%s is not running", name)
		}
		return nil
	}
}
