package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Manager tries providers in order and caches the first value found.
type Manager struct {
	providers []SecretProvider
	cache     *Cache
	logger    *slog.Logger
}

// NewManager creates a manager over providers. Providers that detect their
// own changes clear the manager cache when they do.
func NewManager(providers []SecretProvider, cacheConfig CacheConfig) *Manager {
	m := &Manager{
		providers: providers,
		cache:     NewCache(cacheConfig),
		logger:    slog.Default().With("component", "secrets.manager"),
	}

	for _, p := range providers {
		if n, ok := p.(changeNotifier); ok {
			n.OnChange(m.cache.Clear)
		}
	}

	return m
}

// GetSecret returns the value from the first supporting provider that has
// it. When no provider has it the error wraps ErrSecretNotFound.
func (m *Manager) GetSecret(ctx context.Context, name string) (string, error) {
	if value, ok := m.cache.Get(name); ok {
		return value, nil
	}

	var failures []string
	for _, provider := range m.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			failures = append(failures, provider.Provider())
			m.logger.Debug("provider failed to get secret",
				"provider", provider.Provider(),
				"name", redactSecretName(name),
				"error", err,
			)
			continue
		}

		m.cache.Set(name, value)
		return value, nil
	}

	if len(failures) > 0 {
		return "", fmt.Errorf("%w: %q (tried %s)", ErrSecretNotFound, name, strings.Join(failures, ", "))
	}
	return "", fmt.Errorf("%w: %q (no provider supports this secret)", ErrSecretNotFound, name)
}

// Refresh clears every refreshable provider and the manager cache.
func (m *Manager) Refresh(ctx context.Context) error {
	var errs []string
	for _, provider := range m.providers {
		refreshable, ok := provider.(RefreshableProvider)
		if !ok {
			continue
		}
		if err := refreshable.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", provider.Provider(), err))
		}
	}

	m.cache.Clear()

	if len(errs) > 0 {
		return fmt.Errorf("failed to refresh some providers: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Credential binds a secret name so callers can resolve it without knowing
// where it is stored.
type Credential struct {
	manager *Manager
	name    string
}

// Credential returns a resolver for the named secret.
func (m *Manager) Credential(name string) *Credential {
	return &Credential{manager: m, name: name}
}

// Resolve returns the current credential value.
func (c *Credential) Resolve(ctx context.Context) (string, error) {
	return c.manager.GetSecret(ctx, c.name)
}

// Name returns the secret name.
func (c *Credential) Name() string {
	return c.name
}

// redactSecretName returns a redacted version of the secret name for logging.
func redactSecretName(name string) string {
	if len(name) <= 4 {
		return "***"
	}
	return name[:2] + "..." + name[len(name)-2:]
}
