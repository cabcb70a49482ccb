package runninglist

import (
	"context"
	"errors"
	"fmt"

	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/distill"
)

// DefaultStorageKey is the key the list is stored under.
const DefaultStorageKey = config.DefaultRunningListStorageKey

var (
	// ErrItemNotFound is returned when an id does not name a list item.
	ErrItemNotFound = errors.New("item not found")

	// ErrEmptyText is returned when adding an item with blank text.
	ErrEmptyText = errors.New("item text cannot be empty")

	// ErrCorruptList is returned by stores whose persisted blob does not
	// decode as a list of items.
	ErrCorruptList = errors.New("stored running list is corrupt")
)

// Store persists the whole running list as one value under a fixed key.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the stored items, or an empty slice when nothing is stored.
	Load(ctx context.Context) ([]distill.Item, error)

	// Save replaces the stored list.
	Save(ctx context.Context, items []distill.Item) error

	// Clear removes the stored list. Clearing an absent list is not an error.
	Clear(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(cfg config.RunningListConfig) (Store, error) {
	key := cfg.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}

	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(key), nil
	case "sqlite", "":
		return NewSQLiteStoreWithConfig(SQLiteStoreConfig{
			DBPath: cfg.SQLitePath,
			Key:    key,
		})
	default:
		return nil, fmt.Errorf("unknown running list backend: %q", cfg.Backend)
	}
}
