package runninglist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"brainstormer-hq/distill/pkg/distill"
)

// MemoryStore is an in-process Store holding the serialized list.
type MemoryStore struct {
	key   string
	blobs map[string][]byte
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty memory store using key.
func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &MemoryStore{
		key:   key,
		blobs: make(map[string][]byte),
	}
}

// Load decodes the stored blob.
func (m *MemoryStore) Load(ctx context.Context) ([]distill.Item, error) {
	m.mu.RLock()
	blob, ok := m.blobs[m.key]
	m.mu.RUnlock()

	if !ok {
		return []distill.Item{}, nil
	}
	return decodeItems(blob)
}

// Save encodes items and stores them.
func (m *MemoryStore) Save(ctx context.Context, items []distill.Item) error {
	blob, err := encodeItems(items)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.blobs[m.key] = blob
	m.mu.Unlock()
	return nil
}

// Clear drops the stored blob.
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	delete(m.blobs, m.key)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

func encodeItems(items []distill.Item) ([]byte, error) {
	if items == nil {
		items = []distill.Item{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal running list: %w", err)
	}
	return blob, nil
}

func decodeItems(blob []byte) ([]distill.Item, error) {
	var items []distill.Item
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptList, err)
	}
	if items == nil {
		items = []distill.Item{}
	}
	return items, nil
}
