package runninglist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"brainstormer-hq/distill/pkg/distill"

	"github.com/google/uuid"
)

// idLength is the length of generated item ids.
const idLength = 9

// List is the running list of action items carried across plans.
// Mutations update memory first and then persist; a persist failure is
// returned but the in-memory change stands.
type List struct {
	store  Store
	items  []distill.Item
	newID  func() string
	logger *slog.Logger
	mu     sync.Mutex
}

// ListOption configures a List.
type ListOption func(*List)

// WithIDGenerator overrides item id generation.
func WithIDGenerator(fn func() string) ListOption {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// NewList loads the list from store. A load failure or corrupt blob is
// logged and yields an empty list.
func NewList(ctx context.Context, store Store, opts ...ListOption) *List {
	l := &List{
		store:  store,
		newID:  newItemID,
		logger: slog.Default().With("component", "runninglist"),
	}
	for _, opt := range opts {
		opt(l)
	}

	items, err := store.Load(ctx)
	if err != nil {
		l.logger.Warn("failed to load running list, starting empty", "error", err)
		items = nil
	}
	l.items = items

	return l
}

// Items returns a copy of the current items in insertion order.
func (l *List) Items() []distill.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]distill.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Add appends a new, not yet completed item.
func (l *List) Add(ctx context.Context, text string) (distill.Item, error) {
	if strings.TrimSpace(text) == "" {
		return distill.Item{}, ErrEmptyText
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item := distill.Item{ID: l.newID(), Text: text}
	l.items = append(l.items, item)

	return item, l.persist(ctx)
}

// Toggle flips the completed flag of the item with id.
func (l *List) Toggle(ctx context.Context, id string) (distill.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return distill.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	l.items[i].Completed = !l.items[i].Completed

	return l.items[i], l.persist(ctx)
}

// Remove deletes the item with id.
func (l *List) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	l.items = append(l.items[:i], l.items[i+1:]...)

	return l.persist(ctx)
}

// Clear empties the list and removes it from the store.
func (l *List) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil

	return l.persist(ctx)
}

func (l *List) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held. An empty list clears the key.
func (l *List) persist(ctx context.Context) error {
	if len(l.items) == 0 {
		if err := l.store.Clear(ctx); err != nil {
			l.logger.Error("failed to clear running list", "error", err)
			return err
		}
		return nil
	}

	if err := l.store.Save(ctx, l.items); err != nil {
		l.logger.Error("failed to save running list", "error", err, "items", len(l.items))
		return err
	}
	return nil
}

func newItemID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
