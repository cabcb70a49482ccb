package runninglist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"

	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/distill"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "list.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// failingStore loads fine but refuses every write.
type failingStore struct {
	*MemoryStore
}

var errWrite = errors.New("disk full")

func (f *failingStore) Save(ctx context.Context, items []distill.Item) error { return errWrite }
func (f *failingStore) Clear(ctx context.Context) error                      { return errWrite }

type brokenLoadStore struct {
	*MemoryStore
}

func (b *brokenLoadStore) Load(ctx context.Context) ([]distill.Item, error) {
	return nil, errors.New("permission denied")
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore("") },
		"sqlite": func(t *testing.T) Store { return newTestSQLiteStore(t) },
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			items, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load on empty store failed: %v", err)
			}
			if items == nil || len(items) != 0 {
				t.Fatalf("expected empty non-nil slice, got %#v", items)
			}

			want := []distill.Item{
				{ID: "abc123def", Text: "Call mom"},
				{ID: "xyz987uvw", Text: "Gym", Completed: true},
			}
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
				t.Errorf("expected %+v, got %+v", want, got)
			}

			if err := store.Clear(ctx); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("second Clear failed: %v", err)
			}
			got, _ = store.Load(ctx)
			if len(got) != 0 {
				t.Errorf("expected empty after clear, got %+v", got)
			}
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "list.db")

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := first.Save(ctx, []distill.Item{{ID: "one", Text: "Pay rent"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	items, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || items[0].Text != "Pay rent" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestSQLiteStore_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "list.db")

	a, err := NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: path, Key: "a"})
	if err != nil {
		t.Fatalf("open a failed: %v", err)
	}
	defer a.Close()
	if err := a.Save(ctx, []distill.Item{{ID: "1", Text: "only in a"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	a.Close()

	b, err := NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: path, Key: "b"})
	if err != nil {
		t.Fatalf("open b failed: %v", err)
	}
	defer b.Close()

	items, _ := b.Load(ctx)
	if len(items) != 0 {
		t.Errorf("key b should be empty, got %+v", items)
	}
}

func TestSQLiteStore_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	if _, err := store.db.Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, 0)`,
		DefaultStorageKey, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, ErrCorruptList) {
		t.Fatalf("expected ErrCorruptList, got %v", err)
	}

	list := NewList(ctx, store)
	if list.Len() != 0 {
		t.Errorf("corrupt list should degrade to empty, got %d items", list.Len())
	}

	if _, err := list.Add(ctx, "fresh start"); err != nil {
		t.Fatalf("Add after corrupt load failed: %v", err)
	}
	items, err := store.Load(ctx)
	if err != nil || len(items) != 1 {
		t.Errorf("expected corrupt blob to be overwritten, got %+v, %v", items, err)
	}
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RunningListConfig
		wantErr bool
		want    string
	}{
		{name: "memory", cfg: config.RunningListConfig{Backend: "memory"}, want: "*runninglist.MemoryStore"},
		{name: "sqlite", cfg: config.RunningListConfig{Backend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "l.db")}, want: "*runninglist.SQLiteStore"},
		{name: "unknown", cfg: config.RunningListConfig{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer store.Close()

			if got := fmt.Sprintf("%T", store); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestList_Add(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")
	list := NewList(ctx, store)

	item, err := list.Add(ctx, "Call mom")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{9}$`).MatchString(item.ID) {
		t.Errorf("expected 9 char id, got %q", item.ID)
	}
	if item.Completed {
		t.Error("new items start incomplete")
	}

	second, _ := list.Add(ctx, "Gym")
	if second.ID == item.ID {
		t.Error("expected distinct ids")
	}

	items := list.Items()
	if len(items) != 2 || items[0].Text != "Call mom" || items[1].Text != "Gym" {
		t.Errorf("expected insertion order, got %+v", items)
	}

	stored, _ := store.Load(ctx)
	if len(stored) != 2 {
		t.Errorf("expected add to persist, store has %d", len(stored))
	}

	if _, err := list.Add(ctx, "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestList_ToggleAndRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")

	ids := []string{"aaaaaaaaa", "bbbbbbbbb"}
	next := 0
	list := NewList(ctx, store, WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))

	list.Add(ctx, "first")
	list.Add(ctx, "second")

	toggled, err := list.Toggle(ctx, "bbbbbbbbb")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected completed after toggle")
	}
	stored, _ := store.Load(ctx)
	if !stored[1].Completed {
		t.Error("toggle must persist")
	}

	toggled, _ = list.Toggle(ctx, "bbbbbbbbb")
	if toggled.Completed {
		t.Error("second toggle should restore incomplete")
	}

	if _, err := list.Toggle(ctx, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := list.Remove(ctx, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	if err := list.Remove(ctx, "aaaaaaaaa"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if items := list.Items(); len(items) != 1 || items[0].ID != "bbbbbbbbb" {
		t.Errorf("unexpected items after remove: %+v", items)
	}

	if err := list.Remove(ctx, "bbbbbbbbb"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := store.blobs[DefaultStorageKey]; ok {
		t.Error("removing the last item must clear the stored key")
	}
}

func TestList_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	list := NewList(ctx, store)

	list.Add(ctx, "one")
	list.Add(ctx, "two")

	if err := list.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("expected empty list, got %d", list.Len())
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no stored rows, got %d", count)
	}
}

func TestList_ReloadsFromStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")

	first := NewList(ctx, store)
	first.Add(ctx, "carry over")

	second := NewList(ctx, store)
	if items := second.Items(); len(items) != 1 || items[0].Text != "carry over" {
		t.Errorf("expected list to reload, got %+v", items)
	}
}

func TestList_StoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure starts empty", func(t *testing.T) {
		list := NewList(ctx, &brokenLoadStore{MemoryStore: NewMemoryStore("")})
		if list.Len() != 0 {
			t.Errorf("expected empty list, got %d", list.Len())
		}
	})

	t.Run("write failure is returned and memory kept", func(t *testing.T) {
		list := NewList(ctx, &failingStore{MemoryStore: NewMemoryStore("")})

		if _, err := list.Add(ctx, "still here"); !errors.Is(err, errWrite) {
			t.Errorf("expected write error, got %v", err)
		}
		if list.Len() != 1 {
			t.Errorf("expected in-memory item to stand, got %d", list.Len())
		}
		if err := list.Clear(ctx); !errors.Is(err, errWrite) {
			t.Errorf("expected clear error, got %v", err)
		}
	})
}

func TestList_ItemsIsCopy(t *testing.T) {
	ctx := context.Background()
	list := NewList(ctx, NewMemoryStore(""))
	list.Add(ctx, "original")

	items := list.Items()
	items[0].Text = "mutated"

	if list.Items()[0].Text != "original" {
		t.Error("Items must return a copy")
	}
}
