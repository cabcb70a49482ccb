package runninglist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"brainstormer-hq/distill/pkg/distill"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store on a single key/value table, so the list
// survives restarts of the CLI.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	key       string
	mu        sync.RWMutex
	closeOnce sync.Once

	saveStmt  *sql.Stmt
	loadStmt  *sql.Stmt
	clearStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file. Its directory is
	// created if missing.
	DBPath string

	// Key is the row key holding the list.
	// Default: "brainstormer-running-list"
	Key string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore opens a store at dbPath with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig opens a store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		cfg.DBPath, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:     db,
		dbPath: cfg.DBPath,
		key:    cfg.Key,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare save statement: %w", err)
	}

	s.loadStmt, err = s.db.Prepare(`SELECT value FROM kv_store WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare load statement: %w", err)
	}

	s.clearStmt, err = s.db.Prepare(`DELETE FROM kv_store WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare clear statement: %w", err)
	}

	return nil
}

// Load reads and decodes the stored list.
func (s *SQLiteStore) Load(ctx context.Context) ([]distill.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.loadStmt.QueryRowContext(ctx, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []distill.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load running list: %w", err)
	}

	return decodeItems([]byte(value))
}

// Save upserts the encoded list.
func (s *SQLiteStore) Save(ctx context.Context, items []distill.Item) error {
	blob, err := encodeItems(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.saveStmt.ExecContext(ctx, s.key, string(blob), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save running list: %w", err)
	}
	return nil
}

// Clear deletes the stored row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.clearStmt.ExecContext(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear running list: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, stmt := range []*sql.Stmt{s.saveStmt, s.loadStmt, s.clearStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if err := s.db.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close database: %w", err)
		}
	})

	return closeErr
}
