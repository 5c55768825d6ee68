package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore implements AliasRepository and WalletRepository on a single
// local database file.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *logrus.Entry
}

// NewSQLiteStore opens (and if needed creates) the plugin database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log := logrus.WithField("component", "sqlite-store")
	log.WithField("path", dbPath).Debug("store initialized")
	return &SQLiteStore{db: db, log: log}, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS aliases (
		name TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT (datetime('now'))
	);
	CREATE TABLE IF NOT EXISTS wallets (
		address TEXT PRIMARY KEY,
		added_at DATETIME NOT NULL DEFAULT (datetime('now'))
	);
	`
	_, err := db.Exec(query)
	return err
}

// SetAlias inserts or updates an alias.
func (s *SQLiteStore) SetAlias(ctx context.Context, name, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO aliases (name, address) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET address = excluded.address`
	if _, err := s.db.ExecContext(ctx, query, name, address); err != nil {
		return fmt.Errorf("failed to upsert alias: %w", err)
	}
	return nil
}

// DeleteAlias removes an alias.
func (s *SQLiteStore) DeleteAlias(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM aliases WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAliasNotFound
	}
	return nil
}

// Resolve maps an alias to its address, passing unknown input through.
func (s *SQLiteStore) Resolve(ctx context.Context, input string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var address string
	err := s.db.QueryRowContext(ctx, `SELECT address FROM aliases WHERE name = ?`, input).Scan(&address)
	if errors.Is(err, sql.ErrNoRows) {
		return input, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve alias: %w", err)
	}
	return address, nil
}

// ListAliases returns all aliases ordered by name.
func (s *SQLiteStore) ListAliases(ctx context.Context) ([]Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name, address, created_at FROM aliases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	defer rows.Close()

	var aliases []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.Name, &a.Address, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// AddWallet records an address.
func (s *SQLiteStore) AddWallet(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO wallets (address) VALUES (?) ON CONFLICT(address) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, address); err != nil {
		return fmt.Errorf("failed to add wallet: %w", err)
	}
	return nil
}

// RemoveWallet forgets an address.
func (s *SQLiteStore) RemoveWallet(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM wallets WHERE address = ?`, address); err != nil {
		return fmt.Errorf("failed to remove wallet: %w", err)
	}
	return nil
}

// ListWallets returns all recorded addresses ordered by insertion.
func (s *SQLiteStore) ListWallets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT address FROM wallets ORDER BY added_at, address`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
