package repository

import (
	"context"
	"time"
)

// Alias is a user-defined shorthand for a wallet address.
type Alias struct {
	Name      string
	Address   string
	CreatedAt time.Time
}

// RepoError is a sentinel error type for repository operations.
type RepoError string

func (e RepoError) Error() string { return string(e) }

const (
	// ErrAliasNotFound indicates the alias does not exist.
	ErrAliasNotFound RepoError = "alias not found"
)

// AliasRepository defines alias data access methods.
type AliasRepository interface {
	// SetAlias inserts or updates an alias.
	SetAlias(ctx context.Context, name, address string) error

	// DeleteAlias removes an alias. Returns ErrAliasNotFound if absent.
	DeleteAlias(ctx context.Context, name string) error

	// Resolve maps an alias to its address, returning the input unchanged
	// when no alias matches.
	Resolve(ctx context.Context, input string) (string, error)

	// ListAliases returns all aliases ordered by name.
	ListAliases(ctx context.Context) ([]Alias, error)
}

// WalletRepository tracks the wallet addresses whose keys live in the OS
// keyring, since keyrings cannot enumerate their own entries.
type WalletRepository interface {
	// AddWallet records an address.
	AddWallet(ctx context.Context, address string) error

	// RemoveWallet forgets an address.
	RemoveWallet(ctx context.Context, address string) error

	// ListWallets returns all recorded addresses ordered by insertion.
	ListWallets(ctx context.Context) ([]string, error)
}
