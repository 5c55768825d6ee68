package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"

	"kromer-flow-plugin/internal/repository"
)

// KeyError is a sentinel error type for credential operations.
type KeyError string

func (e KeyError) Error() string { return string(e) }

const (
	// ErrKeyNotFound indicates no key is stored for the address. Distinct
	// from a store-access failure.
	ErrKeyNotFound KeyError = "private key not found"
)

// Store keeps private keys in the OS keyring, keyed by a fixed service name
// and the wallet address. The keyring cannot enumerate its entries, so the
// wallet repository tracks which addresses have keys.
type Store struct {
	service string
	wallets repository.WalletRepository
	log     *logrus.Entry
}

// New creates a credential store bound to a keyring service name.
func New(service string, wallets repository.WalletRepository) *Store {
	return &Store{
		service: service,
		wallets: wallets,
		log:     logrus.WithField("component", "keystore"),
	}
}

// Save stores a private key for an address and records the address.
func (s *Store) Save(ctx context.Context, address, privateKey string) error {
	if err := keyring.Set(s.service, address, privateKey); err != nil {
		s.log.WithError(err).WithField("address", address).Error("failed to save key")
		return fmt.Errorf("failed to save key for %s: %w", address, err)
	}
	return s.wallets.AddWallet(ctx, address)
}

// Load retrieves the private key for an address. A missing key surfaces as
// ErrKeyNotFound; any other keyring failure propagates as a store error.
func (s *Store) Load(ctx context.Context, address string) (string, error) {
	key, err := keyring.Get(s.service, address)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.log.WithError(err).WithField("address", address).Error("failed to load key")
		return "", fmt.Errorf("failed to load key for %s: %w", address, err)
	}
	return key, nil
}

// Has reports whether a key is stored for the address.
func (s *Store) Has(ctx context.Context, address string) (bool, error) {
	_, err := s.Load(ctx, address)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the key for an address and forgets the address.
func (s *Store) Delete(ctx context.Context, address string) error {
	err := keyring.Delete(s.service, address)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		s.log.WithError(err).WithField("address", address).Error("failed to delete key")
		return fmt.Errorf("failed to delete key for %s: %w", address, err)
	}
	return s.wallets.RemoveWallet(ctx, address)
}

// List returns every address with a stored key.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.wallets.ListWallets(ctx)
}
