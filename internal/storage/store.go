// Package storage holds the narrow, swappable state interfaces the
// tx-building orchestration needs: next-derivation-index bookkeeping,
// idempotent transaction caching, and a watched-address set. Adapted
// from the teacher's internal/storage/store.go narrow-interface style;
// NonceStore is repurposed into DerivationIndexStore since UTXO coins
// have no account nonce, but avoiding address/key reuse needs the same
// atomic-counter shape (spec.md §9 supplemental feature, SPEC_FULL §5
// item 2).
package storage

import "github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"

// DerivationIndexStore tracks the next unused BIP32 child index per
// account path, so repeated Mktx/Send calls never reuse a derived key.
type DerivationIndexStore interface {
	// GetAndIncrement atomically returns the current index for path and
	// increments it.
	GetAndIncrement(path string) (uint32, error)
}

// TxStore provides idempotent transaction storage, keyed by caller-
// supplied idempotency key (spec.md supplemental feature, SPEC_FULL §5
// item 2: a Send call retried with the same key returns the original
// transaction instead of constructing and broadcasting a second one).
type TxStore interface {
	// Get returns a previously stored transaction by idempotency key, or nil if not found.
	Get(idempotencyKey string) (*models.Transaction, error)
	// Put stores a transaction keyed by idempotency key.
	Put(idempotencyKey string, tx *models.Transaction) error
}

// WatchStore manages the set of watched addresses for internal/listener.
type WatchStore interface {
	// Add adds an address to the watch set.
	Add(address string) error
	// Remove removes an address from the watch set.
	Remove(address string) error
	// List returns all currently watched addresses.
	List() ([]string, error)
	// Contains checks if an address is in the watch set.
	Contains(address string) (bool, error)
}
