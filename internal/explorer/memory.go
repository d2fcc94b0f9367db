package explorer

import (
	"context"
	"fmt"
	"sync"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// MemoryExplorer is an in-memory Transport, used by tests and by the
// supplemental polling listener's own tests (internal/listener) in
// place of a live HTTP explorer. Mirrors the teacher's
// internal/storage in-memory-store-with-mutex shape.
type MemoryExplorer struct {
	mu       sync.Mutex
	unspent  map[string][]UTXO
	rawTxs   map[string]string
	history  map[string][]HistoryEntry
	pushed   []string
	pushErr  error
	pushNext PushResult
}

// NewMemoryExplorer returns an empty MemoryExplorer.
func NewMemoryExplorer() *MemoryExplorer {
	return &MemoryExplorer{
		unspent: make(map[string][]UTXO),
		rawTxs:  make(map[string]string),
		history: make(map[string][]HistoryEntry),
	}
}

// SetUnspent seeds the UTXO set returned for address.
func (m *MemoryExplorer) SetUnspent(address string, utxos []UTXO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unspent[address] = utxos
}

// SetRawTx seeds the raw hex FetchTx returns for txid.
func (m *MemoryExplorer) SetRawTx(txid, rawHex string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawTxs[txid] = rawHex
}

// SetHistory seeds the history entries returned for address.
func (m *MemoryExplorer) SetHistory(address string, entries []HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[address] = entries
}

// SetPushResult controls what PushTx returns on every call until it is
// set again.
func (m *MemoryExplorer) SetPushResult(result PushResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushNext = result
	m.pushErr = err
}

// Pushed returns every raw transaction hex handed to PushTx, in order.
func (m *MemoryExplorer) Pushed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pushed...)
}

func (m *MemoryExplorer) Unspent(_ context.Context, address string) ([]UTXO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unspent[address], nil
}

func (m *MemoryExplorer) FetchTx(_ context.Context, txid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rawTxs[txid]
	if !ok {
		return "", &models.TransportError{Op: "FetchTx", StatusCode: 404, Body: fmt.Sprintf("unknown txid %s", txid)}
	}
	return raw, nil
}

func (m *MemoryExplorer) History(_ context.Context, address string) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[address], nil
}

func (m *MemoryExplorer) PushTx(_ context.Context, rawHex string) (PushResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushed = append(m.pushed, rawHex)
	if m.pushErr != nil {
		return PushResult{}, m.pushErr
	}
	return m.pushNext, nil
}

var _ Transport = (*MemoryExplorer)(nil)
