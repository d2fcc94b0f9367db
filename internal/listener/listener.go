// Package listener watches addresses for UTXO activity by polling an
// explorer.Transport, emitting received/spent/confirmed events.
// Adapted from the teacher's PollingListener/Manager (block-number
// polling + reorg guard over a JSON-RPC chain) into address-level
// polling over unspent()/history() (spec.md §4.8 supplemental feature,
// SPEC_FULL §5 item 1): a UTXO explorer has no block stream to poll,
// so confirmation depth is read off each output's txid confirmations
// count and reorgs are detected by a previously-confirmed txid
// dropping out of history instead of a block hash changing.
package listener

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/explorer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/storage"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// Listener defines the interface for monitoring watched addresses.
// Each coin shares the same PollingListener implementation, parameterized
// by an explorer.Transport.
type Listener interface {
	Start(ctx context.Context) error
	Stop() error
	WatchAddress(address string) error
	UnwatchAddress(address string) error
	Events() <-chan models.UTXOEvent
}

// EventHandler processes detected UTXO events. In production: update
// balances, send notifications, trigger webhooks.
type EventHandler func(event models.UTXOEvent) error

// PollingConfig holds configuration for the polling listener.
type PollingConfig struct {
	ConfirmationDepth int // confirmations required before marking a UTXO as confirmed
}

// utxoState is what PollingListener remembers about one previously
// observed unspent output, so the next poll can tell new from old and
// detect when a confirmed txid has vanished from history (a reorg).
type utxoState struct {
	value     int64
	txid      string
	confirmed bool
}

// PollingListener implements Listener by periodically diffing each
// watched address's unspent-output set against what it saw last poll.
type PollingListener struct {
	coin         models.Coin
	pollInterval time.Duration
	events       chan models.UTXOEvent
	watchStore   storage.WatchStore
	transport    explorer.Transport
	cfg          PollingConfig

	seen map[string]map[models.Outpoint]*utxoState

	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPollingListener returns a PollingListener for coin, polling
// transport every pollInterval for the addresses registered in ws.
func NewPollingListener(coin models.Coin, pollInterval time.Duration, ws storage.WatchStore, transport explorer.Transport, cfg PollingConfig) *PollingListener {
	if cfg.ConfirmationDepth == 0 {
		cfg.ConfirmationDepth = 1
	}
	return &PollingListener{
		coin:         coin,
		pollInterval: pollInterval,
		events:       make(chan models.UTXOEvent, 100),
		watchStore:   ws,
		transport:    transport,
		cfg:          cfg,
		seen:         make(map[string]map[models.Outpoint]*utxoState),
		done:         make(chan struct{}),
		logger:       slog.Default().With("component", "listener", "coin", string(coin)),
	}
}

func (l *PollingListener) Start(ctx context.Context) error {
	ctx, l.cancel = context.WithCancel(ctx)

	l.logger.Info("starting utxo listener",
		"poll_interval", l.pollInterval,
		"confirmation_depth", l.cfg.ConfirmationDepth,
	)

	go l.pollLoop(ctx)
	return nil
}

func (l *PollingListener) Stop() error {
	if l.cancel != nil {
		l.cancel()
	}
	<-l.done // wait for pollLoop to exit
	close(l.events)
	l.logger.Info("listener stopped")
	return nil
}

func (l *PollingListener) WatchAddress(address string) error {
	if err := l.watchStore.Add(address); err != nil {
		return err
	}
	l.logger.Info("watching address", "address", address)
	return nil
}

func (l *PollingListener) UnwatchAddress(address string) error {
	if err := l.watchStore.Remove(address); err != nil {
		return err
	}
	delete(l.seen, address)
	l.logger.Info("unwatched address", "address", address)
	return nil
}

func (l *PollingListener) Events() <-chan models.UTXOEvent {
	return l.events
}

func (l *PollingListener) pollLoop(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.poll(ctx); err != nil {
				l.logger.Error("poll failed", "error", err)
			}
		}
	}
}

func (l *PollingListener) poll(ctx context.Context) error {
	addrs, err := l.watchStore.List()
	if err != nil {
		return fmt.Errorf("list watched: %w", err)
	}
	for _, addr := range addrs {
		if err := l.pollAddress(ctx, addr); err != nil {
			return fmt.Errorf("poll %s: %w", addr, err)
		}
	}
	return nil
}

func (l *PollingListener) pollAddress(ctx context.Context, addr string) error {
	utxos, err := l.transport.Unspent(ctx, addr)
	if err != nil {
		return fmt.Errorf("unspent: %w", err)
	}

	prev := l.seen[addr]
	if prev == nil {
		prev = make(map[models.Outpoint]*utxoState)
	}

	current := make(map[models.Outpoint]explorer.UTXO, len(utxos))
	for _, u := range utxos {
		current[u.Outpoint] = u
	}

	for op, u := range current {
		if _, ok := prev[op]; ok {
			continue
		}
		txid := txidHex(op.Hash)
		prev[op] = &utxoState{value: u.Value, txid: txid}
		l.emit(ctx, models.UTXOEvent{
			Coin: l.coin, Address: addr, Kind: models.UTXOReceived,
			Outpoint: op, Value: u.Value, TXID: txid,
		})
	}

	for op, state := range prev {
		if _, ok := current[op]; ok {
			continue
		}
		l.emit(ctx, models.UTXOEvent{
			Coin: l.coin, Address: addr, Kind: models.UTXOSpent,
			Outpoint: op, Value: state.value, TXID: state.txid,
		})
		delete(prev, op)
	}

	hist, err := l.transport.History(ctx, addr)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	byTXID := make(map[string]explorer.HistoryEntry, len(hist))
	for _, h := range hist {
		byTXID[h.TXID] = h
	}
	l.checkConfirmations(ctx, addr, prev, byTXID)

	l.seen[addr] = prev
	return nil
}

// checkConfirmations promotes pending received outputs to confirmed
// once their txid reaches the configured depth, and demotes a
// previously confirmed output whose txid has dropped out of history
// entirely — the signal this polling model has for a reorg, in place
// of the teacher's block-hash mismatch check.
func (l *PollingListener) checkConfirmations(ctx context.Context, addr string, prev map[models.Outpoint]*utxoState, byTXID map[string]explorer.HistoryEntry) {
	for op, state := range prev {
		entry, ok := byTXID[state.txid]
		switch {
		case !ok && state.confirmed:
			state.confirmed = false
			l.logger.Warn("reorg: confirmed txid dropped out of history", "address", addr, "txid", state.txid)
			l.emit(ctx, models.UTXOEvent{
				Coin: l.coin, Address: addr, Kind: models.UTXOReceived,
				Outpoint: op, Value: state.value, TXID: state.txid, Reorged: true,
			})
		case ok && !state.confirmed && entry.Confirmations >= l.cfg.ConfirmationDepth:
			state.confirmed = true
			l.logger.Info("utxo confirmed", "address", addr, "txid", state.txid, "confirmations", entry.Confirmations)
			l.emit(ctx, models.UTXOEvent{
				Coin: l.coin, Address: addr, Kind: models.UTXOReceived,
				Outpoint: op, Value: state.value, TXID: state.txid, Confirmed: true,
			})
		}
	}
}

func (l *PollingListener) emit(ctx context.Context, ev models.UTXOEvent) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}

// txidHex formats a wire-order (little-endian) hash as the
// conventional big-endian display txid (spec.md §6).
func txidHex(hash [32]byte) string {
	reversed := make([]byte, 32)
	for i := range hash {
		reversed[i] = hash[31-i]
	}
	return hex.EncodeToString(reversed)
}

// ----- Multi-coin listener manager -----

// Manager coordinates listeners across multiple coins.
type Manager struct {
	listeners map[models.Coin]Listener
	handler   EventHandler
	logger    *slog.Logger
}

func NewManager(handler EventHandler) *Manager {
	return &Manager{
		listeners: make(map[models.Coin]Listener),
		handler:   handler,
		logger:    slog.Default().With("component", "listener_manager"),
	}
}

func (m *Manager) RegisterListener(coin models.Coin, l Listener) {
	m.listeners[coin] = l
}

// StartAll starts all registered listeners and routes events to the handler.
func (m *Manager) StartAll(ctx context.Context) error {
	for coin, l := range m.listeners {
		if err := l.Start(ctx); err != nil {
			return fmt.Errorf("start %s listener: %w", coin, err)
		}

		go func(c models.Coin, l Listener) {
			for event := range l.Events() {
				if err := m.handler(event); err != nil {
					m.logger.Error("handle event failed",
						"coin", c,
						"txid", event.TXID,
						"error", err,
					)
				}
			}
		}(coin, l)
	}

	m.logger.Info("all listeners started", "count", len(m.listeners))
	return nil
}

func (m *Manager) StopAll() {
	for coin, l := range m.listeners {
		if err := l.Stop(); err != nil {
			m.logger.Error("stop listener failed", "coin", coin, "error", err)
		}
	}
}

// WatchAddress adds an address to the appropriate coin's listener.
func (m *Manager) WatchAddress(coin models.Coin, address string) error {
	l, ok := m.listeners[coin]
	if !ok {
		return fmt.Errorf("no listener registered for %s", coin)
	}
	return l.WatchAddress(address)
}
