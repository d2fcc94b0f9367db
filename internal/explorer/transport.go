// Package explorer defines the narrow transport contract the core
// library depends on for everything that touches the network (spec.md
// §4.8): unspent-output lookup, raw-tx fetch, address history, and
// broadcast. Grounded on the teacher's internal/storage narrow-interface
// style (NonceStore/TxStore/WatchStore in internal/storage/store.go),
// applied here to an I/O boundary instead of an in-memory one.
package explorer

import (
	"context"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// UTXO is one unspent output as an explorer reports it.
type UTXO struct {
	Outpoint models.Outpoint
	Value    int64
	SegWit   bool
}

// PushResult is what a broadcast call returns.
type PushResult struct {
	Status string
	TXID   string
}

// HistoryEntry is one prior transaction touching an address, as an
// explorer reports it; fields beyond TXID are advisory and may be zero
// if the explorer doesn't supply them.
type HistoryEntry struct {
	TXID          string
	Confirmations int
}

// Transport is the adapter the core needs: no operation here does I/O
// itself, and no caller may assume a particular explorer's JSON shape
// beyond this contract (spec.md §4.8). Errors surface as
// *models.TransportError carrying the explorer's response verbatim.
type Transport interface {
	Unspent(ctx context.Context, address string) ([]UTXO, error)
	FetchTx(ctx context.Context, txid string) (rawHex string, err error)
	History(ctx context.Context, address string) ([]HistoryEntry, error)
	PushTx(ctx context.Context, rawHex string) (PushResult, error)
}
