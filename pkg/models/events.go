package models

// UTXOEventKind distinguishes a newly received output from one that
// has been spent, the two transitions internal/listener reports.
type UTXOEventKind int

const (
	UTXOReceived UTXOEventKind = iota
	UTXOSpent
)

// UTXOEvent is emitted by internal/listener when a watched address's
// unspent-output set changes (spec.md supplemental feature, SPEC_FULL
// §5 item 1 — the source project's block-event listener re-expressed
// for a UTXO explorer's unspent/history view instead of block bodies).
type UTXOEvent struct {
	Coin      Coin
	Address   string
	Kind      UTXOEventKind
	Outpoint  Outpoint
	Value     int64
	TXID      string
	Confirmed bool
	Reorged   bool
}
