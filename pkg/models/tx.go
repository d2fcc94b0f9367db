package models

// Outpoint identifies a previous transaction output being spent. Hash is
// stored little-endian, matching the wire encoding; callers that print a
// txid reverse it to the conventional big-endian display form.
type Outpoint struct {
	Hash  [32]byte
	Index uint32
}

// TxInput is one spend of a previous output. PrevoutAmount and Witness
// are only meaningful for SegWit inputs: PrevoutAmount is required to
// compute a BIP143 sighash, and Witness holds the stack pushed alongside
// (or instead of) ScriptSig.
type TxInput struct {
	Outpoint      Outpoint
	ScriptSig     []byte
	Sequence      uint32
	PrevoutAmount int64 // satoshis; 0 if unknown (legacy inputs don't need it)
	HasAmount     bool
	Witness       [][]byte
}

// IsSegWit reports whether this input carries a witness stack.
func (in *TxInput) IsSegWit() bool {
	return len(in.Witness) > 0
}

// TxOutput is a value paid to a script. Value is in satoshis and must be
// non-negative.
type TxOutput struct {
	Value        int64
	ScriptPubKey []byte
}

// Transaction is the in-memory, network-agnostic transaction model.
// Inputs and outputs are added incrementally during construction; the
// transaction is conceptually frozen once serialized for broadcast
// (spec.md §3 Lifecycle).
type Transaction struct {
	Version  int32
	Inputs   []*TxInput
	Outputs  []*TxOutput
	LockTime uint32
}

// NewTransaction returns an empty transaction with the conventional
// version 1 and a zero locktime.
func NewTransaction() *Transaction {
	return &Transaction{Version: 1}
}

// HasWitness reports whether any input carries a non-empty witness
// stack; this determines whether the SegWit marker/flag are emitted on
// serialization (spec.md §3 Invariants).
func (tx *Transaction) HasWitness() bool {
	for _, in := range tx.Inputs {
		if in.IsSegWit() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of tx, suitable for building a sighash
// preimage without mutating the caller's transaction.
func (tx *Transaction) Clone() *Transaction {
	out := &Transaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]*TxInput, len(tx.Inputs)),
		Outputs:  make([]*TxOutput, len(tx.Outputs)),
	}
	for i, in := range tx.Inputs {
		clone := *in
		clone.ScriptSig = append([]byte(nil), in.ScriptSig...)
		if in.Witness != nil {
			clone.Witness = make([][]byte, len(in.Witness))
			for j, item := range in.Witness {
				clone.Witness[j] = append([]byte(nil), item...)
			}
		}
		out.Inputs[i] = &clone
	}
	for i, o := range tx.Outputs {
		clone := *o
		clone.ScriptPubKey = append([]byte(nil), o.ScriptPubKey...)
		out.Outputs[i] = &clone
	}
	return out
}
