// Package txcodec implements the Bitcoin wire serialization of
// pkg/models.Transaction: legacy and BIP141 SegWit layouts, and
// TXID/WTXID computation (spec.md §4.5). Generalizes the teacher's
// placeholder buildRawBTCTx in internal/wallet/btc.go into a bit-exact
// codec.
package txcodec

import (
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

const (
	segwitMarker byte = 0x00
	segwitFlag   byte = 0x01
)

// Serialize encodes tx using the legacy layout if no input carries a
// witness, or the BIP141 SegWit layout (marker ‖ flag ‖ ... ‖ witness
// stacks ‖ locktime) if at least one does, matching the marker/flag
// invariant in spec.md §3.
func Serialize(tx *models.Transaction) []byte {
	if tx.HasWitness() {
		return serializeSegWit(tx)
	}
	return serializeLegacy(tx)
}

// serializeLegacy encodes tx with no marker/flag and no witness data;
// this is also the form TXID is computed over.
func serializeLegacy(tx *models.Transaction) []byte {
	var buf []byte
	buf = encoding.PutUint32LE(buf, uint32(tx.Version))
	buf = encoding.PutVarInt(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = appendInput(buf, in)
	}
	buf = encoding.PutVarInt(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = appendOutput(buf, out)
	}
	buf = encoding.PutUint32LE(buf, tx.LockTime)
	return buf
}

// serializeSegWit encodes tx with the BIP141 marker/flag and a witness
// stack per input; this is also the form WTXID is computed over.
func serializeSegWit(tx *models.Transaction) []byte {
	var buf []byte
	buf = encoding.PutUint32LE(buf, uint32(tx.Version))
	buf = append(buf, segwitMarker, segwitFlag)
	buf = encoding.PutVarInt(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = appendInput(buf, in)
	}
	buf = encoding.PutVarInt(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = appendOutput(buf, out)
	}
	for _, in := range tx.Inputs {
		buf = encoding.PutVarInt(buf, uint64(len(in.Witness)))
		for _, item := range in.Witness {
			buf = encoding.PutVarInt(buf, uint64(len(item)))
			buf = append(buf, item...)
		}
	}
	buf = encoding.PutUint32LE(buf, tx.LockTime)
	return buf
}

func appendInput(buf []byte, in *models.TxInput) []byte {
	buf = append(buf, in.Outpoint.Hash[:]...)
	buf = encoding.PutUint32LE(buf, in.Outpoint.Index)
	buf = encoding.PutVarInt(buf, uint64(len(in.ScriptSig)))
	buf = append(buf, in.ScriptSig...)
	buf = encoding.PutUint32LE(buf, in.Sequence)
	return buf
}

func appendOutput(buf []byte, out *models.TxOutput) []byte {
	buf = encoding.PutInt64LE(buf, out.Value)
	buf = encoding.PutVarInt(buf, uint64(len(out.ScriptPubKey)))
	buf = append(buf, out.ScriptPubKey...)
	return buf
}

// TXID returns dhash(legacy serialization) (spec.md §4.5, §8).
func TXID(tx *models.Transaction) [32]byte {
	return encoding.DHash(serializeLegacy(tx))
}

// WTXID returns dhash(segwit serialization), falling back to the
// legacy form (equal to TXID) when tx carries no witness.
func WTXID(tx *models.Transaction) [32]byte {
	if tx.HasWitness() {
		return encoding.DHash(serializeSegWit(tx))
	}
	return TXID(tx)
}

// Deserialize parses a wire-format transaction, peeking the byte
// immediately after the version to detect the SegWit marker (spec.md
// §4.5). Returns models.TxCodecError on truncated input (including
// witness data shorter than one stack per input), a marker set without
// a trailing flag byte of 0x01, or a marker set when no input carries a
// witness. Bytes after the locktime are not checked.
func Deserialize(b []byte) (*models.Transaction, error) {
	r := &reader{buf: b}

	version, err := r.readUint32LE()
	if err != nil {
		return nil, wrapCodecErr("Deserialize", err)
	}

	segwit := false
	if r.peekByte() == segwitMarker {
		marker, _ := r.readByte()
		flag, err := r.readByte()
		if err != nil {
			return nil, wrapCodecErr("Deserialize", err)
		}
		if marker != segwitMarker || flag != segwitFlag {
			return nil, &models.TxCodecError{Op: "Deserialize", Reason: "marker present without matching flag"}
		}
		segwit = true
	}

	nIn, err := r.readVarInt()
	if err != nil {
		return nil, wrapCodecErr("Deserialize", err)
	}
	inputs := make([]*models.TxInput, nIn)
	for i := range inputs {
		in, err := readInput(r)
		if err != nil {
			return nil, wrapCodecErr("Deserialize", err)
		}
		inputs[i] = in
	}

	nOut, err := r.readVarInt()
	if err != nil {
		return nil, wrapCodecErr("Deserialize", err)
	}
	outputs := make([]*models.TxOutput, nOut)
	for i := range outputs {
		out, err := readOutput(r)
		if err != nil {
			return nil, wrapCodecErr("Deserialize", err)
		}
		outputs[i] = out
	}

	if segwit {
		for i := range inputs {
			count, err := r.readVarInt()
			if err != nil {
				return nil, wrapCodecErr("Deserialize", err)
			}
			stack := make([][]byte, count)
			for j := range stack {
				item, err := r.readVarBytes()
				if err != nil {
					return nil, wrapCodecErr("Deserialize", err)
				}
				stack[j] = item
			}
			inputs[i].Witness = stack
		}
	}

	lockTime, err := r.readUint32LE()
	if err != nil {
		return nil, wrapCodecErr("Deserialize", err)
	}

	if segwit {
		hasWitness := false
		for _, in := range inputs {
			if len(in.Witness) > 0 {
				hasWitness = true
				break
			}
		}
		if !hasWitness {
			return nil, &models.TxCodecError{Op: "Deserialize", Reason: "segwit marker set but no input carries a witness"}
		}
	}

	return &models.Transaction{
		Version:  int32(version),
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: lockTime,
	}, nil
}

func readInput(r *reader) (*models.TxInput, error) {
	in := &models.TxInput{}
	hash, err := r.readBytes(32)
	if err != nil {
		return nil, err
	}
	copy(in.Outpoint.Hash[:], hash)

	index, err := r.readUint32LE()
	if err != nil {
		return nil, err
	}
	in.Outpoint.Index = index

	script, err := r.readVarBytes()
	if err != nil {
		return nil, err
	}
	in.ScriptSig = script

	seq, err := r.readUint32LE()
	if err != nil {
		return nil, err
	}
	in.Sequence = seq
	return in, nil
}

func readOutput(r *reader) (*models.TxOutput, error) {
	value, err := r.readInt64LE()
	if err != nil {
		return nil, err
	}
	script, err := r.readVarBytes()
	if err != nil {
		return nil, err
	}
	return &models.TxOutput{Value: value, ScriptPubKey: script}, nil
}

func wrapCodecErr(op string, err error) error {
	if _, ok := err.(*models.TxCodecError); ok {
		return err
	}
	return &models.TxCodecError{Op: op, Reason: err.Error()}
}
