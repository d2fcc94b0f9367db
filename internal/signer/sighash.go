// Package signer computes sighash preimages and produces signed
// transactions from a models.Transaction plus per-input signing keys
// (spec.md §4.6). The legacy shallow-copy-then-mask technique is
// grounded on philgrim2/rosetta-thought's CalcSignatureHash; the BIP143
// and BCH fork-id forms follow spec.md §4.6/§8 directly, since no
// pack example implements BIP143.
package signer

import (
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/txcodec"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// LegacySigHash computes the pre-BIP143 sighash for tx's input at
// index, using subscript as the scriptCode substituted into that
// input (and masking every other input's ScriptSig to empty), per the
// classic OP_CHECKSIG preimage algorithm.
func LegacySigHash(tx *models.Transaction, index int, subscript []byte, hashType models.SigHashType) ([32]byte, error) {
	if index < 0 || index >= len(tx.Inputs) {
		return [32]byte{}, &models.SigningError{Op: "LegacySigHash", Reason: "input index out of range"}
	}

	work := tx.Clone()
	for i, in := range work.Inputs {
		if i == index {
			in.ScriptSig = subscript
		} else {
			in.ScriptSig = nil
		}
	}

	applyLegacyMasking(work, index, hashType)

	if hashType.HasAnyOneCanPay() {
		work.Inputs = []*models.TxInput{work.Inputs[index]}
	}

	preimage := txcodec.Serialize(work)
	preimage = encoding.PutUint32LE(preimage, uint32(hashType))
	return encoding.DHash(preimage), nil
}

// applyLegacyMasking mutates work's outputs and input sequence numbers
// in place per hashType's SIGHASH_NONE/SIGHASH_SINGLE semantics. Must
// run before the AnyOneCanPay input-pruning step, since SINGLE's output
// truncation is indexed against the pre-pruning input list.
func applyLegacyMasking(work *models.Transaction, index int, hashType models.SigHashType) {
	switch hashType.BaseType() {
	case models.SigHashNone:
		work.Outputs = nil
		for i, in := range work.Inputs {
			if i != index {
				in.Sequence = 0
			}
		}
	case models.SigHashSingle:
		if index < len(work.Outputs) {
			work.Outputs = work.Outputs[:index+1]
			for i := 0; i < index; i++ {
				work.Outputs[i] = &models.TxOutput{Value: -1, ScriptPubKey: nil}
			}
		}
		for i, in := range work.Inputs {
			if i != index {
				in.Sequence = 0
			}
		}
	}
}

// WitnessSigHash computes the BIP143 witness program sighash (spec.md
// §4.6 item 2). amount is the prevout value in satoshis; callers must
// have it for every SegWit input (enforced by callers, not here).
func WitnessSigHash(tx *models.Transaction, index int, scriptCode []byte, amount int64, hashType models.SigHashType) ([32]byte, error) {
	return bip143Preimage(tx, index, scriptCode, amount, hashType, uint32(hashType))
}

// ForkIDSigHash computes the BCH-style sighash: the BIP143 preimage
// with SIGHASH_FORKID set and the coin's 3-byte fork-id packed into the
// high bytes of the appended hash-type word (spec.md §4.6 item 3).
// Applies to every BCH input, legacy or witness-shaped, since BCH's
// fork-id protection was retrofitted onto the legacy scriptCode path
// too (see DESIGN.md Open Question decisions).
func ForkIDSigHash(tx *models.Transaction, index int, scriptCode []byte, amount int64, hashType models.SigHashType, forkID [3]byte) ([32]byte, error) {
	taggedType := hashType | models.SigHashForkID
	word := uint32(taggedType) | uint32(forkID[0])<<8 | uint32(forkID[1])<<16 | uint32(forkID[2])<<24
	return bip143Preimage(tx, index, scriptCode, amount, taggedType, word)
}

// bip143Preimage builds the common BIP143 preimage; maskType decides
// which masking rules apply (SINGLE/NONE/ANYONECANPAY), while
// appendWord is the literal 4-byte value appended at the end, which for
// BCH differs from maskType because the fork-id bytes ride along in
// its high 3 bytes (spec.md §4.6 item 3, §8).
func bip143Preimage(tx *models.Transaction, index int, scriptCode []byte, amount int64, maskType models.SigHashType, appendWord uint32) ([32]byte, error) {
	if index < 0 || index >= len(tx.Inputs) {
		return [32]byte{}, &models.SigningError{Op: "WitnessSigHash", Reason: "input index out of range"}
	}

	hashPrevouts := bip143HashPrevouts(tx, maskType)
	hashSequence := bip143HashSequence(tx, maskType)
	hashOutputs := bip143HashOutputs(tx, index, maskType)

	in := tx.Inputs[index]
	var buf []byte
	buf = encoding.PutUint32LE(buf, uint32(tx.Version))
	buf = append(buf, hashPrevouts[:]...)
	buf = append(buf, hashSequence[:]...)
	buf = append(buf, in.Outpoint.Hash[:]...)
	buf = encoding.PutUint32LE(buf, in.Outpoint.Index)
	buf = encoding.PutVarInt(buf, uint64(len(scriptCode)))
	buf = append(buf, scriptCode...)
	buf = encoding.PutInt64LE(buf, amount)
	buf = encoding.PutUint32LE(buf, in.Sequence)
	buf = append(buf, hashOutputs[:]...)
	buf = encoding.PutUint32LE(buf, tx.LockTime)
	buf = encoding.PutUint32LE(buf, appendWord)
	return encoding.DHash(buf), nil
}

func bip143HashPrevouts(tx *models.Transaction, hashType models.SigHashType) [32]byte {
	if hashType.HasAnyOneCanPay() {
		return [32]byte{}
	}
	var buf []byte
	for _, in := range tx.Inputs {
		buf = append(buf, in.Outpoint.Hash[:]...)
		buf = encoding.PutUint32LE(buf, in.Outpoint.Index)
	}
	return encoding.DHash(buf)
}

func bip143HashSequence(tx *models.Transaction, hashType models.SigHashType) [32]byte {
	if hashType.HasAnyOneCanPay() || hashType.BaseType() == models.SigHashSingle || hashType.BaseType() == models.SigHashNone {
		return [32]byte{}
	}
	var buf []byte
	for _, in := range tx.Inputs {
		buf = encoding.PutUint32LE(buf, in.Sequence)
	}
	return encoding.DHash(buf)
}

func bip143HashOutputs(tx *models.Transaction, index int, hashType models.SigHashType) [32]byte {
	switch hashType.BaseType() {
	case models.SigHashSingle:
		if index >= len(tx.Outputs) {
			return [32]byte{}
		}
		var buf []byte
		buf = encoding.PutInt64LE(buf, tx.Outputs[index].Value)
		buf = encoding.PutVarInt(buf, uint64(len(tx.Outputs[index].ScriptPubKey)))
		buf = append(buf, tx.Outputs[index].ScriptPubKey...)
		return encoding.DHash(buf)
	case models.SigHashNone:
		return [32]byte{}
	default:
		var buf []byte
		for _, out := range tx.Outputs {
			buf = encoding.PutInt64LE(buf, out.Value)
			buf = encoding.PutVarInt(buf, uint64(len(out.ScriptPubKey)))
			buf = append(buf, out.ScriptPubKey...)
		}
		return encoding.DHash(buf)
	}
}
