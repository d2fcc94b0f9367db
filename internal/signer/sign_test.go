package signer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/coins"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/script"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

func testKey(t *testing.T, scalar byte) *models.PrivateKey {
	t.Helper()
	buf := make([]byte, 32)
	buf[31] = scalar
	buf[0] = 0x01 // keep it away from zero without relying on a second byte
	priv, err := ecc.NewPrivateKey(buf, models.EncodingWIFCompressed)
	require.NoError(t, err)
	return priv
}

func btcMainPolicy(t *testing.T) *models.CoinPolicy {
	t.Helper()
	p, err := coins.Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)
	return p
}

func bchMainPolicy(t *testing.T) *models.CoinPolicy {
	t.Helper()
	p, err := coins.Lookup(models.CoinBitcoinCash, false)
	require.NoError(t, err)
	return p
}

func twoOutputTx() *models.Transaction {
	tx := models.NewTransaction()
	in := &models.TxInput{Outpoint: models.Outpoint{Index: 0}, Sequence: 0xffffffff}
	in.Outpoint.Hash[0] = 0x01
	tx.Inputs = append(tx.Inputs, in)
	tx.Outputs = append(tx.Outputs,
		&models.TxOutput{Value: 100000, ScriptPubKey: script.P2PKHScript(make([]byte, 20))},
		&models.TxOutput{Value: 200000, ScriptPubKey: script.P2PKHScript(make([]byte, 20))},
	)
	return tx
}

func TestSign_P2PKH_ProducesVerifiableSignature(t *testing.T) {
	priv := testKey(t, 7)
	policy := btcMainPolicy(t)
	tx := twoOutputTx()

	err := Sign(tx, 0, priv, InputSpec{Kind: KindLegacyP2PKH}, policy, HashType)
	require.NoError(t, err)
	require.NotEmpty(t, tx.Inputs[0].ScriptSig)

	pubHash := encoding.Hash160(priv.PubKey().SerializeBytes())
	subscript := script.P2PKHScript(pubHash)
	hash, err := LegacySigHash(tx, 0, subscript, HashType)
	require.NoError(t, err)

	items, err := splitPushes(tx.Inputs[0].ScriptSig)
	require.NoError(t, err)
	require.Len(t, items, 2)
	sigDER := items[0][:len(items[0])-1] // strip trailing hashType byte

	sig, err := ecc.ParseDERSignature(sigDER)
	require.NoError(t, err)
	require.True(t, ecc.Verify(priv.PubKey(), hash[:], sig))
}

func TestSign_P2PKH_IsIdempotent(t *testing.T) {
	priv := testKey(t, 9)
	policy := btcMainPolicy(t)
	tx := twoOutputTx()

	require.NoError(t, Sign(tx, 0, priv, InputSpec{Kind: KindLegacyP2PKH}, policy, HashType))
	first := append([]byte(nil), tx.Inputs[0].ScriptSig...)

	require.NoError(t, Sign(tx, 0, priv, InputSpec{Kind: KindLegacyP2PKH}, policy, HashType))
	require.Equal(t, first, tx.Inputs[0].ScriptSig)
}

func TestSign_P2WPKH_RequiresAmount(t *testing.T) {
	priv := testKey(t, 3)
	policy := btcMainPolicy(t)
	tx := twoOutputTx()

	err := Sign(tx, 0, priv, InputSpec{Kind: KindP2WPKH}, policy, HashType)
	require.Error(t, err)
	var sigErr *models.SigningError
	require.ErrorAs(t, err, &sigErr)
}

func TestSign_P2WPKH_ProducesTwoElementWitness(t *testing.T) {
	priv := testKey(t, 11)
	policy := btcMainPolicy(t)
	tx := twoOutputTx()

	err := Sign(tx, 0, priv, InputSpec{Kind: KindP2WPKH, Amount: 180000000}, policy, HashType)
	require.NoError(t, err)
	require.Len(t, tx.Inputs[0].Witness, 2)
	require.Equal(t, priv.PubKey().SerializeBytes(), tx.Inputs[0].Witness[1])
}

func TestSign_P2WPKHNested_SetsScriptSigAndWitness(t *testing.T) {
	priv := testKey(t, 13)
	policy := btcMainPolicy(t)
	tx := twoOutputTx()

	err := Sign(tx, 0, priv, InputSpec{Kind: KindP2WPKHNested, Amount: 90000000}, policy, HashType)
	require.NoError(t, err)
	require.Len(t, tx.Inputs[0].Witness, 2)
	require.Equal(t, byte(22), tx.Inputs[0].ScriptSig[0])
}

func TestSign_BCHUsesForkIDSigHash(t *testing.T) {
	priv := testKey(t, 17)
	policy := bchMainPolicy(t)
	tx := twoOutputTx()

	err := Sign(tx, 0, priv, InputSpec{Kind: KindLegacyP2PKH}, policy, HashType)
	require.NoError(t, err)

	pubHash := encoding.Hash160(priv.PubKey().SerializeBytes())
	subscript := script.P2PKHScript(pubHash)

	legacyHash, err := LegacySigHash(tx, 0, subscript, HashType)
	require.NoError(t, err)

	items, err := splitPushes(tx.Inputs[0].ScriptSig)
	require.NoError(t, err)
	sigDER := items[0][:len(items[0])-1]
	sig, err := ecc.ParseDERSignature(sigDER)
	require.NoError(t, err)

	// A BCH signature must NOT verify against the plain legacy sighash:
	// it was produced over the fork-id preimage instead.
	require.False(t, ecc.Verify(priv.PubKey(), legacyHash[:], sig))

	forkHash, err := ForkIDSigHash(tx, 0, subscript, 0, HashType, *policy.ForkID)
	require.NoError(t, err)
	require.True(t, ecc.Verify(priv.PubKey(), forkHash[:], sig))
}

func TestSign_Multisig_SlotOrderAndIdempotency(t *testing.T) {
	privA := testKey(t, 21)
	privB := testKey(t, 22)
	pubA := privA.PubKey().SerializeBytes()
	pubB := privB.PubKey().SerializeBytes()

	redeem, err := script.BuildMultisigRedeem(2, [][]byte{pubA, pubB})
	require.NoError(t, err)

	policy := btcMainPolicy(t)
	tx := twoOutputTx()
	spec := InputSpec{Kind: KindP2SHMultisig, RedeemScript: redeem}

	require.NoError(t, Sign(tx, 0, privA, spec, policy, HashType))
	require.NoError(t, Sign(tx, 0, privB, spec, policy, HashType))

	items, err := splitPushes(tx.Inputs[0].ScriptSig)
	require.NoError(t, err)
	require.Len(t, items, 4) // dummy, sigA, sigB, redeem

	before := append([]byte(nil), tx.Inputs[0].ScriptSig...)
	require.NoError(t, Sign(tx, 0, privA, spec, policy, HashType))
	require.Equal(t, before, tx.Inputs[0].ScriptSig)
}

func TestSign_Multisig_RejectsUnknownKey(t *testing.T) {
	privA := testKey(t, 31)
	privB := testKey(t, 32)
	privC := testKey(t, 33)
	redeem, err := script.BuildMultisigRedeem(2, [][]byte{privA.PubKey().SerializeBytes(), privB.PubKey().SerializeBytes()})
	require.NoError(t, err)

	policy := btcMainPolicy(t)
	tx := twoOutputTx()
	err = Sign(tx, 0, privC, InputSpec{Kind: KindP2SHMultisig, RedeemScript: redeem}, policy, HashType)
	require.Error(t, err)
}
