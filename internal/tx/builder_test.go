package tx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/coins"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/explorer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/script"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/signer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/storage"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

func testPrivKey(t *testing.T, b byte) *models.PrivateKey {
	t.Helper()
	scalar := bytes.Repeat([]byte{b}, 32)
	priv, err := ecc.NewPrivateKey(scalar, models.EncodingWIFCompressed)
	require.NoError(t, err)
	return priv
}

// newTestSendRequest builds a one-input, one-output P2PKH spend signed
// by priv, ready for Builder.Send.
func newTestSendRequest(t *testing.T, idemKey string, priv *models.PrivateKey, policy *models.CoinPolicy) SendRequest {
	t.Helper()

	pubHash := encoding.Hash160(priv.PubKey().SerializeBytes())
	prevScript := script.P2PKHScript(pubHash)

	txn := models.NewTransaction()
	txn.Inputs = append(txn.Inputs, &models.TxInput{
		Outpoint: models.Outpoint{Index: 0},
		Sequence: 0xffffffff,
	})
	txn.Outputs = append(txn.Outputs, &models.TxOutput{
		Value:        90_000,
		ScriptPubKey: prevScript,
	})

	return SendRequest{
		IdempotencyKey: idemKey,
		Policy:         policy,
		Tx:             txn,
		InputSpecs:     []signer.InputSpec{{Kind: signer.KindLegacyP2PKH}},
		Privs:          []*models.PrivateKey{priv},
	}
}

func newTestBuilder(transport explorer.Transport) (*Builder, storage.TxStore) {
	txStore := storage.NewMemoryTxStore()
	b := NewBuilder(
		BuilderConfig{MaxRetries: 3},
		transport,
		storage.NewMemoryDerivationIndexStore(),
		txStore,
	)
	return b, txStore
}

func TestBuilder_SendBroadcastsSignedTx(t *testing.T) {
	policy, err := coins.Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)

	tr := explorer.NewMemoryExplorer()
	tr.SetPushResult(explorer.PushResult{Status: "accepted", TXID: "deadbeef"}, nil)

	b, _ := newTestBuilder(tr)
	priv := testPrivKey(t, 0x01)

	req := newTestSendRequest(t, "key-1", priv, policy)
	got, err := b.Send(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, got.Inputs[0].ScriptSig)
	require.Len(t, tr.Pushed(), 1)
}

func TestBuilder_SendIsIdempotent(t *testing.T) {
	policy, err := coins.Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)

	tr := explorer.NewMemoryExplorer()
	tr.SetPushResult(explorer.PushResult{Status: "accepted", TXID: "deadbeef"}, nil)

	b, _ := newTestBuilder(tr)
	priv := testPrivKey(t, 0x02)

	req := newTestSendRequest(t, "key-dup", priv, policy)
	tx1, err := b.Send(context.Background(), req)
	require.NoError(t, err)

	// Same idempotency key, fresh unsigned tx: should short-circuit
	// before signing or broadcasting a second time.
	req2 := newTestSendRequest(t, "key-dup", priv, policy)
	tx2, err := b.Send(context.Background(), req2)
	require.NoError(t, err)

	require.Same(t, tx1, tx2)
	require.Len(t, tr.Pushed(), 1)
}

func TestBuilder_SendFailsAfterExhaustingRetries(t *testing.T) {
	policy, err := coins.Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)

	tr := explorer.NewMemoryExplorer()
	tr.SetPushResult(explorer.PushResult{}, &models.TransportError{Op: "PushTx", StatusCode: 500, Body: "node unavailable"})

	b, _ := newTestBuilder(tr)
	b.cfg.MaxRetries = 1 // avoid burning real wall-clock time on the backoff sleep
	priv := testPrivKey(t, 0x03)

	req := newTestSendRequest(t, "key-fail", priv, policy)
	_, err = b.Send(context.Background(), req)
	require.Error(t, err)
	require.Len(t, tr.Pushed(), 1)
}

func TestBuilder_SendRejectsMismatchedSpecLength(t *testing.T) {
	policy, err := coins.Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)

	tr := explorer.NewMemoryExplorer()
	b, _ := newTestBuilder(tr)
	priv := testPrivKey(t, 0x04)

	req := newTestSendRequest(t, "key-bad", priv, policy)
	req.InputSpecs = nil // now mismatched against len(Tx.Inputs)

	_, err = b.Send(context.Background(), req)
	require.Error(t, err)
}

func TestBuilder_NextDerivationIndexIncrements(t *testing.T) {
	tr := explorer.NewMemoryExplorer()
	b, _ := newTestBuilder(tr)

	i0, err := b.NextDerivationIndex("m/44'/0'/0'/0")
	require.NoError(t, err)
	i1, err := b.NextDerivationIndex("m/44'/0'/0'/0")
	require.NoError(t, err)

	require.Equal(t, uint32(0), i0)
	require.Equal(t, uint32(1), i1)
}
