package txcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

func sampleLegacyTx() *models.Transaction {
	tx := models.NewTransaction()
	in := &models.TxInput{
		Outpoint: models.Outpoint{Index: 0},
		Sequence: 0xffffffff,
	}
	in.Outpoint.Hash[0] = 0xaa
	tx.Inputs = append(tx.Inputs, in)
	tx.Outputs = append(tx.Outputs, &models.TxOutput{
		Value:        5000000000,
		ScriptPubKey: []byte{0x76, 0xa9, 0x14},
	})
	return tx
}

func TestSerialize_LegacyRoundTrip(t *testing.T) {
	tx := sampleLegacyTx()
	tx.Outputs[0].ScriptPubKey = append(tx.Outputs[0].ScriptPubKey, make([]byte, 20)...)
	tx.Outputs[0].ScriptPubKey = append(tx.Outputs[0].ScriptPubKey, 0x88, 0xac)

	wire := Serialize(tx)
	got, err := Deserialize(wire)
	require.NoError(t, err)
	require.Equal(t, tx.Version, got.Version)
	require.Equal(t, tx.LockTime, got.LockTime)
	require.Len(t, got.Inputs, 1)
	require.Len(t, got.Outputs, 1)
	require.Equal(t, tx.Outputs[0].Value, got.Outputs[0].Value)
	require.Equal(t, tx.Outputs[0].ScriptPubKey, got.Outputs[0].ScriptPubKey)
	require.False(t, got.HasWitness())
}

func TestSerialize_SegWitRoundTrip(t *testing.T) {
	tx := sampleLegacyTx()
	tx.Inputs[0].Witness = [][]byte{
		{0x30, 0x44, 0x01, 0x02},
		make([]byte, 33),
	}

	wire := Serialize(tx)
	require.Equal(t, byte(0x00), wire[4])
	require.Equal(t, byte(0x01), wire[5])

	got, err := Deserialize(wire)
	require.NoError(t, err)
	require.True(t, got.HasWitness())
	require.Len(t, got.Inputs[0].Witness, 2)
	require.Equal(t, tx.Inputs[0].Witness[1], got.Inputs[0].Witness[1])
}

func TestTXID_IgnoresWitness(t *testing.T) {
	tx := sampleLegacyTx()
	plainTXID := TXID(tx)

	tx.Inputs[0].Witness = [][]byte{make([]byte, 33)}
	require.Equal(t, plainTXID, TXID(tx))
	require.NotEqual(t, plainTXID, WTXID(tx))
}

func TestWTXID_EqualsTXIDWithoutWitness(t *testing.T) {
	tx := sampleLegacyTx()
	require.Equal(t, TXID(tx), WTXID(tx))
}

func TestDeserialize_RejectsTruncatedInput(t *testing.T) {
	_, err := Deserialize([]byte{0x01, 0x00, 0x00})
	require.Error(t, err)
}

func TestDeserialize_RejectsBadMarkerFlag(t *testing.T) {
	wire := []byte{
		0x01, 0x00, 0x00, 0x00, // version
		0x00, 0x02, // marker ok, flag wrong
	}
	_, err := Deserialize(wire)
	require.Error(t, err)
}
