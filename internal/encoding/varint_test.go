package encoding

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarInt_ShortestForm(t *testing.T) {
	tests := []struct {
		n       uint64
		wantLen int
	}{
		{0, 1},
		{252, 1},
		{253, 3},
		{65535, 3},
		{65536, 5},
		{1<<32 - 1, 5},
		{1 << 32, 9},
	}
	for _, tt := range tests {
		got := VarInt(tt.n)
		require.Lenf(t, got, tt.wantLen, "VarInt(%d)", tt.n)

		v, n, err := ReadVarInt(got, true)
		require.NoError(t, err)
		require.Equal(t, tt.n, v)
		require.Equal(t, tt.wantLen, n)
	}
}

func TestReadVarInt_TruncatedInput(t *testing.T) {
	_, _, err := ReadVarInt([]byte{0xfd, 0x01}, false)
	require.Error(t, err)
}

func TestReadVarInt_NonCanonical(t *testing.T) {
	// 1 encoded with the 3-byte prefix is non-canonical.
	nonCanonical := []byte{0xfd, 0x01, 0x00}

	_, _, err := ReadVarInt(nonCanonical, true)
	require.Error(t, err, "strict mode should reject non-canonical VarInt")

	v, n, err := ReadVarInt(nonCanonical, false)
	require.NoError(t, err, "lenient mode tolerates non-canonical VarInt")
	require.Equal(t, uint64(1), v)
	require.Equal(t, 3, n)
}

func TestHash160_KnownVector(t *testing.T) {
	// hash160("") == RIPEMD160(SHA256("")).
	got := Hash160(nil)
	require.Len(t, got, 20)
	require.Equal(t, "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb", hex.EncodeToString(got))
}

func TestDHash_Deterministic(t *testing.T) {
	a := DHash([]byte("abc"))
	b := DHash([]byte("abc"))
	require.Equal(t, a, b)

	c := DHash([]byte("abd"))
	require.NotEqual(t, a, c)
}
