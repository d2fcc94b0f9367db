package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestP2PKHScript_Classification(t *testing.T) {
	hash := make([]byte, 20)
	s := P2PKHScript(hash)
	require.True(t, IsP2PKH(s))
	require.False(t, IsP2SH(s))
	require.False(t, IsSegWit(s))
	require.Equal(t, hash, ExtractHash(s))
}

func TestP2SHScript_Classification(t *testing.T) {
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i)
	}
	s := P2SHScript(hash)
	require.True(t, IsP2SH(s))
	require.False(t, IsP2PKH(s))
	require.Equal(t, hash, ExtractHash(s))
}

func TestP2WPKHScript_Classification(t *testing.T) {
	hash := make([]byte, 20)
	s := P2WPKHScript(hash)
	require.True(t, IsSegWit(s))
	require.True(t, IsP2WPKH(s))
	require.Equal(t, hash, ExtractHash(s))
}

func TestP2WPKHNestedScriptSig_Shape(t *testing.T) {
	hash := make([]byte, 20)
	sig := P2WPKHNestedScriptSig(hash)
	require.Len(t, sig, 23) // push(22) + redeem(22)
	require.Equal(t, byte(22), sig[0])
}

func TestBuildMultisigRedeem_RoundTrip(t *testing.T) {
	pubs := [][]byte{make([]byte, 33), make([]byte, 33), make([]byte, 33)}
	redeem, err := BuildMultisigRedeem(2, pubs)
	require.NoError(t, err)
	require.True(t, IsMultisigRedeem(redeem))
}

func TestBuildMultisigRedeem_RejectsOutOfRange(t *testing.T) {
	_, err := BuildMultisigRedeem(3, [][]byte{make([]byte, 33)})
	require.Error(t, err)
}

func TestParseMultisigRedeem_RoundTrip(t *testing.T) {
	pubs := [][]byte{make([]byte, 33), make([]byte, 33), make([]byte, 33)}
	for i := range pubs {
		pubs[i][0] = byte(i + 1)
	}
	redeem, err := BuildMultisigRedeem(2, pubs)
	require.NoError(t, err)

	parsed, err := ParseMultisigRedeem(redeem)
	require.NoError(t, err)
	require.Equal(t, 2, parsed.M)
	require.Equal(t, pubs, parsed.PubKeys)
}

func TestParseMultisigRedeem_RejectsNonMultisig(t *testing.T) {
	_, err := ParseMultisigRedeem(P2PKHScript(make([]byte, 20)))
	require.Error(t, err)
}
