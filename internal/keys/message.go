package keys

import (
	"bytes"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// messagePreimage builds the varint-length-prefixed
// "<magic><message>" preimage the source project's signmessage/
// verifymessage commands sign, using policy.MessageMagic as the
// coin-specific magic string (SPEC_FULL §5 item 3).
func messagePreimage(policy models.CoinPolicy, message string) []byte {
	var buf bytes.Buffer
	buf.Write(encoding.VarInt(uint64(len(policy.MessageMagic))))
	buf.WriteString(policy.MessageMagic)
	buf.Write(encoding.VarInt(uint64(len(message))))
	buf.WriteString(message)
	return buf.Bytes()
}

// SignMessage produces a 65-byte recoverable signature over message
// under the Bitcoin signed-message convention, using priv's compression
// hint so VerifyMessage can recover the matching address. The source
// project exposes this as privtosign; the distilled spec omits it but
// never excludes it (SPEC_FULL §5 item 3).
func SignMessage(priv *models.PrivateKey, policy models.CoinPolicy, message string) []byte {
	hash := encoding.DHash(messagePreimage(policy, message))
	return ecc.SignCompact(priv, hash[:])
}

// VerifyMessage recovers the public key from sig over message and
// reports whether its P2PKH address under policy equals address.
// Returns models.KeyError if sig does not parse as a valid compact
// signature.
func VerifyMessage(policy models.CoinPolicy, address, message string, sig []byte) (bool, error) {
	hash := encoding.DHash(messagePreimage(policy, message))
	pub, _, err := ecc.RecoverCompact(sig, hash[:])
	if err != nil {
		return false, err
	}
	return PubToAddr(pub, policy) == address, nil
}
