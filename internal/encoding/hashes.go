package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by the Bitcoin protocol (Hash160)
)

// Hash160 computes RIPEMD160(SHA256(data)), the hash Bitcoin addresses
// are built from. Generalized from the teacher's internal/wallet/btc.go
// hash160 helper.
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	return ripe.Sum(nil)
}

// DHash computes double-SHA256, used for txids, Base58Check checksums,
// and every sighash in this library.
func DHash(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// HMACSHA512 computes HMAC-SHA-512(key, data), as BIP32 requires for
// master-key generation and child derivation.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
