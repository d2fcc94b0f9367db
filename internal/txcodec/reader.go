package txcodec

import (
	"encoding/binary"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// reader is a minimal cursor over a wire-format byte slice, tailored to
// the handful of field shapes a transaction uses. Not safe for
// concurrent use; each Deserialize call owns its own reader.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) peekByte() byte {
	if r.remaining() < 1 {
		return 0xff // never equals segwitMarker, so a truncated buffer falls through to a normal read error
	}
	return r.buf[r.pos]
}

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, &models.TxCodecError{Op: "readByte", Reason: "unexpected end of input"}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, &models.TxCodecError{Op: "readBytes", Reason: "unexpected end of input"}
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *reader) readUint32LE() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readInt64LE() (int64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) readVarInt() (uint64, error) {
	v, n, err := encoding.ReadVarInt(r.buf[r.pos:], false)
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

func (r *reader) readVarBytes() ([]byte, error) {
	n, err := r.readVarInt()
	if err != nil {
		return nil, err
	}
	return r.readBytes(int(n))
}
