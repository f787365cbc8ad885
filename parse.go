package secp256k1

// Wire-format parsers and serializers. These sit outside the arithmetic
// core proper but are included as the thin adapter layer a caller needs to
// reach the core's scalars and points from the encodings
// Bitcoin/Ethereum-style callers expect.

const (
	tagPubkeyEven         = 0x02
	tagPubkeyOdd          = 0x03
	tagPubkeyUncompressed = 0x04
	tagPubkeyHybridEven   = 0x06
	tagPubkeyHybridOdd    = 0x07
)

// ParsePublicKey parses a variable-length encoded public key (33-byte
// compressed, 65-byte uncompressed, or 65-byte hybrid) into its 64-byte raw
// x‖y form.
func ParsePublicKey(in []byte) ([64]byte, error) {
	var out [64]byte
	switch {
	case len(in) == 33 && (in[0] == tagPubkeyEven || in[0] == tagPubkeyOdd):
		var x FieldElement
		if !x.setB32(in[1:]) {
			return out, ErrInvalidPublicKey
		}
		var p GroupElementAffine
		if !p.setXOVar(&x, in[0] == tagPubkeyOdd) {
			return out, ErrInvalidPublicKey
		}
		p.rawBytes(out[:])
		return out, nil

	case len(in) == 65 && in[0] == tagPubkeyUncompressed:
		var p GroupElementAffine
		if !p.setRawBytes(in[1:]) {
			return out, ErrInvalidPublicKey
		}
		copy(out[:], in[1:])
		return out, nil

	case len(in) == 65 && (in[0] == tagPubkeyHybridEven || in[0] == tagPubkeyHybridOdd):
		var p GroupElementAffine
		if !p.setRawBytes(in[1:]) {
			return out, ErrInvalidPublicKey
		}
		wantOdd := in[0] == tagPubkeyHybridOdd
		if p.y.isOdd() != wantOdd {
			return out, ErrInvalidPublicKey
		}
		copy(out[:], in[1:])
		return out, nil

	default:
		return out, ErrInvalidInputLength
	}
}

// SerializePublicKeyUncompressed encodes the 64-byte raw public key as
// 0x04‖x‖y.
func SerializePublicKeyUncompressed(raw64 []byte) ([65]byte, error) {
	var out [65]byte
	if len(raw64) != 64 {
		return out, ErrInvalidInputLength
	}
	out[0] = tagPubkeyUncompressed
	copy(out[1:], raw64)
	return out, nil
}

// SerializePublicKeyCompressed encodes the 64-byte raw public key as
// (0x02|0x03)‖x.
func SerializePublicKeyCompressed(raw64 []byte) ([33]byte, error) {
	var out [33]byte
	if len(raw64) != 64 {
		return out, ErrInvalidInputLength
	}
	if raw64[63]&1 != 0 {
		out[0] = tagPubkeyOdd
	} else {
		out[0] = tagPubkeyEven
	}
	copy(out[1:], raw64[:32])
	return out, nil
}

// SerializePublicKeyHybrid encodes the 64-byte raw public key as
// (0x06|0x07)‖x‖y, with the tag's parity bit matching y.
func SerializePublicKeyHybrid(raw64 []byte) ([65]byte, error) {
	var out [65]byte
	if len(raw64) != 64 {
		return out, ErrInvalidInputLength
	}
	if raw64[63]&1 != 0 {
		out[0] = tagPubkeyHybridOdd
	} else {
		out[0] = tagPubkeyHybridEven
	}
	copy(out[1:], raw64)
	return out, nil
}

// ParseSignatureCompact parses a 64-byte r‖s compact signature, rejecting
// scalars that overflow n.
func ParseSignatureCompact(in []byte) (r, s [32]byte, err error) {
	if len(in) != 64 {
		return r, s, ErrInvalidInputLength
	}
	var rs, ss Scalar
	if rs.setB32(in[:32]) {
		return r, s, ErrInvalidSignature
	}
	if ss.setB32(in[32:]) {
		return r, s, ErrInvalidSignature
	}
	copy(r[:], in[:32])
	copy(s[:], in[32:])
	return r, s, nil
}

// SerializeSignatureCompact concatenates r and s into the 64-byte compact
// form.
func SerializeSignatureCompact(r, s [32]byte) [64]byte {
	var out [64]byte
	copy(out[:32], r[:])
	copy(out[32:], s[:])
	return out
}

// derEncodeInt encodes a 32-byte big-endian scalar as a minimal, non-negative DER
// INTEGER (trimming leading zero bytes, then re-adding one if the high bit
// of the first remaining byte is set, so the value never reads as negative).
func derEncodeInt(v []byte) []byte {
	b := v
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	needsPad := b[0]&0x80 != 0
	out := make([]byte, 0, len(b)+3)
	out = append(out, 0x02)
	length := len(b)
	if needsPad {
		length++
	}
	out = append(out, byte(length))
	if needsPad {
		out = append(out, 0x00)
	}
	out = append(out, b...)
	return out
}

// SerializeSignatureDER encodes r and s as a standard ASN.1
// SEQUENCE{INTEGER r, INTEGER s}.
func SerializeSignatureDER(r, s [32]byte) []byte {
	rEnc := derEncodeInt(r[:])
	sEnc := derEncodeInt(s[:])
	body := make([]byte, 0, len(rEnc)+len(sEnc))
	body = append(body, rEnc...)
	body = append(body, sEnc...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

// derReadInt parses one DER INTEGER from b, returning its value
// left-padded to 32 bytes and the remainder of b after the TLV. A value
// longer than 32 bytes is rejected, not truncated.
func derReadInt(b []byte) (val [32]byte, rest []byte, ok bool) {
	if len(b) < 2 || b[0] != 0x02 {
		return val, nil, false
	}
	length := int(b[1])
	if length == 0 || len(b) < 2+length {
		return val, nil, false
	}
	content := b[2 : 2+length]
	rest = b[2+length:]

	if content[0]&0x80 != 0 {
		// DER integers are signed; this library only ever parses r, s which
		// are positive by construction, so a set high bit with no leading
		// zero byte is a malformed/negative encoding.
		return val, nil, false
	}
	trimmed := content
	for len(trimmed) > 1 && trimmed[0] == 0 {
		if len(trimmed) > 1 && trimmed[1]&0x80 == 0 {
			return val, nil, false // non-minimal encoding
		}
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 32 {
		return val, nil, false
	}
	copy(val[32-len(trimmed):], trimmed)
	return val, rest, true
}

// ParseSignatureDER parses a standard ASN.1 SEQUENCE{INTEGER r, INTEGER s}
// signature, rejecting malformed encodings and out-of-range scalars.
func ParseSignatureDER(in []byte) (r, s [32]byte, err error) {
	if len(in) < 8 || in[0] != 0x30 {
		return r, s, ErrInvalidSignature
	}
	length := int(in[1])
	if len(in) != 2+length {
		return r, s, ErrInvalidSignature
	}
	body := in[2:]

	r, rest, ok := derReadInt(body)
	if !ok {
		return r, s, ErrInvalidSignature
	}
	s, rest, ok = derReadInt(rest)
	if !ok || len(rest) != 0 {
		return r, s, ErrInvalidSignature
	}

	var rs, ss Scalar
	if rs.setB32(r[:]) || ss.setB32(s[:]) {
		return r, s, ErrInvalidSignature
	}
	return r, s, nil
}

// NormalizeSignatureS rewrites s to its low-S form (s <= n/2) in place,
// returning whether a negation was applied.
func NormalizeSignatureS(s *[32]byte) bool {
	var sv Scalar
	sv.setB32(s[:])
	if !sv.isHigh() {
		return false
	}
	var neg Scalar
	neg.negate(&sv)
	neg.b32(s[:])
	return true
}

// ParseRecoveryID validates a recovery id in 0..3, or its RPC-shifted form
// (27..30), returning the normalized 0..3 value.
func ParseRecoveryID(v int) (int, error) {
	switch {
	case v >= 0 && v <= 3:
		return v, nil
	case v >= 27 && v <= 30:
		return v - 27, nil
	default:
		return 0, ErrInvalidRecoveryID
	}
}

// RecoveryIDToRPC shifts a 0..3 recovery id into its RPC-convention form
// (27..30).
func RecoveryIDToRPC(recid int) (int, error) {
	if recid < 0 || recid > 3 {
		return 0, ErrInvalidRecoveryID
	}
	return recid + 27, nil
}
