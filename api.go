package secp256k1

// Sign produces a deterministic (RFC 6979), low-S ECDSA signature over the
// 32-byte hashed message msg32 under secretKey, returning the signature as
// 32-byte r, 32-byte s, and a 0..3 recovery id.
func Sign(secretKey, msg32 []byte) (r, s [32]byte, recid int, err error) {
	if len(msg32) != 32 {
		return r, s, 0, ErrInvalidMessage
	}
	return sign(secretKey, msg32)
}

// Verify reports whether the given r, s signature is valid over msg32 under
// the 64-byte raw public key.
func Verify(r, s [32]byte, msg32 []byte, pubkey64 []byte) bool {
	if len(msg32) != 32 || len(pubkey64) != 64 {
		return false
	}
	sig := SerializeSignatureCompact(r, s)
	return verify(sig, msg32, pubkey64)
}

// Recover reconstructs the 64-byte raw public key implied by a signature,
// its recovery id, and the signed message.
func Recover(r, s [32]byte, recid int, msg32 []byte) ([64]byte, error) {
	var out [64]byte
	if len(msg32) != 32 {
		return out, ErrInvalidMessage
	}
	sig := SerializeSignatureCompact(r, s)
	return recover(sig, recid, msg32)
}
