package secp256k1

// EcdhRaw is the minimal ECDH primitive. It rejects a zero
// scalar, computes P = scalar*point via the constant-time variable-point
// multiply (never the wNAF path: point is attacker-influenced, scalar is
// secret), and returns the 33-byte prefix‖x encoding intended to be fed to
// an external hash by the caller (the hashing step is deliberately
// externalized so callers can pick their own digest).
func EcdhRaw(point64 []byte, scalar32 []byte) ([33]byte, error) {
	var out [33]byte

	if len(point64) != 64 || len(scalar32) != 32 {
		return out, ErrInvalidInputLength
	}

	var s Scalar
	if !s.setB32Seckey(scalar32) {
		return out, ErrInvalidSecretKey
	}

	var p GroupElementAffine
	if !p.setRawBytes(point64) {
		s.clear()
		return out, ErrInvalidPublicKey
	}

	var resJac GroupElementJacobian
	ecmultConst(&resJac, &p, &s)
	s.clear()

	var res GroupElementAffine
	res.setGEJ(&resJac)
	resJac.clear()
	res.x.normalize()
	res.y.normalize()

	if res.y.isOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	res.x.b32(out[1:])
	res.clear()
	return out, nil
}

// ECDH computes the conventional SHA-256-compressed ECDH shared secret:
// EcdhRaw's prefix‖x bytes run through SHA-256. This is the composition a
// caller without its own hash preference would use.
func ECDH(point64 []byte, scalar32 []byte) ([32]byte, error) {
	var out [32]byte
	raw, err := EcdhRaw(point64, scalar32)
	if err != nil {
		return out, err
	}
	h := NewSHA256()
	h.Write(raw[:])
	h.Finalize(out[:])
	h.Clear()
	return out, nil
}
