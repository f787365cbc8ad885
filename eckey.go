package secp256k1

import "crypto/rand"

// SecretKeyVerify reports whether seckey is a valid 32-byte secret key:
// its big-endian value must lie in [1, n-1].
func SecretKeyVerify(seckey []byte) bool {
	if len(seckey) != 32 {
		return false
	}
	var s Scalar
	return s.setB32Seckey(seckey)
}

// GenerateSecretKey draws a uniformly random secret key from crypto/rand,
// rejecting samples outside [1, n-1] (negligible probability, but checked
// rather than assumed).
func GenerateSecretKey() ([32]byte, error) {
	var seckey [32]byte
	for {
		if _, err := rand.Read(seckey[:]); err != nil {
			return seckey, err
		}
		if SecretKeyVerify(seckey[:]) {
			return seckey, nil
		}
	}
}

// PublicKeyFromSecretKey derives the 64-byte raw public key (x‖y) for a
// secret key via the fixed-base ladder, gn*G.
func PublicKeyFromSecretKey(seckey []byte) ([64]byte, error) {
	var out [64]byte
	var s Scalar
	if !s.setB32Seckey(seckey) {
		return out, ErrInvalidSecretKey
	}

	var p GroupElementJacobian
	ecmultGen(&p, &s)
	s.clear()

	var aff GroupElementAffine
	aff.setGEJ(&p)
	aff.rawBytes(out[:])
	p.clear()
	return out, nil
}

// GenerateKeyPair generates a fresh secret key together with its raw public
// key.
func GenerateKeyPair() (seckey [32]byte, pubkey [64]byte, err error) {
	seckey, err = GenerateSecretKey()
	if err != nil {
		return seckey, pubkey, err
	}
	pubkey, err = PublicKeyFromSecretKey(seckey[:])
	return seckey, pubkey, err
}

// TweakAddSecretKey sets seckey' = seckey + t
// mod n, failing (without modifying seckey) if the result is zero.
func TweakAddSecretKey(seckey []byte, tweak []byte) error {
	if len(seckey) != 32 || len(tweak) != 32 {
		return ErrInvalidInputLength
	}
	var s, t Scalar
	if !s.setB32Seckey(seckey) {
		return ErrInvalidSecretKey
	}
	if t.setB32(tweak) {
		return ErrTweakOutOfRange
	}

	var r Scalar
	r.add(&s, &t)
	if r.isZero() {
		return ErrTweakOutOfRange
	}
	r.b32(seckey)
	s.clear()
	t.clear()
	r.clear()
	return nil
}

// TweakMulSecretKey sets seckey' = seckey * t
// mod n, failing if t is zero.
func TweakMulSecretKey(seckey []byte, tweak []byte) error {
	if len(seckey) != 32 || len(tweak) != 32 {
		return ErrInvalidInputLength
	}
	var s, t Scalar
	if !s.setB32Seckey(seckey) {
		return ErrInvalidSecretKey
	}
	if t.setB32(tweak) {
		return ErrTweakOutOfRange
	}
	if t.isZero() {
		return ErrTweakOutOfRange
	}

	var r Scalar
	r.mul(&s, &t)
	r.b32(seckey)
	s.clear()
	t.clear()
	r.clear()
	return nil
}

// TweakAddPublicKey sets P' = P + t*G, via the
// combined multiply with na=1, failing if the result is infinity.
func TweakAddPublicKey(pubkey64 []byte, tweak []byte) error {
	if len(pubkey64) != 64 || len(tweak) != 32 {
		return ErrInvalidInputLength
	}
	var p GroupElementAffine
	if !p.setRawBytes(pubkey64) {
		return ErrInvalidPublicKey
	}
	var t Scalar
	if t.setB32(tweak) {
		return ErrTweakOutOfRange
	}

	var pJac, result GroupElementJacobian
	pJac.setGE(&p)
	var one Scalar
	one.setInt(1)
	ecmult(&result, &pJac, &one, &t)
	if result.isInfinity() {
		return ErrTweakOutOfRange
	}

	var resAff GroupElementAffine
	resAff.setGEJVar(&result)
	resAff.rawBytes(pubkey64)
	return nil
}

// TweakMulPublicKey sets P' = t*P, via the
// combined multiply with ng=0, failing if t is zero.
func TweakMulPublicKey(pubkey64 []byte, tweak []byte) error {
	if len(pubkey64) != 64 || len(tweak) != 32 {
		return ErrInvalidInputLength
	}
	var p GroupElementAffine
	if !p.setRawBytes(pubkey64) {
		return ErrInvalidPublicKey
	}
	var t Scalar
	if t.setB32(tweak) {
		return ErrTweakOutOfRange
	}
	if t.isZero() {
		return ErrTweakOutOfRange
	}

	var pJac, result GroupElementJacobian
	pJac.setGE(&p)
	var zero Scalar
	ecmult(&result, &pJac, &t, &zero)
	if result.isInfinity() {
		return ErrTweakOutOfRange
	}

	var resAff GroupElementAffine
	resAff.setGEJVar(&result)
	resAff.rawBytes(pubkey64)
	return nil
}

// CombinePublicKeys computes R = sum(P_i),
// failing if the accumulated result is infinity (including the empty-input
// case).
func CombinePublicKeys(pubkeys ...[]byte) ([64]byte, error) {
	var out [64]byte
	var r GroupElementJacobian
	r.setInfinity()
	for _, raw := range pubkeys {
		if len(raw) != 64 {
			return out, ErrInvalidInputLength
		}
		var p GroupElementAffine
		if !p.setRawBytes(raw) {
			return out, ErrInvalidPublicKey
		}
		r.addGEVar(&r, &p, nil)
	}
	if r.isInfinity() {
		return out, ErrTweakOutOfRange
	}
	var aff GroupElementAffine
	aff.setGEJVar(&r)
	aff.rawBytes(out[:])
	return out, nil
}
