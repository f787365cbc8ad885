package secp256k1

import (
	"unsafe"
)

// pMinusNWords is p - n, the threshold below which r+n is still tried as a
// candidate x-coordinate during verification and recovery. The comparison
// direction is x < p-n, never x >= p-n.
var pMinusNWords = func() words256 {
	diff, _ := subWords256(&fieldPWords, &scalarNLimbs)
	return diff
}()

// signRaw: given a secret scalar, a message scalar, and a
// caller-supplied nonce scalar, produce (r, s, recid). ok is false when the
// nonce must be discarded and another one requested from the deterministic
// stream (r == 0 or s == 0); it is never a caller error.
func signRaw(secret, message, nonce *Scalar) (r, s Scalar, recid int, ok bool) {
	var rp GroupElementJacobian
	ecmultGen(&rp, nonce)

	var rAff GroupElementAffine
	rAff.setGEJ(&rp)
	rAff.x.normalize()
	rAff.y.normalize()

	var rBytes [32]byte
	rAff.x.b32(rBytes[:])
	overflow := r.setB32(rBytes[:])
	if r.isZero() {
		return r, s, 0, false
	}

	recid = 0
	if rAff.y.isOdd() {
		recid |= 1
	}
	if overflow {
		recid |= 2
	}

	var rd Scalar
	rd.mul(&r, secret)
	var num Scalar
	num.add(&rd, message)

	var nonceInv Scalar
	nonceInv.inv(nonce)
	s.mul(&nonceInv, &num)
	nonceInv.clear()
	rd.clear()
	num.clear()

	if s.isZero() {
		return r, s, 0, false
	}

	if s.isHigh() {
		var negS Scalar
		negS.negate(&s)
		s = negS
		recid ^= 1
	}

	return r, s, recid, true
}

// sign produces a low-S ECDSA signature over msg32 using secretKey, pulling
// nonces from an RFC 6979 stream seeded with secretKey‖msg32 until one
// yields a non-retry result; signing never surfaces a scalar-level error
// to the caller. Returns the signature as 32-byte r and s plus
// a 0..3 recovery id.
func sign(secretKey, msg32 []byte) (r, s [32]byte, recid int, err error) {
	if len(secretKey) != 32 {
		return r, s, 0, ErrInvalidSecretKey
	}
	var secret Scalar
	if !secret.setB32Seckey(secretKey) {
		return r, s, 0, ErrInvalidSecretKey
	}

	var message Scalar
	message.setB32(msg32)

	seed := make([]byte, 64)
	copy(seed[:32], secretKey)
	copy(seed[32:], msg32)
	rng := NewRFC6979HMACSHA256(seed)
	memclear(unsafe.Pointer(&seed[0]), 64)

	for {
		var nonceBytes [32]byte
		rng.Generate(nonceBytes[:])

		var nonce Scalar
		if !nonce.setB32Seckey(nonceBytes[:]) {
			nonce.clear()
			memclear(unsafe.Pointer(&nonceBytes[0]), 32)
			continue
		}

		rv, sv, rid, ok := signRaw(&secret, &message, &nonce)
		nonce.clear()
		memclear(unsafe.Pointer(&nonceBytes[0]), 32)
		if !ok {
			continue
		}

		rv.b32(r[:])
		sv.b32(s[:])
		recid = rid
		break
	}

	rng.Clear()
	secret.clear()
	message.clear()
	return r, s, recid, nil
}

// verifyRaw: r and s are the signature scalars, pub the
// signer's public point (already validated as on-curve, non-infinite), and
// message the hashed-message scalar.
func verifyRaw(r, s *Scalar, pub *GroupElementAffine, message *Scalar) bool {
	if r.isZero() || s.isZero() {
		return false
	}

	var sInv Scalar
	sInv.invVar(s)

	var u1, u2 Scalar
	u1.mul(&sInv, message)
	u2.mul(&sInv, r)

	var pubJac, p GroupElementJacobian
	pubJac.setGE(pub)
	ecmult(&p, &pubJac, &u2, &u1)

	if p.isInfinity() {
		return false
	}

	var rBytes [32]byte
	r.b32(rBytes[:])
	var rField FieldElement
	if !rField.setB32(rBytes[:]) {
		return false
	}
	if p.eqXVar(&rField) {
		return true
	}

	if wordsLess(&r.d, &pMinusNWords) {
		sum, _ := addWords256(&r.d, &scalarNLimbs)
		var rpnBytes [32]byte
		wordsToBytesBE(&sum, rpnBytes[:])
		var rPlusN FieldElement
		if rPlusN.setB32(rpnBytes[:]) && p.eqXVar(&rPlusN) {
			return true
		}
	}
	return false
}

// verify reports whether the compact (r‖s) signature sig64 is valid over
// msg32 under the 64-byte raw public key pubkey64.
func verify(sig64 [64]byte, msg32 []byte, pubkey64 []byte) bool {
	var r, s Scalar
	r.setB32(sig64[:32])
	s.setB32(sig64[32:])

	var pub GroupElementAffine
	if !pub.setRawBytes(pubkey64) {
		return false
	}

	var message Scalar
	message.setB32(msg32)

	return verifyRaw(&r, &s, &pub, &message)
}

// recoverRaw reconstructs the public key a signature was produced under.
func recoverRaw(r, s *Scalar, recid int, message *Scalar) (GroupElementAffine, bool) {
	var pub GroupElementAffine
	if recid < 0 || recid > 3 {
		return pub, false
	}

	xw := r.d
	if recid&2 != 0 {
		var carry uint32
		xw, carry = addWords256(&xw, &scalarNLimbs)
		if carry != 0 {
			return pub, false
		}
	}
	if !wordsLess(&xw, &fieldPWords) {
		return pub, false
	}

	var xBytes [32]byte
	wordsToBytesBE(&xw, xBytes[:])

	var xField FieldElement
	if !xField.setB32(xBytes[:]) {
		return pub, false
	}

	var xPoint GroupElementAffine
	if !xPoint.setXOVar(&xField, recid&1 != 0) {
		return pub, false
	}

	var rInv Scalar
	rInv.invVar(r)

	var negMessage Scalar
	negMessage.negate(message)

	// Q = r^-1 * (s*X - m*G): one combined multiply (na=s against X, ng=-m)
	// builds s*X - m*G, and a second (na=r^-1 against that point, ng=0)
	// scales it by r^-1.
	var xJac, sXminusMG GroupElementJacobian
	xJac.setGE(&xPoint)
	ecmult(&sXminusMG, &xJac, s, &negMessage)

	if sXminusMG.isInfinity() {
		return pub, false
	}

	var q GroupElementJacobian
	var zero Scalar
	ecmult(&q, &sXminusMG, &rInv, &zero)

	if q.isInfinity() {
		return pub, false
	}
	pub.setGEJVar(&q)
	return pub, true
}

// recover produces the 64-byte raw public key that would have produced the
// given compact signature and recovery id over msg32.
func recover(sig64 [64]byte, recid int, msg32 []byte) ([64]byte, error) {
	var out [64]byte
	var r, s Scalar
	r.setB32(sig64[:32])
	s.setB32(sig64[32:])
	if r.isZero() || s.isZero() {
		return out, ErrInvalidSignature
	}

	var message Scalar
	message.setB32(msg32)

	pub, ok := recoverRaw(&r, &s, recid, &message)
	if !ok {
		return out, ErrInvalidPublicKey
	}
	pub.rawBytes(out[:])
	return out, nil
}
