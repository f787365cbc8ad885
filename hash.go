package secp256k1

import (
	"crypto/sha256"
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
)

// memclear overwrites n bytes starting at ptr with zero, used to scrub
// secret material (hash/HMAC state, nonce buffers) once it is no longer
// needed.
func memclear(ptr unsafe.Pointer, n uintptr) {
	b := unsafe.Slice((*byte)(ptr), n)
	for i := range b {
		b[i] = 0
	}
}

// SHA256 wraps a SHA-256 hash context, backed by the AVX2/SHA-NI accelerated
// implementation rather than crypto/sha256's generic one.
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context.
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write feeds data into the hash.
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize writes the 32-byte digest to out32.
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("secp256k1: sha256 output buffer must be 32 bytes")
	}
	sum := h.hasher.Sum(nil)
	copy(out32, sum)
}

// Clear zeroizes the hash context.
func (h *SHA256) Clear() {
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// HMACSHA256 is an HMAC-SHA256 context, built manually (inner/outer SHA256
// contexts with padded, XOR'd key) rather than via crypto/hmac, so that its
// state can be scrubbed the same way the rest of the nonce-generation
// pipeline is.
type HMACSHA256 struct {
	inner, outer SHA256
}

// NewHMACSHA256 creates a new HMAC-SHA256 context with the given key.
func NewHMACSHA256(key []byte) *HMACSHA256 {
	h := &HMACSHA256{}

	var rkey [64]byte
	if len(key) <= 64 {
		copy(rkey[:], key)
	} else {
		sum := sha256.Sum256(key)
		copy(rkey[:32], sum[:])
	}

	var okey, ikey [64]byte
	for i := 0; i < 64; i++ {
		okey[i] = rkey[i] ^ 0x5c
		ikey[i] = rkey[i] ^ 0x36
	}

	h.outer = SHA256{hasher: sha256simd.New()}
	h.outer.Write(okey[:])
	h.inner = SHA256{hasher: sha256simd.New()}
	h.inner.Write(ikey[:])

	memclear(unsafe.Pointer(&rkey), unsafe.Sizeof(rkey))
	memclear(unsafe.Pointer(&okey), unsafe.Sizeof(okey))
	memclear(unsafe.Pointer(&ikey), unsafe.Sizeof(ikey))
	return h
}

// Write feeds data into the inner hash.
func (h *HMACSHA256) Write(data []byte) {
	h.inner.Write(data)
}

// Finalize writes the 32-byte HMAC result to out32.
func (h *HMACSHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("secp256k1: hmac output buffer must be 32 bytes")
	}
	var temp [32]byte
	h.inner.Finalize(temp[:])
	h.outer.Write(temp[:])
	h.outer.Finalize(out32)
	memclear(unsafe.Pointer(&temp), unsafe.Sizeof(temp))
}

// Clear zeroizes both inner and outer hash state.
func (h *HMACSHA256) Clear() {
	h.inner.Clear()
	h.outer.Clear()
}

// RFC6979HMACSHA256 implements the deterministic nonce generator from RFC
// 6979 section 3.2, steps b through h.
type RFC6979HMACSHA256 struct {
	v, k  [32]byte
	retry bool
}

// NewRFC6979HMACSHA256 seeds a generator from key, which the caller builds
// as the RFC 6979 "message": the secret scalar bytes concatenated with the
// hashed-message bytes (and any extra entropy), per the signing layer.
func NewRFC6979HMACSHA256(key []byte) *RFC6979HMACSHA256 {
	rng := &RFC6979HMACSHA256{}
	for i := range rng.v {
		rng.v[i] = 0x01
	}
	for i := range rng.k {
		rng.k[i] = 0x00
	}

	hmac := NewHMACSHA256(rng.k[:])
	hmac.Write(rng.v[:])
	hmac.Write([]byte{0x00})
	hmac.Write(key)
	hmac.Finalize(rng.k[:])
	hmac.Clear()

	hmac = NewHMACSHA256(rng.k[:])
	hmac.Write(rng.v[:])
	hmac.Finalize(rng.v[:])
	hmac.Clear()

	hmac = NewHMACSHA256(rng.k[:])
	hmac.Write(rng.v[:])
	hmac.Write([]byte{0x01})
	hmac.Write(key)
	hmac.Finalize(rng.k[:])
	hmac.Clear()

	hmac = NewHMACSHA256(rng.k[:])
	hmac.Write(rng.v[:])
	hmac.Finalize(rng.v[:])
	hmac.Clear()

	return rng
}

// Generate writes len(out) pseudorandom bytes, applying the 3.2.h retry
// step (rekeying on K and V with a 0x00 byte) whenever this isn't the first
// call.
func (rng *RFC6979HMACSHA256) Generate(out []byte) {
	if rng.retry {
		hmac := NewHMACSHA256(rng.k[:])
		hmac.Write(rng.v[:])
		hmac.Write([]byte{0x00})
		hmac.Finalize(rng.k[:])
		hmac.Clear()

		hmac = NewHMACSHA256(rng.k[:])
		hmac.Write(rng.v[:])
		hmac.Finalize(rng.v[:])
		hmac.Clear()
	}

	remaining := out
	for len(remaining) > 0 {
		hmac := NewHMACSHA256(rng.k[:])
		hmac.Write(rng.v[:])
		hmac.Finalize(rng.v[:])
		hmac.Clear()

		n := len(remaining)
		if n > 32 {
			n = 32
		}
		copy(remaining, rng.v[:n])
		remaining = remaining[n:]
	}
	rng.retry = true
}

// Clear zeroizes the generator's state.
func (rng *RFC6979HMACSHA256) Clear() {
	memclear(unsafe.Pointer(rng), unsafe.Sizeof(*rng))
}
