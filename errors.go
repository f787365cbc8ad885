package secp256k1

import "errors"

// Error taxonomy for the package's byte-level and cryptographic operations.
// Signing itself never returns one of these for a well-formed secret key and
// message: a nonce that happens to produce r=0 or s=0 is simply discarded
// and the deterministic nonce stream (RFC6979HMACSHA256.Generate) retried.
var (
	ErrInvalidSignature   = errors.New("secp256k1: invalid signature")
	ErrInvalidPublicKey   = errors.New("secp256k1: invalid public key")
	ErrInvalidSecretKey   = errors.New("secp256k1: invalid secret key")
	ErrInvalidRecoveryID  = errors.New("secp256k1: invalid recovery id")
	ErrInvalidMessage     = errors.New("secp256k1: invalid message")
	ErrInvalidInputLength = errors.New("secp256k1: invalid input length")
	ErrTweakOutOfRange    = errors.New("secp256k1: tweak out of range")
)
