package secp256k1

import "testing"

func TestGenerateKeyPairIsValid(t *testing.T) {
	sec, pub, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if !SecretKeyVerify(sec[:]) {
		t.Error("generated secret key should be valid")
	}
	var p GroupElementAffine
	if !p.setRawBytes(pub[:]) {
		t.Error("generated public key should decode to a valid curve point")
	}
}

func TestSecretKeyVerifyRejectsZeroAndOverflow(t *testing.T) {
	var zero [32]byte
	if SecretKeyVerify(zero[:]) {
		t.Error("zero must not be a valid secret key")
	}

	nBytes := [32]byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
		0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
	}
	if SecretKeyVerify(nBytes[:]) {
		t.Error("n must not be a valid secret key")
	}
}

func TestTweakedKeyConsistency(t *testing.T) {
	var d [32]byte
	d[31] = 1
	var tweak [32]byte
	tweak[31] = 2

	pubD, err := PublicKeyFromSecretKey(d[:])
	if err != nil {
		t.Fatal(err)
	}
	if err := TweakAddPublicKey(pubD[:], tweak[:]); err != nil {
		t.Fatalf("TweakAddPublicKey: %v", err)
	}

	var dPlusT Scalar
	var dS, tS Scalar
	dS.setB32(d[:])
	tS.setB32(tweak[:])
	dPlusT.add(&dS, &tS)
	var dPlusTBytes [32]byte
	dPlusT.b32(dPlusTBytes[:])

	pubDPlusT, err := PublicKeyFromSecretKey(dPlusTBytes[:])
	if err != nil {
		t.Fatal(err)
	}

	if pubD != pubDPlusT {
		t.Errorf("pubkey(d).tweak_add(t) should equal pubkey(d+t mod n): got %x want %x", pubD, pubDPlusT)
	}
}

func TestTweakAddSecretKeyMatchesScalarAdd(t *testing.T) {
	var d [32]byte
	d[31] = 5
	var tweak [32]byte
	tweak[31] = 9

	got := d
	if err := TweakAddSecretKey(got[:], tweak[:]); err != nil {
		t.Fatalf("TweakAddSecretKey: %v", err)
	}

	var dS, tS, sum Scalar
	dS.setB32(d[:])
	tS.setB32(tweak[:])
	sum.add(&dS, &tS)
	var want [32]byte
	sum.b32(want[:])

	if got != want {
		t.Errorf("TweakAddSecretKey mismatch: got %x want %x", got, want)
	}
}

func TestCombinePublicKeysMatchesPairwiseAdd(t *testing.T) {
	var d1, d2 [32]byte
	d1[31] = 3
	d2[31] = 11

	pub1, _ := PublicKeyFromSecretKey(d1[:])
	pub2, _ := PublicKeyFromSecretKey(d2[:])

	combined, err := CombinePublicKeys(pub1[:], pub2[:])
	if err != nil {
		t.Fatalf("CombinePublicKeys: %v", err)
	}

	var d1PlusD2 Scalar
	var s1, s2 Scalar
	s1.setB32(d1[:])
	s2.setB32(d2[:])
	d1PlusD2.add(&s1, &s2)
	var sumBytes [32]byte
	d1PlusD2.b32(sumBytes[:])

	want, err := PublicKeyFromSecretKey(sumBytes[:])
	if err != nil {
		t.Fatal(err)
	}

	if combined != want {
		t.Errorf("CombinePublicKeys(pub(d1),pub(d2)) should equal pub(d1+d2): got %x want %x", combined, want)
	}
}

func TestCombinePublicKeysEmptyIsRejected(t *testing.T) {
	if _, err := CombinePublicKeys(); err == nil {
		t.Error("combining zero keys should fail (result is infinity)")
	}
}
