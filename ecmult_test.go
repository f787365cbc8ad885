package secp256k1

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestEcmultGenKnownGenerator(t *testing.T) {
	var one Scalar
	one.setInt(1)

	var r GroupElementJacobian
	ecmultGen(&r, &one)

	var aff GroupElementAffine
	aff.setGEJVar(&r)
	aff.x.normalize()
	aff.y.normalize()

	gx, gy := Generator.x, Generator.y
	gx.normalize()
	gy.normalize()

	if !aff.x.equal(&gx) || !aff.y.equal(&gy) {
		t.Error("1*G via ecmultGen must equal the generator exactly")
	}
}

func TestEcmultGenMatchesRepeatedDoubling(t *testing.T) {
	var two Scalar
	two.setInt(2)

	var viaGen GroupElementJacobian
	ecmultGen(&viaGen, &two)

	var jacG GroupElementJacobian
	jacG.setGE(&Generator)
	var viaDouble GroupElementJacobian
	viaDouble.doubleVar(&jacG, nil)

	var a1, a2 GroupElementAffine
	a1.setGEJVar(&viaGen)
	a2.setGEJVar(&viaDouble)
	a1.x.normalize()
	a2.x.normalize()
	if !a1.x.equal(&a2.x) {
		t.Error("2*G via ecmultGen should match G doubled")
	}
}

func TestEcmultCombinedMultiplyAgainstGen(t *testing.T) {
	// na*G + 0*G via the combined multiply (treating G itself as the
	// variable point) must equal na*G via the fixed-base ladder.
	var buf [32]byte
	rand.Read(buf[:])
	var na, zero Scalar
	na.setB32(buf[:])
	if na.isZero() {
		na.setInt(7)
	}

	var jacG, viaCombined GroupElementJacobian
	jacG.setGE(&Generator)
	ecmult(&viaCombined, &jacG, &na, &zero)

	var viaGen GroupElementJacobian
	ecmultGen(&viaGen, &na)

	var a1, a2 GroupElementAffine
	a1.setGEJVar(&viaCombined)
	a2.setGEJVar(&viaGen)
	a1.x.normalize()
	a2.x.normalize()
	a1.y.normalize()
	a2.y.normalize()
	if !a1.x.equal(&a2.x) || !a1.y.equal(&a2.y) {
		t.Error("combined multiply na*G+0*G should equal ecmultGen(na)")
	}
}

func TestEcmultConstAgreesWithCombined(t *testing.T) {
	var buf [32]byte
	rand.Read(buf[:])
	var k Scalar
	k.setB32(buf[:])
	if k.isZero() {
		k.setInt(9)
	}

	var viaConst GroupElementJacobian
	ecmultConst(&viaConst, &Generator, &k)

	var zero Scalar
	var jacG, viaCombined GroupElementJacobian
	jacG.setGE(&Generator)
	ecmult(&viaCombined, &jacG, &k, &zero)

	var a1, a2 GroupElementAffine
	a1.setGEJVar(&viaConst)
	a2.setGEJVar(&viaCombined)
	a1.x.normalize()
	a2.x.normalize()
	if !a1.x.equal(&a2.x) {
		t.Error("ecmultConst should agree with the combined multiply for k*G")
	}
}

func TestComputeWNAFReconstructsScalar(t *testing.T) {
	k := big.NewInt(987654321)
	wnaf := computeWNAF(k, windowA)

	// wnaf[i] is the coefficient of 2^i, so k = sum(wnaf[i] * 2^i).
	got := big.NewInt(0)
	pow := big.NewInt(1)
	for i := 0; i < len(wnaf); i++ {
		if wnaf[i] != 0 {
			term := new(big.Int).Mul(big.NewInt(int64(wnaf[i])), pow)
			got.Add(got, term)
		}
		pow.Lsh(pow, 1)
	}
	if got.Cmp(k) != 0 {
		t.Errorf("wNAF reconstruction mismatch: got %s want %s", got.String(), k.String())
	}
}
