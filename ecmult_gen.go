package secp256k1

import "sync"

// ladderWindow is the nibble width of the fixed-base table: the 256-bit
// generator coefficient is split into 64 four-bit digits, one per table
// row.
const ladderWindow = 4

// ecmultGenPrec[j][i] holds i*16^j*G + offset_j, for j in [0,64) and i in
// [0,16). offset_j (a multiple of a nothing-up-my-sleeve point) keeps every
// table entry away from the point at infinity, so the hot-path lookup can
// use a plain, branch-free cmov scan instead of special-casing i=0.
var ecmultGenPrec [64][16]AffineStorage

// ecmultGenInitial is added back after the ladder to cancel both the
// accumulated per-row offsets and the scalar blind (see ecmultGen).
var ecmultGenInitial GroupElementAffine

// ecmultGenBlind is added to the coefficient before splitting it into
// table digits, so the ladder never walks the secret scalar's bits
// directly into the table-index stream; it is derived once, on the first
// ecmultGen call, and is not itself secret-sensitive once ecmultGenInitial
// has absorbed it.
var ecmultGenBlind Scalar

var ecmultGenOnce sync.Once

// numsBasePoint returns a nothing-up-my-sleeve point used to offset every table row
// away from infinity: the x-coordinate candidates are SHA256 iterates of a
// fixed domain string, the first one landing on the curve is kept.
func numsBasePoint() GroupElementAffine {
	seed := []byte("secp256k1 fixed-base table offset")
	var h [32]byte
	hasher := NewSHA256()
	hasher.Write(seed)
	hasher.Finalize(h[:])
	for {
		var fe FieldElement
		fe.setB32Mod(h[:])
		var p GroupElementAffine
		if p.setXOVar(&fe, false) {
			return p
		}
		hasher = NewSHA256()
		hasher.Write(h[:])
		hasher.Finalize(h[:])
	}
}

func buildEcmultGenTable() {
	nums := numsBasePoint()

	var gJac, numsJac GroupElementJacobian
	gJac.setGE(&Generator)
	numsJac.setGE(&nums)

	var totalOffset GroupElementJacobian
	totalOffset.setInfinity()

	for j := 0; j < 64; j++ {
		var rowG GroupElementAffine
		rowG.setGEJVar(&gJac)

		var offsetAff GroupElementAffine
		offsetAff.setGEJVar(&numsJac)
		offsetAff.toStorage(&ecmultGenPrec[j][0])

		cur := numsJac
		for i := 1; i < 16; i++ {
			cur.addGEVar(&cur, &rowG, nil)
			var a GroupElementAffine
			a.setGEJVar(&cur)
			a.toStorage(&ecmultGenPrec[j][i])
		}

		totalOffset.addVar(&totalOffset, &numsJac, nil)

		for k := 0; k < ladderWindow; k++ {
			gJac.doubleVar(&gJac, nil)
			numsJac.doubleVar(&numsJac, nil)
		}
	}

	var seedBlind [32]byte
	blindHasher := NewSHA256()
	blindHasher.Write([]byte("secp256k1 fixed-base ladder blind"))
	blindHasher.Finalize(seedBlind[:])
	ecmultGenBlind.setB32(seedBlind[:])

	var blindG GroupElementJacobian
	ecmultConst(&blindG, &Generator, &ecmultGenBlind)

	var correction GroupElementJacobian
	correction.addVar(&totalOffset, &blindG, nil)
	var correctionAff GroupElementAffine
	correctionAff.setGEJVar(&correction)
	ecmultGenInitial.neg(&correctionAff)
}

// ecmultGen computes r = gn*G using the precomputed fixed-base ladder: gn
// is blinded, split into 64 four-bit digits, each digit selects (via
// constant-time cmov, never a branch) one of 16 table entries per row, and
// the running sum is corrected at the end by the public initial point.
func ecmultGen(r *GroupElementJacobian, gn *Scalar) {
	ecmultGenOnce.Do(buildEcmultGenTable)

	var blinded Scalar
	blinded.add(gn, &ecmultGenBlind)

	var acc GroupElementJacobian
	acc.setInfinity()
	var aff GroupElementAffine
	for j := 0; j < 64; j++ {
		digit := blinded.bits(uint(j*ladderWindow), ladderWindow)
		var entry AffineStorage
		for i := 0; i < 16; i++ {
			entry.cmov(&ecmultGenPrec[j][i], uint32(i) == digit)
		}
		aff.fromStorage(&entry)
		if j == 0 {
			acc.setGE(&aff)
		} else {
			acc.addGE(&acc, &aff)
		}
	}

	// The correction itself must stay on the constant-time addition path:
	// acc is derived from the (blinded) secret coefficient.
	acc.addGE(&acc, &ecmultGenInitial)
	*r = acc

	blinded.clear()
	aff.clear()
	acc.clear()
}
