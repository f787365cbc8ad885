package secp256k1

import (
	"math/big"
	"sync"
)

// windowA is the wNAF window width used for the caller-supplied point in a
// combined multiply; windowG is the (much wider) window used for the
// generator, whose odd-multiples table is precomputed once, on first use.
const (
	windowA = 5
	windowG = 16
)

// scalarToBigVar reconstructs the exact integer a scalar represents as a
// math/big value. This is the one place in the package that still goes
// through math/big: computeWNAF's digit extraction is only ever applied to
// na/ng, scalars the combined multiply's callers (signature verification,
// public key recovery) never treat as secret, so the variable-time, heap
// allocating path big.Int implies is not a constant-time or allocation
// concern here the way it would be for the Field/Scalar arithmetic itself.
func scalarToBigVar(s *Scalar) *big.Int {
	v := new(big.Int)
	tmp := new(big.Int)
	for i := 7; i >= 0; i-- {
		tmp.SetUint64(uint64(s.d[i]))
		v.Lsh(v, 32)
		v.Or(v, tmp)
	}
	return v
}

// computeWNAF returns the width-w non-adjacent form of k, least-significant
// digit first: a sequence of signed odd values in [-(2^(w-1)-1),
// 2^(w-1)-1] interleaved with zeroes, at least w digits apart between
// non-zero entries. This is a variable-time routine by construction; wNAF
// digits are only ever derived from non-secret scalars (ecmult's
// caller-supplied point and generator coefficients, never ecmultConst's
// ladder).
func computeWNAF(k *big.Int, w uint) []int32 {
	v := new(big.Int).Set(k)
	limit := int64(1) << w
	half := int64(1) << (w - 1)
	var digits []int32
	for v.Sign() != 0 {
		if v.Bit(0) == 1 {
			m := new(big.Int).And(v, big.NewInt(limit-1)).Int64()
			if m >= half {
				m -= limit
			}
			digits = append(digits, int32(m))
			v.Sub(v, big.NewInt(m))
		} else {
			digits = append(digits, 0)
		}
		v.Rsh(v, 1)
	}
	return digits
}

// oddMultiplesTableVar fills pre[i] with (2i+1)*a for i in [0,len(pre)),
// variable-time, and zr[i] for i>=1 with the ratio pre[i].Z/pre[i-1].Z,
// letting the table be reduced to affine later via one batched inversion
// instead of one inversion per entry (group.go's setTableGEJVar /
// globalzSetTableGEJ). Each addition grows Z by d.Z times the h factor
// addVar reports through rzr (Z3 = Z1*Z2*H), so the recorded ratio is the
// product of the two. zr[0] is meaningless, matching the reduction
// functions' own contract.
func oddMultiplesTableVar(pre []GroupElementJacobian, zr []FieldElement, a *GroupElementJacobian) {
	if len(pre) == 0 {
		return
	}
	var d GroupElementJacobian
	d.doubleVar(a, nil)
	pre[0] = *a
	for i := 1; i < len(pre); i++ {
		pre[i].addVar(&pre[i-1], &d, &zr[i])
		zr[i].mul(&zr[i], &d.z)
	}
}

// oddMultiplesGlobalZVar builds the odd-multiples table of a as affine
// coordinates sharing one deferred common Z factor (globalzSetTableGEJ): no
// inversion happens here at all; the caller inverts the single globalZ once
// and folds it into each use. Each result[i],
// paired with globalZ, is addZinvVar's expected input: a genuine Jacobian
// point (result[i].x, result[i].y, globalZ) expressed as if affine.
func oddMultiplesGlobalZVar(a *GroupElementJacobian, n int) (result []GroupElementAffine, globalZ FieldElement) {
	jac := make([]GroupElementJacobian, n)
	zr := make([]FieldElement, n)
	oddMultiplesTableVar(jac, zr, a)
	result = make([]GroupElementAffine, n)
	globalzSetTableGEJ(result, &globalZ, jac, zr)
	return result, globalZ
}

var preGOnce sync.Once
var preG []GroupElementAffine

// preGTable returns the generator's odd-multiples table
// [1,3,5,...,2^(windowG-1)-1]*G, built once and reused by every combined
// multiply that follows. The table is reduced to true affine via a single
// batched inversion (setTableGEJVar), rather than one inversion per entry.
func preGTable() []GroupElementAffine {
	preGOnce.Do(func() {
		n := 1 << (windowG - 2)
		var gJac GroupElementJacobian
		gJac.setGE(&Generator)
		jac := make([]GroupElementJacobian, n)
		zr := make([]FieldElement, n)
		oddMultiplesTableVar(jac, zr, &gJac)
		preG = make([]GroupElementAffine, n)
		setTableGEJVar(preG, jac, zr)
	})
	return preG
}

// wnafTableLookupVar returns |digit|*a's precomputed table entry, negated
// if digit is negative. It assumes table[i] holds (2i+1)*a.
func wnafTableLookupVar(table []GroupElementAffine, digit int32) GroupElementAffine {
	neg := digit < 0
	if neg {
		digit = -digit
	}
	p := table[(digit-1)/2]
	if neg {
		var n GroupElementAffine
		n.neg(&p)
		return n
	}
	return p
}

// ecmult computes r = na*a + ng*G, the combined variable-time multiply used
// by signature verification and public key recovery (neither na nor ng is
// ever secret in those callers). The caller-supplied point's table is kept
// in the deferred-Z frame described in oddMultiplesGlobalZVar and folded
// into the running sum via addZinvVar, using a single inversion of globalZ
// for the whole table instead of one inversion per lookup.
func ecmult(r *GroupElementJacobian, a *GroupElementJacobian, na, ng *Scalar) {
	tableA, globalZ := oddMultiplesGlobalZVar(a, 1<<(windowA-2))
	var globalZinv FieldElement
	globalZinv.invVar(&globalZ)
	tableG := preGTable()

	wnafA := computeWNAF(scalarToBigVar(na), windowA)
	wnafG := computeWNAF(scalarToBigVar(ng), windowG)

	maxLen := len(wnafA)
	if len(wnafG) > maxLen {
		maxLen = len(wnafG)
	}

	r.setInfinity()
	for i := maxLen - 1; i >= 0; i-- {
		r.doubleVar(r, nil)
		if i < len(wnafA) && wnafA[i] != 0 {
			p := wnafTableLookupVar(tableA, wnafA[i])
			r.addZinvVar(r, &p, &globalZinv)
		}
		if i < len(wnafG) && wnafG[i] != 0 {
			p := wnafTableLookupVar(tableG, wnafG[i])
			r.addGEVar(r, &p, nil)
		}
	}
}

// ecmultConst computes r = q*a for a point a that need not be the
// generator, in constant time: a plain double-and-conditionally-add ladder
// over all 256 bits, selecting between the doubled running sum and its sum
// with a via cmov rather than skipping the addition, so no branch, table
// index, or memory access pattern depends on q's bits. q's bits are read
// through Scalar.bits rather than any big.Int conversion, so nothing about
// q's magnitude (which would govern a big.Int's digit count) is observable
// either. This is the routine ECDH uses, and it must never be replaced by a
// wNAF encoding, which would leak q's Hamming weight and digit positions
// through the table lookups.
func ecmultConst(r *GroupElementJacobian, a *GroupElementAffine, q *Scalar) {
	var acc GroupElementJacobian
	acc.setInfinity()
	for bit := 255; bit >= 0; bit-- {
		acc.doubleGE(&acc)
		var sum GroupElementJacobian
		sum.addGE(&acc, a)
		acc.cmov(&sum, q.bits(uint(bit), 1) == 1)
	}
	*r = acc
}
