package secp256k1

import "encoding/hex"

// GroupElementAffine is a point (x, y) on y^2 = x^3 + 7 over Fp, or the
// point at infinity (the group's neutral element) when infinity is true,
// in which case x and y carry no meaning but must still be safe to clear.
type GroupElementAffine struct {
	x, y     FieldElement
	infinity bool
}

// GroupElementJacobian represents the affine point (X/Z^2, Y/Z^3) via the
// triple (X, Y, Z), avoiding a field inversion on every addition/doubling.
type GroupElementJacobian struct {
	x, y, z  FieldElement
	infinity bool
}

// AffineStorage is the packed x,y pair of FieldStorage used in the two
// precomputed tables (pre_g, prec). It never represents infinity.
type AffineStorage struct {
	x, y FieldStorage
}

// curveB is the curve equation's constant term (y^2 = x^3 + curveB).
var curveB FieldElement

func hexToFieldElement(s string) FieldElement {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("secp256k1: bad hex constant")
	}
	var fe FieldElement
	if !fe.setB32(b) {
		panic("secp256k1: hex constant out of range")
	}
	return fe
}

// Generator is the secp256k1 base point G, in affine form.
var Generator GroupElementAffine

func init() {
	curveB.setInt(7)
	gx := hexToFieldElement("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	gy := hexToFieldElement("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")
	Generator.x = gx
	Generator.y = gy
	Generator.infinity = false
}

// setXY sets the affine point directly from coordinates, without curve
// membership validation.
func (r *GroupElementAffine) setXY(x, y *FieldElement) {
	r.x = *x
	r.y = *y
	r.infinity = false
}

// setXQuad sets x and picks y to be a square root of x^3+7, reporting
// whether one exists (x is on the curve).
func (r *GroupElementAffine) setXQuad(x *FieldElement) bool {
	r.x = *x
	var x2, x3, c FieldElement
	x2.sqr(x)
	x3.mul(&x2, x)
	c.add3(&x3, &curveB)
	ok := r.y.sqrt(&c)
	r.infinity = false
	return ok
}

// add3 is a tiny helper: r = a+b without touching magnitude bookkeeping
// beyond the ordinary add contract (kept private to this file; a and b may
// alias r's eventual receiver through copies, never through pointers into
// r itself).
func (r *FieldElement) add3(a, b *FieldElement) {
	*r = *a
	r.add(b)
}

// setXOVar sets x and picks the root of x^3+7 with the requested oddness,
// variable-time. Returns false if x is not on the curve.
func (r *GroupElementAffine) setXOVar(x *FieldElement, odd bool) bool {
	if !r.setXQuad(x) {
		return false
	}
	r.y.normalizeVar()
	if r.y.isOdd() != odd {
		r.y.negate(&r.y, 1)
		r.y.normalizeVar()
	}
	return true
}

// isInfinity reports whether the point is the neutral element.
func (a *GroupElementAffine) isInfinity() bool { return a.infinity }

// setInfinity sets the affine point to infinity.
func (r *GroupElementAffine) setInfinity() {
	r.infinity = true
	r.x.clear()
	r.y.clear()
}

// isValidVar confirms y^2 = x^3+7 (mod p); variable-time.
func (a *GroupElementAffine) isValidVar() bool {
	if a.infinity {
		return false
	}
	var y2, x2, x3, rhs FieldElement
	y2.sqr(&a.y)
	x2.sqr(&a.x)
	x3.mul(&x2, &a.x)
	rhs.add3(&x3, &curveB)
	y2.normalizeVar()
	rhs.normalizeVar()
	return y2.equal(&rhs)
}

// neg sets r = -a (same x, negated y).
func (r *GroupElementAffine) neg(a *GroupElementAffine) {
	r.x = a.x
	r.y.negate(&a.y, 1)
	r.infinity = a.infinity
}

// clear zeroizes the affine point.
func (r *GroupElementAffine) clear() {
	r.x.clear()
	r.y.clear()
	r.infinity = false
}

// toStorage packs a (non-infinite) affine point into AffineStorage.
func (a *GroupElementAffine) toStorage(r *AffineStorage) {
	xn := a.x
	yn := a.y
	xn.normalize()
	yn.normalize()
	xn.toStorage(&r.x)
	yn.toStorage(&r.y)
}

// fromStorage unpacks an AffineStorage value into an affine point.
func (r *GroupElementAffine) fromStorage(a *AffineStorage) {
	r.x.fromStorage(&a.x)
	r.y.fromStorage(&a.y)
	r.infinity = false
}

// cmov conditionally overwrites r with a, without branching on flag.
func (r *GroupElementAffine) cmov(a *GroupElementAffine, flag bool) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	if flag {
		r.infinity = a.infinity
	}
}

// cmov for AffineStorage (table lookups scan the whole table with this).
func (r *AffineStorage) cmov(a *AffineStorage, flag bool) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
}

// --- Jacobian ---

// setInfinity sets the Jacobian point to infinity.
func (r *GroupElementJacobian) setInfinity() {
	r.infinity = true
	r.x.clear()
	r.y.clear()
	r.z.clear()
}

// isInfinity reports whether the point is the neutral element.
func (a *GroupElementJacobian) isInfinity() bool { return a.infinity }

// setGE sets the Jacobian point to the affine point a (Z=1).
func (r *GroupElementJacobian) setGE(a *GroupElementAffine) {
	r.infinity = a.infinity
	r.x = a.x
	r.y = a.y
	r.z.setInt(1)
}

// clear zeroizes the Jacobian point.
func (r *GroupElementJacobian) clear() {
	r.x.clear()
	r.y.clear()
	r.z.clear()
	r.infinity = false
}

// setGEJ converts from Jacobian to affine using one field inversion.
func (r *GroupElementAffine) setGEJ(a *GroupElementJacobian) {
	if a.infinity {
		r.setInfinity()
		return
	}
	var zInv, zInv2, zInv3 FieldElement
	zInv.inv(&a.z)
	zInv2.sqr(&zInv)
	zInv3.mul(&zInv2, &zInv)
	r.x.mul(&a.x, &zInv2)
	r.y.mul(&a.y, &zInv3)
	r.infinity = false
}

// setGEJVar is the variable-time counterpart (uses invVar).
func (r *GroupElementAffine) setGEJVar(a *GroupElementJacobian) {
	if a.infinity {
		r.setInfinity()
		return
	}
	var zInv, zInv2, zInv3 FieldElement
	zInv.invVar(&a.z)
	zInv2.sqr(&zInv)
	zInv3.mul(&zInv2, &zInv)
	r.x.mul(&a.x, &zInv2)
	r.y.mul(&a.y, &zInv3)
	r.infinity = false
}

// setGEJZinv converts from Jacobian to affine given a precomputed inverse
// of a's Z (used to batch-amortize inversions across a table).
func (r *GroupElementAffine) setGEJZinv(a *GroupElementJacobian, zInv *FieldElement) {
	var zInv2, zInv3 FieldElement
	zInv2.sqr(zInv)
	zInv3.mul(&zInv2, zInv)
	r.x.mul(&a.x, &zInv2)
	r.y.mul(&a.y, &zInv3)
	r.infinity = a.infinity
}

// doubleVar sets r = 2a. If rzr is non-nil it receives the factor by which
// Z grew (r.Z = a.Z * rzr), used by callers tracking a running Z ratio.
func (r *GroupElementJacobian) doubleVar(a *GroupElementJacobian, rzr *FieldElement) {
	if a.infinity {
		r.setInfinity()
		return
	}
	// Standard Jacobian doubling (a=0 curve coefficient, since secp256k1's a=0).
	var t1, t2, t3, t4, t5 FieldElement
	t5.sqr(&a.y)                // y^2
	t1.mul(&a.x, &t5)           // x*y^2
	t1.mulInt(4)                // 4*x*y^2  (=: S)
	t2.sqr(&t5)                 // y^4
	t2.mulInt(8)                // 8*y^4
	t3.sqr(&a.x)                // x^2
	t4.add3(&t3, &t3)
	t4.add(&t3) // 3*x^2  (a=0 so M = 3*x^2)

	if rzr != nil {
		*rzr = a.y
		rzr.normalize()
		rzr.mulInt(2)
	}
	r.z.mul(&a.y, &a.z)
	r.z.mulInt(2)

	var m2, x3 FieldElement
	m2.sqr(&t4)
	x3 = m2
	var twoT1 FieldElement
	twoT1 = t1
	twoT1.mulInt(2)
	twoT1.negate(&twoT1, int(twoT1.magnitude)+1)
	x3.add(&twoT1)
	r.x = x3
	r.x.normalizeWeak()

	var y3, t1mx3 FieldElement
	t1mx3 = t1
	var negx3 FieldElement
	negx3.negate(&r.x, int(r.x.magnitude)+1)
	t1mx3.add(&negx3)
	y3.mul(&t4, &t1mx3)
	var negT2 FieldElement
	negT2.negate(&t2, int(t2.magnitude)+1)
	y3.add(&negT2)
	r.y = y3
	r.y.normalizeWeak()
	r.infinity = false
}

// doubleGE sets r = 2a, constant-time: the same Jacobian doubling formula as
// doubleVar, but without the leading infinity branch. Doubling infinity
// (Z=0) stays at Z=0 through the formula itself, so the infinity flag is
// carried forward as a plain copy rather than decided by a branch. Used by
// ecmult_const, where a may carry secret-dependent infinity state mid-ladder.
func (r *GroupElementJacobian) doubleGE(a *GroupElementJacobian) {
	var t1, t2, t3, t4, t5 FieldElement
	t5.sqr(&a.y)
	t1.mul(&a.x, &t5)
	t1.mulInt(4)
	t2.sqr(&t5)
	t2.mulInt(8)
	t3.sqr(&a.x)
	t4.add3(&t3, &t3)
	t4.add(&t3)

	r.z.mul(&a.y, &a.z)
	r.z.mulInt(2)

	var m2, x3 FieldElement
	m2.sqr(&t4)
	x3 = m2
	var twoT1 FieldElement
	twoT1 = t1
	twoT1.mulInt(2)
	twoT1.negate(&twoT1, int(twoT1.magnitude)+1)
	x3.add(&twoT1)
	r.x = x3
	r.x.normalizeWeak()

	var y3, t1mx3 FieldElement
	t1mx3 = t1
	var negx3 FieldElement
	negx3.negate(&r.x, int(r.x.magnitude)+1)
	t1mx3.add(&negx3)
	y3.mul(&t4, &t1mx3)
	var negT2 FieldElement
	negT2.negate(&t2, int(t2.magnitude)+1)
	y3.add(&negT2)
	r.y = y3
	r.y.normalizeWeak()
	r.infinity = a.infinity
}

// addVar sets r = a+b, variable-time; falls through to doubling when the
// inputs represent the same point. If rzr is non-nil it receives H, so that
// r.Z = a.Z*b.Z*rzr (on the doubling fallthrough it receives doubleVar's
// factor instead, r.Z = a.Z*rzr).
func (r *GroupElementJacobian) addVar(a, b *GroupElementJacobian, rzr *FieldElement) {
	if a.infinity {
		*r = *b
		return
	}
	if b.infinity {
		*r = *a
		return
	}

	var z22, z12, u1, u2, s1, s2, h, i FieldElement
	z22.sqr(&b.z)
	z12.sqr(&a.z)
	u1.mul(&a.x, &z22)
	u2.mul(&b.x, &z12)
	var z23, z13 FieldElement
	z23.mul(&z22, &b.z)
	z13.mul(&z12, &a.z)
	s1.mul(&a.y, &z23)
	s2.mul(&b.y, &z13)

	u1.normalizeWeak()
	u2.normalize()
	if u1.equal(normalizeCopy(&u2)) {
		s1n := s1
		s1n.normalize()
		s2n := s2
		s2n.normalize()
		if s1n.equal(&s2n) {
			r.doubleVar(a, rzr)
		} else {
			r.setInfinity()
		}
		return
	}

	var negu1 FieldElement
	negu1.negate(&u1, int(u1.magnitude)+1)
	h.add3(&u2, &negu1)
	var negs1 FieldElement
	negs1.negate(&s1, int(s1.magnitude)+1)
	i.add3(&s2, &negs1)

	if rzr != nil {
		*rzr = h
		rzr.normalize()
	}

	r.z.mul(&a.z, &b.z)
	r.z.mul(&r.z, &h)

	var h2, h3, u1h2 FieldElement
	h2.sqr(&h)
	h3.mul(&h2, &h)
	u1h2.mul(&u1, &h2)

	var i2, x3 FieldElement
	i2.sqr(&i)
	x3 = i2
	var negH3 FieldElement
	negH3.negate(&h3, int(h3.magnitude)+1)
	x3.add(&negH3)
	var twoU1h2 FieldElement
	twoU1h2 = u1h2
	twoU1h2.mulInt(2)
	var negTwoU1h2 FieldElement
	negTwoU1h2.negate(&twoU1h2, int(twoU1h2.magnitude)+1)
	x3.add(&negTwoU1h2)
	r.x = x3
	r.x.normalizeWeak()

	var y3, u1h2mx3, s1h3 FieldElement
	u1h2mx3 = u1h2
	var negx3b FieldElement
	negx3b.negate(&r.x, int(r.x.magnitude)+1)
	u1h2mx3.add(&negx3b)
	y3.mul(&i, &u1h2mx3)
	s1h3.mul(&s1, &h3)
	var negS1h3 FieldElement
	negS1h3.negate(&s1h3, int(s1h3.magnitude)+1)
	y3.add(&negS1h3)
	r.y = y3
	r.y.normalizeWeak()
	r.infinity = false
}

func normalizeCopy(a *FieldElement) *FieldElement {
	c := *a
	c.normalize()
	return &c
}

// addGE sets r = a+b (Jacobian + affine), constant-time, with explicit
// branch-free handling of the degenerate cases: a at infinity, b at
// infinity, b == a, b == -a. This is the routine used by the fixed-base
// ladder (ecmult_gen) and ecmult_const, where a or b may derive from secret
// scalar material and no data-dependent branch is permitted.
func (r *GroupElementJacobian) addGE(a *GroupElementJacobian, b *GroupElementAffine) {
	var z12, u1, u2, s1, s2, h, i FieldElement
	z12.sqr(&a.z)
	u1 = a.x
	u1.normalizeWeak()
	u2.mul(&b.x, &z12)
	u2.normalizeWeak()
	s1 = a.y
	s1.normalizeWeak()
	var z13 FieldElement
	z13.mul(&z12, &a.z)
	s2.mul(&b.y, &z13)
	s2.normalizeWeak()

	u1n := *normalizeCopy(&u1)
	u2n := *normalizeCopy(&u2)
	s1n := *normalizeCopy(&s1)
	s2n := *normalizeCopy(&s2)

	xEqual := u1n.equal(&u2n)
	yEqual := s1n.equal(&s2n)

	var negu1 FieldElement
	negu1.negate(&u1, int(u1.magnitude)+1)
	h.add3(&u2, &negu1)
	var negs1 FieldElement
	negs1.negate(&s1, int(s1.magnitude)+1)
	i.add3(&s2, &negs1)

	var h2, h3, u1h2 FieldElement
	h2.sqr(&h)
	h3.mul(&h2, &h)
	u1h2.mul(&u1, &h2)

	var rx, ry, rz GroupElementJacobian
	// General case.
	rz.z.mul(&a.z, &h)
	var i2 FieldElement
	i2.sqr(&i)
	rx.x = i2
	var negH3 FieldElement
	negH3.negate(&h3, int(h3.magnitude)+1)
	rx.x.add(&negH3)
	twoU1h2 := u1h2
	twoU1h2.mulInt(2)
	var negTwo FieldElement
	negTwo.negate(&twoU1h2, int(twoU1h2.magnitude)+1)
	rx.x.add(&negTwo)
	rx.x.normalizeWeak()

	var u1h2mx3, s1h3 FieldElement
	u1h2mx3 = u1h2
	var negx3 FieldElement
	negx3.negate(&rx.x, int(rx.x.magnitude)+1)
	u1h2mx3.add(&negx3)
	ry.y.mul(&i, &u1h2mx3)
	s1h3.mul(&s1, &h3)
	var negS1h3 FieldElement
	negS1h3.negate(&s1h3, int(s1h3.magnitude)+1)
	ry.y.add(&negS1h3)
	ry.y.normalizeWeak()

	genResX := rx.x
	genResY := ry.y
	genResZ := rz.z

	// Doubling case result (used when xEqual && yEqual). doubleGE, not
	// doubleVar: a's infinity state may be secret-dependent here (the
	// ecmult_const accumulator), and doubleVar branches on it.
	var dbl GroupElementJacobian
	dbl.doubleGE(a)

	result := *a
	result.x = genResX
	result.y = genResY
	result.z = genResZ
	result.infinity = false

	// a infinite -> result is b (as Jacobian, Z=1).
	var bAsJac GroupElementJacobian
	bAsJac.setGE(b)

	result.cmov(&dbl, xEqual && yEqual)

	var infResult GroupElementJacobian
	infResult.setInfinity()
	result.cmov(&infResult, xEqual && !yEqual)

	result.cmov(&bAsJac, a.infinity)
	result.cmov(a, b.infinity)

	*r = result
}

// cmov conditionally overwrites r with a, without branching on flag.
func (r *GroupElementJacobian) cmov(a *GroupElementJacobian, flag bool) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	r.z.cmov(&a.z, flag)
	if flag {
		r.infinity = a.infinity
	}
}

// addGEVar is the variable-time Jacobian+affine addition.
func (r *GroupElementJacobian) addGEVar(a *GroupElementJacobian, b *GroupElementAffine, rzr *FieldElement) {
	if a.infinity {
		r.setGE(b)
		return
	}
	var bj GroupElementJacobian
	bj.setGE(b)
	r.addVar(a, &bj, rzr)
}

// addZinvVar adds Jacobian a and affine b, given the already-computed
// inverse of b's implicit Z factor (bzinv); ecmult uses it to fold the
// caller-supplied point's table, which shares one deferred common Z, into
// the running sum.
func (r *GroupElementJacobian) addZinvVar(a *GroupElementJacobian, b *GroupElementAffine, bzinv *FieldElement) {
	var bzinv2, bzinv3, bx, by FieldElement
	bzinv2.sqr(bzinv)
	bzinv3.mul(&bzinv2, bzinv)
	bx.mul(&b.x, &bzinv2)
	by.mul(&b.y, &bzinv3)
	var bAff GroupElementAffine
	bAff.x = bx
	bAff.y = by
	bAff.infinity = b.infinity
	r.addGEVar(a, &bAff, nil)
}

// eqXVar checks this.X == x*this.Z^2 without a field inversion;
// variable-time.
func (a *GroupElementJacobian) eqXVar(x *FieldElement) bool {
	var z2, xz2 FieldElement
	z2.sqr(&a.z)
	xz2.mul(x, &z2)
	ax := a.x
	ax.normalizeVar()
	xz2.normalizeVar()
	return ax.equal(&xz2)
}

// rescale replaces (X,Y,Z) with (X*s^2, Y*s^3, Z*s).
func (r *GroupElementJacobian) rescale(s *FieldElement) {
	var s2, s3 FieldElement
	s2.sqr(s)
	s3.mul(&s2, s)
	r.x.mul(&r.x, &s2)
	r.y.mul(&r.y, &s3)
	r.z.mul(&r.z, s)
}

// hasQuadYVar reports whether the affine y-coordinate implied by this
// Jacobian point is a quadratic residue; variable-time.
func (a *GroupElementJacobian) hasQuadYVar() bool {
	if a.infinity {
		return false
	}
	var yz FieldElement
	yz.mul(&a.y, &a.z)
	yz.normalizeVar()
	return yz.isQuadVar()
}

// setTableGEJVar converts a run of Jacobian points sharing incremental Z
// ratios zr (zr[i] = a[i].Z / a[i-1].Z, with zr[0] meaningless) into affine
// points, reusing a single batch inversion across the whole run.
func setTableGEJVar(result []GroupElementAffine, a []GroupElementJacobian, zr []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}
	zs := make([]FieldElement, n)
	zs[0] = a[0].z
	for i := 1; i < n; i++ {
		zs[i].mul(&zs[i-1], &zr[i])
	}
	invs := make([]FieldElement, n)
	invAllVar(invs, zs)
	for i := 0; i < n; i++ {
		result[i].setGEJZinv(&a[i], &invs[i])
	}
}

// rawBytes encodes the affine point as the 64-byte x‖y raw form used at the
// package boundary. Requires the point to not be at infinity.
func (a *GroupElementAffine) rawBytes(out []byte) {
	if a.infinity {
		panic("secp256k1: rawBytes of infinity")
	}
	x := a.x
	y := a.y
	x.normalize()
	y.normalize()
	x.b32(out[:32])
	y.b32(out[32:64])
}

// setRawBytes decodes the 64-byte x‖y raw form, rejecting coordinates that
// are out of range or not on the curve.
func (r *GroupElementAffine) setRawBytes(in []byte) bool {
	var x, y FieldElement
	if !x.setB32(in[:32]) || !y.setB32(in[32:64]) {
		return false
	}
	r.setXY(&x, &y)
	return r.isValidVar()
}

// globalzSetTableGEJ is like setTableGEJVar but also returns the single
// common Z factor the table is expressed against, leaving result in the
// "deferred Z" frame used by the combined multiply's variable-point table.
func globalzSetTableGEJ(result []GroupElementAffine, globalZ *FieldElement, a []GroupElementJacobian, zr []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}
	*globalZ = a[n-1].z
	var zs FieldElement
	zs.setInt(1)
	result[n-1].x = a[n-1].x
	result[n-1].y = a[n-1].y
	result[n-1].infinity = false
	for i := n - 2; i >= 0; i-- {
		zs.mul(&zs, &zr[i+1])
		var zs2, zs3 FieldElement
		zs2.sqr(&zs)
		zs3.mul(&zs2, &zs)
		result[i].x.mul(&a[i].x, &zs2)
		result[i].y.mul(&a[i].y, &zs3)
		result[i].infinity = false
	}
}
