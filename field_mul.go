package secp256k1

// fieldPWords is the secp256k1 field prime p = 2^256 - 2^32 - 977, as a
// words256 constant (cross-checked against fieldPLimbs: fieldPWords[0] mod
// 2^26 == fieldPLimbs[0]).
var fieldPWords = words256{
	0xFFFFFC2F, 0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF,
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
}

// mul sets r = a*b mod p, via an exact 512-bit schoolbook product (copies of
// a and b are normalized first, so the product is taken on canonical <p
// inputs) reduced by constant-time binary long division against p
// (bignum.go). Aliasing r with a or b is safe: a and b are copied to local
// values before r is ever written.
func (r *FieldElement) mul(a, b *FieldElement) {
	an := *a
	bn := *b
	an.normalize()
	bn.normalize()
	aw := fieldToWords(&an)
	bw := fieldToWords(&bn)
	product := mulWords256(&aw, &bw)
	rw := reduceWide512Mod(&product, &fieldPWords)
	*r = fieldFromWords(&rw)
}

// sqr sets r = a^2 mod p.
func (r *FieldElement) sqr(a *FieldElement) {
	r.mul(a, a)
}

// fieldPMinus2Words is the Fermat exponent a^(p-2) = a^-1 mod p.
var fieldPMinus2Words = func() words256 {
	diff, _ := subWords256(&fieldPWords, &words256{2})
	return diff
}()

// fieldPPlus1Over4Words is the exponent used for sqrt, valid because p = 3
// mod 4.
var fieldPPlus1Over4Words = func() words256 {
	sum, _ := addWords256(&fieldPWords, &words256{1})
	return shiftRightWords256(&sum, 2)
}()

// fieldPMinus1Over2Words is the Euler-criterion exponent used by isQuadVar.
var fieldPMinus1Over2Words = func() words256 {
	diff, _ := subWords256(&fieldPWords, &words256{1})
	return shiftRightWords256(&diff, 1)
}()

// fieldPow sets result = base^exp mod p via a fixed-length, left-to-right
// square-and-multiply ladder over all 256 bits of exp. exp is always one of
// this package's public constants (p-2, (p+1)/4, (p-1)/2), never a secret
// value, so the multiply-or-not branch on each bit never depends on the
// secret base.
func fieldPow(base *FieldElement, exp *words256) FieldElement {
	var result FieldElement
	result.setInt(1)
	b := *base
	b.normalize()
	for bit := 255; bit >= 0; bit-- {
		var sq FieldElement
		sq.sqr(&result)
		result = sq
		if (exp[bit/32]>>(uint(bit)%32))&1 == 1 {
			var m FieldElement
			m.mul(&result, &b)
			result = m
		}
	}
	return result
}

// inv sets r = x^-1 mod p via Fermat's little theorem (x^(p-2)).
func (r *FieldElement) inv(x *FieldElement) {
	*r = fieldPow(x, &fieldPMinus2Words)
}

// invVar is the variable-time counterpart; it short-circuits on zero.
func (r *FieldElement) invVar(x *FieldElement) {
	xn := *x
	xn.normalize()
	if xn.isZero() {
		r.setInt(0)
		return
	}
	r.inv(x)
}

// sqrt computes r = sqrt(a) via exponentiation by (p+1)/4 and reports
// whether a is a quadratic residue, checked by squaring the candidate root.
func (r *FieldElement) sqrt(a *FieldElement) bool {
	*r = fieldPow(a, &fieldPPlus1Over4Words)
	var check FieldElement
	check.sqr(r)
	check.normalize()
	an := *a
	an.normalize()
	return check.equal(&an)
}

// isQuadVar reports whether a is a quadratic residue mod p via the Euler
// criterion a^((p-1)/2) == 1; variable-time.
func (a *FieldElement) isQuadVar() bool {
	res := fieldPow(a, &fieldPMinus1Over2Words)
	var one FieldElement
	one.setInt(1)
	return res.equal(&one)
}

// FieldStorage is the packed, byte-aligned variant used only for
// precomputed tables: eight 32-bit words holding a canonical normalized
// value. It round-trips with FieldElement via toStorage/fromStorage.
type FieldStorage struct {
	n [8]uint32
}

// toStorage packs a normalized field element into its storage form.
func (a *FieldElement) toStorage(r *FieldStorage) {
	if !a.normalized {
		panic("field: toStorage requires a normalized element")
	}
	var b [32]byte
	a.b32(b[:])
	for i := 0; i < 8; i++ {
		r.n[i] = uint32(b[i*4])<<24 | uint32(b[i*4+1])<<16 | uint32(b[i*4+2])<<8 | uint32(b[i*4+3])
	}
}

// fromStorage unpacks a storage value back into a normalized field element.
// Storage values are always produced from an already-reduced FieldElement,
// so the decode always succeeds.
func (r *FieldElement) fromStorage(a *FieldStorage) {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[i*4] = byte(a.n[i] >> 24)
		b[i*4+1] = byte(a.n[i] >> 16)
		b[i*4+2] = byte(a.n[i] >> 8)
		b[i*4+3] = byte(a.n[i])
	}
	r.setB32(b[:])
}

// cmov conditionally overwrites r with a, without branching on flag.
func (r *FieldStorage) cmov(a *FieldStorage, flag bool) {
	var mask uint32
	if flag {
		mask = 0xFFFFFFFF
	}
	for i := range r.n {
		r.n[i] = (r.n[i] &^ mask) | (a.n[i] & mask)
	}
}

// invAllVar computes the modular inverse of every element of a, using
// Montgomery's trick: one inversion plus 3(n-1) multiplications, writing
// results into out (which may not alias a).
func invAllVar(out, a []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}
	prefix := make([]FieldElement, n)
	prefix[0] = a[0]
	prefix[0].normalize()
	for i := 1; i < n; i++ {
		ai := a[i]
		ai.normalize()
		prefix[i].mul(&prefix[i-1], &ai)
		prefix[i].normalize()
	}

	var totalInv FieldElement
	totalInv.invVar(&prefix[n-1])

	acc := totalInv
	for i := n - 1; i > 0; i-- {
		ai := a[i]
		ai.normalize()
		out[i].mul(&acc, &prefix[i-1])
		out[i].normalize()
		acc.mul(&acc, &ai)
		acc.normalize()
	}
	out[0] = acc
}
