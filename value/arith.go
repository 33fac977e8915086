package value

import "math"

// Add returns va + vb under interval semantics.
func Add(va, vb Value) Value {
	if va.IsUndefined() || vb.IsUndefined() {
		return Undef()
	}

	return Range(va.L+vb.L, va.U+vb.U)
}

// Sub returns va − vb under interval semantics.
func Sub(va, vb Value) Value {
	if va.IsUndefined() || vb.IsUndefined() {
		return Undef()
	}

	return Range(va.L-vb.U, va.U-vb.L)
}

// Mul returns va · vb under interval semantics (hull of the four endpoint
// products).
func Mul(va, vb Value) Value {
	if va.IsUndefined() || vb.IsUndefined() {
		return Undef()
	}
	p1 := va.L * vb.L
	p2 := va.L * vb.U
	p3 := va.U * vb.L
	p4 := va.U * vb.U

	return Range(min4(p1, p2, p3, p4), max4(p1, p2, p3, p4))
}

// Div returns va / vb under interval semantics. A divisor whose range
// contains zero yields Undefined.
func Div(va, vb Value) Value {
	if va.IsUndefined() || vb.IsUndefined() {
		return Undef()
	}
	if vb.L <= 0 && vb.U >= 0 {
		return Undef()
	}
	q1 := va.L / vb.L
	q2 := va.L / vb.U
	q3 := va.U / vb.L
	q4 := va.U / vb.U

	return Range(min4(q1, q2, q3, q4), max4(q1, q2, q3, q4))
}

// Pow returns v raised to the power p. Integer exponents honor even-power
// symmetry (a range straddling zero has lower bound zero); fractional
// exponents require a non-negative base and yield Undefined otherwise.
func Pow(v Value, p float64) Value {
	if v.IsUndefined() {
		return Undef()
	}

	// Integer exponent: handle sign symmetry exactly.
	if p == math.Trunc(p) {
		n := int(p)
		if n == 0 {
			return Exact(1)
		}
		pl := math.Pow(v.L, p)
		pu := math.Pow(v.U, p)
		if n%2 == 0 && v.L < 0 && v.U > 0 {
			// Even power over a straddling range touches zero.
			return Range(0, math.Max(pl, pu))
		}

		return Range(math.Min(pl, pu), math.Max(pl, pu))
	}

	// Fractional exponent: real-valued only for non-negative bases.
	if v.L < 0 {
		return Undef()
	}

	return Range(math.Pow(v.L, p), math.Pow(v.U, p))
}

// Scal returns v scaled by the scalar s.
func Scal(v Value, s float64) Value {
	if v.IsUndefined() {
		return Undef()
	}
	if s < 0 {
		return Range(v.U*s, v.L*s)
	}

	return Range(v.L*s, v.U*s)
}

// Bound intersects v with the bounding value b. An empty intersection
// yields Undefined. When either operand is undefined the other is returned
// unchanged.
func Bound(v, b Value) Value {
	if v.IsUndefined() {
		return b
	}
	if b.IsUndefined() {
		return v
	}
	l := math.Max(v.L, b.L)
	u := math.Min(v.U, b.U)
	if l > u {
		return Undef()
	}

	return Range(l, u)
}

func min4(a, b, c, d float64) float64 {
	return math.Min(math.Min(a, b), math.Min(c, d))
}

func max4(a, b, c, d float64) float64 {
	return math.Max(math.Max(a, b), math.Max(c, d))
}
