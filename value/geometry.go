package value

import "math"

// DistancesToAngle computes the angle at vertex 0 of the triangle with side
// lengths d01, d02 and d12, by the law of cosines. Scalar fast path.
func DistancesToAngle(d01, d02, d12 float64) (float64, error) {
	c := (d01*d01 + d02*d02 - d12*d12) / (2 * d01 * d02)
	c, err := clampDomain(c)
	if err != nil {
		return 0, err
	}

	return math.Acos(c), nil
}

// DistancesToDihedral computes the unsigned dihedral angle between the
// planes (0,1,2) and (1,2,3) from the six pairwise distances. Scalar fast
// path; the result lies in [0,π].
func DistancesToDihedral(d01, d02, d03, d12, d13, d23 float64) (float64, error) {
	c, err := dihedralCosine(d01, d02, d03, d12, d13, d23)
	if err != nil {
		return 0, err
	}

	return math.Acos(c), nil
}

// dihedralCosine evaluates cos ω via the Gram-form closed expression
//
//	cos ω = (g1·g2 − g3·d12²) / (‖n1‖·‖n2‖)
//
// with g1 = u·v, g2 = v·w, g3 = u·w for the bond vectors u = x0−x1,
// v = x1−x2, w = x2−x3, each dot product rewritten in distances.
func dihedralCosine(d01, d02, d03, d12, d13, d23 float64) (float64, error) {
	s01, s02, s03 := d01*d01, d02*d02, d03*d03
	s12, s13, s23 := d12*d12, d13*d13, d23*d23

	g1 := (s02 - s01 - s12) / 2
	g2 := (s13 - s12 - s23) / 2
	g3 := (s03 + s12 - s02 - s13) / 2

	n1sq := s01*s12 - g1*g1
	n2sq := s12*s23 - g2*g2
	if n1sq <= 0 || n2sq <= 0 {
		// Collinear triple: the planes are undefined.
		return 0, ErrInvalidDomain
	}

	return clampDomain((g1*g2 - g3*s12) / math.Sqrt(n1sq*n2sq))
}

// ToAngle returns the interval angle at vertex 0 from the (possibly
// interval) side lengths d01, d02, d12. The cosine expression is evaluated
// over the Cartesian product of endpoint extrema and the tight hull is
// passed through the monotone acos.
func ToAngle(d01, d02, d12 Value) (Value, error) {
	if d01.IsUndefined() || d02.IsUndefined() || d12.IsUndefined() {
		return Undef(), nil
	}
	hull := cornerHull([]Value{d01, d02, d12}, func(x []float64) (float64, bool) {
		c := (x[0]*x[0] + x[1]*x[1] - x[2]*x[2]) / (2 * x[0] * x[1])

		return c, true
	})
	if hull.IsUndefined() {
		return Undef(), nil
	}

	return Acos(hull)
}

// ToDihedral returns the interval dihedral angle ω between the planes
// (0,1,2) and (1,2,3) by interval propagation of the closed-form distance
// expression. The result lies within [0,π].
func ToDihedral(d01, d02, d03, d12, d13, d23 Value) (Value, error) {
	s01, s02, s03 := Pow(d01, 2), Pow(d02, 2), Pow(d03, 2)
	s12, s13, s23 := Pow(d12, 2), Pow(d13, 2), Pow(d23, 2)

	g1 := Scal(Sub(s02, Add(s01, s12)), 0.5)
	g2 := Scal(Sub(s13, Add(s12, s23)), 0.5)
	g3 := Scal(Sub(Add(s03, s12), Add(s02, s13)), 0.5)

	n1sq := nonNegative(Sub(Mul(s01, s12), Pow(g1, 2)))
	n2sq := nonNegative(Sub(Mul(s12, s23), Pow(g2, 2)))

	den := Pow(Mul(n1sq, n2sq), 0.5)
	cosw := Div(Sub(Mul(g1, g2), Mul(g3, s12)), den)
	if cosw.IsUndefined() {
		return Undef(), nil
	}
	if cosw.L > 1+DomainEps || cosw.U < -1-DomainEps {
		return Undef(), ErrInvalidDomain
	}

	// Conservative propagation may overshoot the acos domain; clip before
	// the monotone map.
	return Acos(Bound(cosw, Range(-1, 1)))
}

// ToChord returns the chord length between the two mirror positions a BP
// step produces for atom 0 against the base triangle (1,2,3): twice the
// distance from atom 0 to the base plane, evaluated over endpoint extrema.
func ToChord(d01, d02, d03, d12, d13, d23 Value) Value {
	in := []Value{d01, d02, d03, d12, d13, d23}
	for _, v := range in {
		if v.IsUndefined() {
			return Undef()
		}
	}

	return cornerHull(in, func(x []float64) (float64, bool) {
		return chordDist(x[0], x[1], x[2], x[3], x[4], x[5])
	})
}

// FromAngle derives the opposite side d12 from two sides and the included
// angle θ at vertex 0 (inverse law of cosines).
func FromAngle(a, b, theta Value) Value {
	sq := Sub(Add(Pow(a, 2), Pow(b, 2)), Mul(Scal(Mul(a, b), 2), Cos(theta)))

	return Pow(nonNegative(sq), 0.5)
}

// FromDihedral derives the 1–4 distance d03 from the five inner distances
// and the dihedral angle ω about the 1–2 bond.
func FromDihedral(d01, d02, d12, d13, d23, omega Value) Value {
	s01, s02 := Pow(d01, 2), Pow(d02, 2)
	s12, s13, s23 := Pow(d12, 2), Pow(d13, 2), Pow(d23, 2)

	g1 := Scal(Sub(s02, Add(s01, s12)), 0.5)
	g2 := Scal(Sub(s13, Add(s12, s23)), 0.5)

	n1sq := nonNegative(Sub(Mul(s01, s12), Pow(g1, 2)))
	n2sq := nonNegative(Sub(Mul(s12, s23), Pow(g2, 2)))

	// g3 = (g1·g2 − cos ω·‖n1‖·‖n2‖) / d12²
	g3 := Div(Sub(Mul(g1, g2), Mul(Cos(omega), Pow(Mul(n1sq, n2sq), 0.5))), s12)

	// d03² = 2·g3 − d12² + d02² + d13²
	s03 := Sub(Add(Scal(g3, 2), Add(s02, s13)), s12)

	return Pow(nonNegative(s03), 0.5)
}

// chordDist computes the scalar chord: 2·h with h the distance from atom 0
// to the plane of (1,2,3), via the Cayley–Menger volume and Heron's area.
func chordDist(d01, d02, d03, d12, d13, d23 float64) (float64, bool) {
	vsq := cayleyMenger(d01, d02, d03, d12, d13, d23) / 288
	if vsq < 0 {
		vsq = 0 // coplanar within rounding
	}
	a := heron(d12, d13, d23)
	if a <= 0 {
		return 0, false // degenerate base triangle
	}

	return 2 * 3 * math.Sqrt(vsq) / a, true
}

// cayleyMenger evaluates the 5×5 Cayley–Menger determinant of four points
// (288·V² for the enclosed tetrahedron volume V).
func cayleyMenger(d01, d02, d03, d12, d13, d23 float64) float64 {
	s01, s02, s03 := d01*d01, d02*d02, d03*d03
	s12, s13, s23 := d12*d12, d13*d13, d23*d23
	m := [5][5]float64{
		{0, 1, 1, 1, 1},
		{1, 0, s01, s02, s03},
		{1, s01, 0, s12, s13},
		{1, s02, s12, 0, s23},
		{1, s03, s13, s23, 0},
	}

	return det5(m)
}

// det5 computes a 5×5 determinant by Gaussian elimination with partial
// pivoting.
func det5(m [5][5]float64) float64 {
	det := 1.0
	for c := 0; c < 5; c++ {
		p := c
		for r := c + 1; r < 5; r++ {
			if math.Abs(m[r][c]) > math.Abs(m[p][c]) {
				p = r
			}
		}
		if m[p][c] == 0 {
			return 0
		}
		if p != c {
			m[p], m[c] = m[c], m[p]
			det = -det
		}
		det *= m[c][c]
		for r := c + 1; r < 5; r++ {
			f := m[r][c] / m[c][c]
			for k := c; k < 5; k++ {
				m[r][k] -= f * m[c][k]
			}
		}
	}

	return det
}

// heron returns the triangle area from its three side lengths.
func heron(a, b, c float64) float64 {
	s := (a + b + c) / 2
	q := s * (s - a) * (s - b) * (s - c)
	if q < 0 {
		return 0
	}

	return math.Sqrt(q)
}

// nonNegative clips an interval to [0,∞); entirely negative values become
// Undefined.
func nonNegative(v Value) Value {
	if v.IsUndefined() || v.U < 0 {
		return Undef()
	}
	if v.L < 0 {
		return Range(0, v.U)
	}

	return v
}

// cornerHull evaluates f over every combination of endpoint extrema of vals
// and returns the hull of the successful evaluations.
func cornerHull(vals []Value, f func([]float64) (float64, bool)) Value {
	n := len(vals)
	x := make([]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for mask := 0; mask < 1<<n; mask++ {
		for i, v := range vals {
			if mask&(1<<i) != 0 {
				x[i] = v.U
			} else {
				x[i] = v.L
			}
		}
		y, ok := f(x)
		if !ok {
			continue
		}
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if lo > hi {
		return Undef()
	}

	return Range(lo, hi)
}
