// Package value implements the scalar/interval value algebra underlying the
// distance-geometry enumerator.
//
// A Value is a tagged variant with three cases: undefined, an exact scalar v,
// or a closed interval [l,u] with l ≤ u. Scalars behave as the degenerate
// interval [v,v] when mixed with intervals, and undefined propagates through
// every operation.
//
// Key features:
//   - Arithmetic: Add, Sub, Mul, Div, Pow, Scal (scalar multiply), and Bound
//     (interval intersection).
//   - Trigonometry: Sin, Cos and Acos over intervals, aware of the monotonic
//     segments of each function.
//   - Geometric derivations: ToAngle (law of cosines), ToDihedral and ToChord
//     (closed-form distance expressions), and the inverse derivations
//     FromAngle and FromDihedral.
//
// Errors:
//   - ErrInvalidDomain when an acos argument falls outside [−1−ε, 1+ε];
//     arguments within ε of the domain are clamped.
//
// Internally plain double precision is used; interval results are the hull of
// the propagated bounds, with endpoint-corner evaluation where an operation
// calls for a tight hull.
package value
