// Package vec3 provides the stateless 3-component vector kernel used by the
// geometric routines of the enumerator: construction, dot and cross products,
// normalization, and (squared) distances.
//
// All operations are value-based; no heap identity is required and nothing
// allocates on hot paths. Normalize is the only fallible operation: vectors
// shorter than Eps cannot be normalized and yield ErrDegenerateVector.
//
// Complexity: every operation is O(1).
package vec3
