// Package graph implements the distance graph of an iDMDGP instance: a
// dense symmetric table of exact/interval distances over atom indices, plus
// the Branch-and-Prune vertex order.
//
// Key features:
//   - Flat row-major storage of the N×N edge table (one value.Value per
//     ordered pair, mirrored on write).
//   - Type-preserving SetEdge: writing over an existing edge intersects the
//     stored bounds with the new value instead of overwriting them.
//   - CountEdges splits the edge census into exact and interval counts.
//   - SetOrder installs and validates a BP order: the first three vertices
//     must span pairwise exact distances, and every later position needs
//     defined edges to its three immediate predecessors, at most one of
//     which may be an interval.
//
// Errors:
//   - ErrBadSize, ErrOutOfRange, ErrSelfEdge, ErrUndefinedEdge on the edge
//     surface.
//   - ErrInvalidOrder when the BP order prerequisites are violated.
//
// The graph is read-only during enumeration and may be shared by any number
// of workers without locking.
package graph
