// Package idmdgp solves interval Discretizable Molecular Distance Geometry
// Problem instances: given a peptide model, a partial distance graph mixing
// exact and interval edges, and a Branch-and-Prune vertex order, it
// enumerates the three-dimensional embeddings satisfying every constraint
// within tolerance.
//
// The module is organized bottom-up:
//
//   - value    — scalar/interval algebra with trigonometric and geometric
//     derivations (angles and dihedrals from distances and back).
//   - vec3     — the 3D vector kernel.
//   - peptide  — residues, atoms and dihedral constraints.
//   - graph    — the dense distance graph and the BP order.
//   - enum     — the Branch-and-Prune enumerator: candidate generation by
//     trilateration, pruning closures, parallel subtree exploration.
//   - dmdgp    — the DMDGP text dump reader/writer.
//   - soldb    — SQLite persistence for solution sets.
//
// The cmd/idmdgp binary exposes solve and convert commands over DMDGP
// files.
package idmdgp
