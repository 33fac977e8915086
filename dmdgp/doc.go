// Package dmdgp reads and writes the intermediate DMDGP text format: the
// canonical dump of an iDMDGP instance's peptide, distance graph and BP
// order.
//
// The file is organized as a commented header (sequence and explicit
// sidechains), followed by begin/end sections for vertices, edges, atom
// names, residues, dihedral angles and the BP order. Atom indices are
// 1-based and left-justified in a column whose width grows with the vertex
// count; distances print as %11.6f.
//
// Write emits the sections in a fixed order and short-circuits on the
// first I/O error. Read reconstructs the peptide, graph and order well
// enough that writing the result again reproduces a written file byte for
// byte (modulo the header's file name and generator tag) when the instance
// has no impropers. The format carries no torsion/improper marker, so Read
// classifies every dihedral entry as a torsion; a file with impropers
// re-writes with different dihedral and improper counts.
//
// Errors: ErrSyntax with line context for malformed input, ErrIO wrapping
// writer failures.
package dmdgp
