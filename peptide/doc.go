// Package peptide models the molecule under study: residues, atoms with
// force-field attributes, and the torsion/improper dihedral constraints
// declared on quadruples of atoms.
//
// Atoms are identified by a stable integer index assigned at insertion; the
// (residue, atom-name) pair is the user-facing key for every add, modify,
// delete and lookup operation. Torsions and impropers always reference four
// distinct existing atoms.
//
// GraphTorsions bridges the model to the distance graph: for every torsion
// whose five inner distances are already present in the graph, the induced
// 1–4 distance is derived from the dihedral bound and written back
// type-preservingly.
//
// Errors:
//   - ErrUnknownResidue, ErrUnknownAtom on lookup misses.
//   - ErrDuplicateAtom when an atom name is reused within a residue.
//   - ErrDuplicateDihedral when a torsion/improper quadruple is re-declared.
//   - ErrBadDihedral when a quadruple references fewer than four distinct
//     atoms or an undefined angle bound.
package peptide
