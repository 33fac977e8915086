package peptide

import (
	"errors"

	"github.com/korzhev/idmdgp/value"
)

var (
	// ErrUnknownResidue indicates a residue index outside the peptide.
	ErrUnknownResidue = errors.New("peptide: unknown residue")

	// ErrUnknownAtom indicates a (residue, name) lookup miss.
	ErrUnknownAtom = errors.New("peptide: unknown atom")

	// ErrDuplicateAtom indicates an atom name reused within a residue.
	ErrDuplicateAtom = errors.New("peptide: duplicate atom name in residue")

	// ErrDuplicateDihedral indicates a torsion/improper quadruple declared
	// twice (in either direction).
	ErrDuplicateDihedral = errors.New("peptide: duplicate dihedral")

	// ErrBadDihedral indicates a quadruple with repeated atoms or an
	// undefined angle bound.
	ErrBadDihedral = errors.New("peptide: malformed dihedral")
)

// Atom carries the force-field attributes of a single atom.
type Atom struct {
	ResID  int    // index of the owning residue
	Name   string // short atom name, unique within the residue
	Type   string // force-field type
	Mass   float64
	Charge float64
	Radius float64
}

// Residue is one residue of the sequence with the indices of its atoms in
// insertion order.
type Residue struct {
	Code  string // 3-letter residue code
	Seq   int    // position in the sequence
	Atoms []int
}

// Dihedral is a torsion or improper constraint over four atom indices with
// an exact or interval angle bound (radians).
type Dihedral struct {
	AtomID [4]int
	Ang    value.Value
}

// Peptide is the ordered residue/atom model plus dihedral constraint
// arrays. The zero value is unusable; construct with New.
type Peptide struct {
	Residues   []Residue
	Atoms      []Atom
	Torsions   []Dihedral
	Impropers  []Dihedral
	Sidechains []int // residue indices with explicitly modeled sidechains
}

// New builds a peptide over the given residue codes.
func New(codes ...string) *Peptide {
	p := &Peptide{Residues: make([]Residue, len(codes))}
	for i, c := range codes {
		p.Residues[i] = Residue{Code: c, Seq: i}
	}

	return p
}

// NAtoms returns the number of atoms.
func (p *Peptide) NAtoms() int { return len(p.Atoms) }

// NResidues returns the number of residues.
func (p *Peptide) NResidues() int { return len(p.Residues) }

// Code returns the residue code of residue i, or "???" when out of range.
func (p *Peptide) Code(i int) string {
	if i < 0 || i >= len(p.Residues) {
		return "???"
	}

	return p.Residues[i].Code
}
