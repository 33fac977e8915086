package peptide

import (
	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/value"
)

// AtomKey addresses an atom by its residue index and name.
type AtomKey struct {
	ResID int
	Name  string
}

// resolve maps four atom keys to four distinct atom indices.
func (p *Peptide) resolve(keys [4]AtomKey) ([4]int, error) {
	var ids [4]int
	for k, key := range keys {
		id, err := p.FindAtom(key.ResID, key.Name)
		if err != nil {
			return ids, err
		}
		ids[k] = id
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if ids[i] == ids[j] {
				return ids, ErrBadDihedral
			}
		}
	}

	return ids, nil
}

// sameQuad reports whether two quadruples match forward or reversed.
func sameQuad(a, b [4]int) bool {
	fwd := a[0] == b[0] && a[1] == b[1] && a[2] == b[2] && a[3] == b[3]
	rev := a[0] == b[3] && a[1] == b[2] && a[2] == b[1] && a[3] == b[0]

	return fwd || rev
}

// addDihedral validates and appends a dihedral entry to arr.
func (p *Peptide) addDihedral(arr []Dihedral, keys [4]AtomKey, ang value.Value) ([]Dihedral, error) {
	ids, err := p.resolve(keys)
	if err != nil {
		return arr, err
	}

	return p.addDihedralID(arr, ids, ang)
}

// deleteDihedral removes the entry matching the quadruple.
func (p *Peptide) deleteDihedral(arr []Dihedral, keys [4]AtomKey) ([]Dihedral, error) {
	ids, err := p.resolve(keys)
	if err != nil {
		return arr, err
	}
	for i, d := range arr {
		if sameQuad(d.AtomID, ids) {
			return append(arr[:i], arr[i+1:]...), nil
		}
	}

	return arr, ErrUnknownAtom
}

// deleteDihedralsWith removes every entry referencing the keyed atom.
func (p *Peptide) deleteDihedralsWith(arr []Dihedral, resID int, name string) ([]Dihedral, error) {
	id, err := p.FindAtom(resID, name)
	if err != nil {
		return arr, err
	}
	out := arr[:0]
	for _, d := range arr {
		if d.AtomID[0] != id && d.AtomID[1] != id && d.AtomID[2] != id && d.AtomID[3] != id {
			out = append(out, d)
		}
	}

	return out, nil
}

// AddTorsion declares a torsion constraint over four atoms with the angle
// bound ang (radians).
func (p *Peptide) AddTorsion(keys [4]AtomKey, ang value.Value) error {
	arr, err := p.addDihedral(p.Torsions, keys, ang)
	if err != nil {
		return err
	}
	p.Torsions = arr

	return nil
}

// AddImproper declares an improper constraint over four atoms with the
// angle bound ang (radians).
func (p *Peptide) AddImproper(keys [4]AtomKey, ang value.Value) error {
	arr, err := p.addDihedral(p.Impropers, keys, ang)
	if err != nil {
		return err
	}
	p.Impropers = arr

	return nil
}

// DeleteTorsion removes the torsion matching the quadruple.
func (p *Peptide) DeleteTorsion(keys [4]AtomKey) error {
	arr, err := p.deleteDihedral(p.Torsions, keys)
	if err != nil {
		return err
	}
	p.Torsions = arr

	return nil
}

// DeleteImproper removes the improper matching the quadruple.
func (p *Peptide) DeleteImproper(keys [4]AtomKey) error {
	arr, err := p.deleteDihedral(p.Impropers, keys)
	if err != nil {
		return err
	}
	p.Impropers = arr

	return nil
}

// DeleteTorsionsWith removes every torsion referencing the keyed atom.
func (p *Peptide) DeleteTorsionsWith(resID int, name string) error {
	arr, err := p.deleteDihedralsWith(p.Torsions, resID, name)
	if err != nil {
		return err
	}
	p.Torsions = arr

	return nil
}

// DeleteImpropersWith removes every improper referencing the keyed atom.
func (p *Peptide) DeleteImpropersWith(resID int, name string) error {
	arr, err := p.deleteDihedralsWith(p.Impropers, resID, name)
	if err != nil {
		return err
	}
	p.Impropers = arr

	return nil
}

// addDihedralID validates and appends a dihedral addressed by atom index.
func (p *Peptide) addDihedralID(arr []Dihedral, ids [4]int, ang value.Value) ([]Dihedral, error) {
	if ang.IsUndefined() {
		return arr, ErrBadDihedral
	}
	for i := 0; i < 4; i++ {
		if ids[i] < 0 || ids[i] >= len(p.Atoms) {
			return arr, ErrUnknownAtom
		}
		for j := i + 1; j < 4; j++ {
			if ids[i] == ids[j] {
				return arr, ErrBadDihedral
			}
		}
	}
	for _, d := range arr {
		if sameQuad(d.AtomID, ids) {
			return arr, ErrDuplicateDihedral
		}
	}

	return append(arr, Dihedral{AtomID: ids, Ang: ang}), nil
}

// AddTorsionID declares a torsion directly by atom indices.
func (p *Peptide) AddTorsionID(ids [4]int, ang value.Value) error {
	arr, err := p.addDihedralID(p.Torsions, ids, ang)
	if err != nil {
		return err
	}
	p.Torsions = arr

	return nil
}

// AddImproperID declares an improper directly by atom indices.
func (p *Peptide) AddImproperID(ids [4]int, ang value.Value) error {
	arr, err := p.addDihedralID(p.Impropers, ids, ang)
	if err != nil {
		return err
	}
	p.Impropers = arr

	return nil
}

// GraphTorsions derives the 1–4 distance induced by each torsion whose five
// inner distances are present in g, and writes it back type-preservingly.
// Torsions with missing inner distances are skipped.
func (p *Peptide) GraphTorsions(g *graph.Graph) error {
	for _, tor := range p.Torsions {
		a0, a1, a2, a3 := tor.AtomID[0], tor.AtomID[1], tor.AtomID[2], tor.AtomID[3]

		d01 := g.Edge(a0, a1)
		d02 := g.Edge(a0, a2)
		d12 := g.Edge(a1, a2)
		d13 := g.Edge(a1, a3)
		d23 := g.Edge(a2, a3)
		if d01.IsUndefined() || d02.IsUndefined() || d12.IsUndefined() ||
			d13.IsUndefined() || d23.IsUndefined() {
			continue
		}

		d03 := value.FromDihedral(d01, d02, d12, d13, d23, tor.Ang)
		if d03.IsUndefined() {
			continue
		}
		if err := g.SetEdge(a0, a3, d03); err != nil {
			return err
		}
	}

	return nil
}
