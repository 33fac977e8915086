package peptide

// FindAtom returns the index of the atom named name in residue resID.
func (p *Peptide) FindAtom(resID int, name string) (int, error) {
	if resID < 0 || resID >= len(p.Residues) {
		return 0, ErrUnknownResidue
	}
	for _, id := range p.Residues[resID].Atoms {
		if p.Atoms[id].Name == name {
			return id, nil
		}
	}

	return 0, ErrUnknownAtom
}

// AddAtom appends an atom to residue resID and returns its index. Names are
// unique within a residue.
func (p *Peptide) AddAtom(resID int, name, typ string, mass, charge, radius float64) (int, error) {
	if resID < 0 || resID >= len(p.Residues) {
		return 0, ErrUnknownResidue
	}
	if _, err := p.FindAtom(resID, name); err == nil {
		return 0, ErrDuplicateAtom
	}
	id := len(p.Atoms)
	p.Atoms = append(p.Atoms, Atom{
		ResID:  resID,
		Name:   name,
		Type:   typ,
		Mass:   mass,
		Charge: charge,
		Radius: radius,
	})
	p.Residues[resID].Atoms = append(p.Residues[resID].Atoms, id)

	return id, nil
}

// ModifyAtom updates the force-field attributes of the atom keyed by
// (resID, name).
func (p *Peptide) ModifyAtom(resID int, name, typ string, mass, charge, radius float64) error {
	id, err := p.FindAtom(resID, name)
	if err != nil {
		return err
	}
	a := &p.Atoms[id]
	a.Type = typ
	a.Mass = mass
	a.Charge = charge
	a.Radius = radius

	return nil
}

// DeleteAtom removes the atom keyed by (resID, name), renumbers the atoms
// above it, and drops every dihedral referencing it.
func (p *Peptide) DeleteAtom(resID int, name string) error {
	id, err := p.FindAtom(resID, name)
	if err != nil {
		return err
	}

	p.Atoms = append(p.Atoms[:id], p.Atoms[id+1:]...)

	for r := range p.Residues {
		atoms := p.Residues[r].Atoms[:0]
		for _, a := range p.Residues[r].Atoms {
			switch {
			case a == id:
			case a > id:
				atoms = append(atoms, a-1)
			default:
				atoms = append(atoms, a)
			}
		}
		p.Residues[r].Atoms = atoms
	}

	p.Torsions = renumberDihedrals(p.Torsions, id)
	p.Impropers = renumberDihedrals(p.Impropers, id)

	return nil
}

// renumberDihedrals drops entries referencing the removed atom and shifts
// the indices above it.
func renumberDihedrals(arr []Dihedral, removed int) []Dihedral {
	out := arr[:0]
	for _, d := range arr {
		keep := true
		for k, a := range d.AtomID {
			if a == removed {
				keep = false
				break
			}
			if a > removed {
				d.AtomID[k] = a - 1
			}
		}
		if keep {
			out = append(out, d)
		}
	}

	return out
}
