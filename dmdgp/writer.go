package dmdgp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/value"
)

// Generator is the tag written into the file header.
const Generator = "idmdgp"

// ErrIO wraps writer failures.
var ErrIO = errors.New("dmdgp: write failed")

// indexWidth returns the column width for 1-based atom indices: one more
// digit than the vertex count needs.
func indexWidth(n int) int {
	w, p := 1, 1
	for p <= n {
		w++
		p *= 10
	}

	return w
}

// writer carries the output stream, the index format and the first error;
// every section short-circuits once an error is recorded.
type writer struct {
	w   *bufio.Writer
	p   *peptide.Peptide
	g   *graph.Graph
	fmt string // left-justified index format, e.g. "%-3d"
	err error
}

func (d *writer) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	if _, err := fmt.Fprintf(d.w, format, args...); err != nil {
		d.err = fmt.Errorf("%w: %v", ErrIO, err)
	}
}

// resCode returns the residue code of an atom's owner.
func (d *writer) resCode(atom int) string {
	return d.p.Code(d.p.Atoms[atom].ResID)
}

// WriteFile writes the instance dump to path.
func WriteFile(path string, p *peptide.Peptide, g *graph.Graph) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer fh.Close()

	return Write(fh, p, g, path)
}

// Write dumps the peptide, graph and BP order to w in the DMDGP text
// format. name appears on the first header line only.
func Write(w io.Writer, p *peptide.Peptide, g *graph.Graph, name string) error {
	d := &writer{
		w:   bufio.NewWriter(w),
		p:   p,
		g:   g,
		fmt: fmt.Sprintf("%%-%dd", indexWidth(p.NAtoms())),
	}

	d.header(name)
	d.vertices()
	d.edges()
	d.atomNames()
	d.residues()
	d.dihedrals()
	d.order()

	if d.err == nil {
		if err := d.w.Flush(); err != nil {
			d.err = fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	return d.err
}

// header writes the file name, generator tag, residue sequence (15 codes
// per line) and explicit sidechains (5 tokens per line).
func (d *writer) header(name string) {
	d.printf("# %s\n", name)
	d.printf("# automatically generated by %s\n\n", Generator)

	d.printf("# sequence:\n#")
	for i := 0; i < d.p.NResidues(); i++ {
		d.printf(" %s", d.p.Code(i))
		if (i+1)%15 == 0 && i < d.p.NResidues()-1 {
			d.printf("\n#")
		}
	}
	d.printf("\n\n")

	d.printf("# explicit sidechains:\n#")
	for i, sc := range d.p.Sidechains {
		d.printf(" %s%-4d", d.p.Code(sc), sc+1)
		if (i+1)%5 == 0 && i < len(d.p.Sidechains)-1 {
			d.printf("\n#")
		}
	}
	d.printf("\n\n")
}

// vertices writes one line per atom with placeholder coordinates.
func (d *writer) vertices() {
	d.printf("# vertices: %d\n", d.p.NAtoms())
	d.printf("begin vertices\n")
	lineFmt := d.fmt + "  *   *   *   # %s%-4d %-4s (%s)\n"
	for i, a := range d.p.Atoms {
		d.printf(lineFmt, i+1, d.resCode(i), a.ResID+1, a.Name, a.Type)
	}
	d.printf("end vertices\n\n")
}

// edges writes the exact and interval distance entries with 1-based
// indices and %11.6f distances.
func (d *writer) edges() {
	ne, ni := d.g.CountEdges()
	d.printf("# exact edges:    %d\n", ne)
	d.printf("# interval edges: %d\n", ni)
	d.printf("begin edges\n")

	exactFmt := d.fmt + d.fmt + "D %11.6f             # %s%-4d %-4s -- %s%-4d %-4s\n"
	rangeFmt := d.fmt + d.fmt + "I %11.6f %11.6f # %s%-4d %-4s -- %s%-4d %-4s\n"

	for i := 0; i < d.g.N(); i++ {
		for j := i + 1; j < d.g.N(); j++ {
			v := d.g.Edge(i, j)
			switch v.Kind {
			case value.Scalar:
				d.printf(exactFmt, i+1, j+1, v.L,
					d.resCode(i), d.p.Atoms[i].ResID+1, d.p.Atoms[i].Name,
					d.resCode(j), d.p.Atoms[j].ResID+1, d.p.Atoms[j].Name)
			case value.Interval:
				d.printf(rangeFmt, i+1, j+1, v.L, v.U,
					d.resCode(i), d.p.Atoms[i].ResID+1, d.p.Atoms[i].Name,
					d.resCode(j), d.p.Atoms[j].ResID+1, d.p.Atoms[j].Name)
			}
		}
	}
	d.printf("end edges\n\n")
}

// groups writes name-keyed vertex groups in first-appearance order.
func (d *writer) groups(key func(i int) string) {
	var names []string
	members := make(map[string][]int)
	for i := range d.p.Atoms {
		k := key(i)
		if _, ok := members[k]; !ok {
			names = append(names, k)
		}
		members[k] = append(members[k], i+1)
	}
	for _, k := range names {
		d.printf("%-4s", k)
		for _, m := range members[k] {
			d.printf(" "+d.fmt, m)
		}
		d.printf("\n")
	}
}

// atomNames writes the vertex groups keyed by atom name.
func (d *writer) atomNames() {
	d.printf("# atoms: %d\n", d.p.NAtoms())
	d.printf("begin atom_names\n")
	d.groups(func(i int) string { return d.p.Atoms[i].Name })
	d.printf("end atom_names\n\n")
}

// residues writes the vertex groups keyed by residue code.
func (d *writer) residues() {
	d.printf("# residues: %d\n", d.p.NResidues())
	d.printf("begin residues\n")
	d.groups(func(i int) string { return d.resCode(i) })
	d.printf("end residues\n\n")
}

// dihedrals writes all exact torsions, exact impropers, interval torsions
// and interval impropers, in that order, with angles in degrees.
func (d *writer) dihedrals() {
	d.printf("# dihedrals: %d\n", len(d.p.Torsions))
	d.printf("# impropers: %d\n", len(d.p.Impropers))
	d.printf("begin dihedral_angles\n")

	exactFmt := d.fmt + d.fmt + d.fmt + d.fmt + "D %11.6f\n"
	rangeFmt := d.fmt + d.fmt + d.fmt + d.fmt + "I %11.6f %11.6f\n"
	toDeg := func(rad float64) float64 { return rad * 180 / math.Pi }

	writeRun := func(arr []peptide.Dihedral, interval bool) {
		for _, dh := range arr {
			if dh.Ang.IsInterval() != interval {
				continue
			}
			a, b, c, e := dh.AtomID[0]+1, dh.AtomID[1]+1, dh.AtomID[2]+1, dh.AtomID[3]+1
			if interval {
				d.printf(rangeFmt, a, b, c, e, toDeg(dh.Ang.L), toDeg(dh.Ang.U))
			} else {
				d.printf(exactFmt, a, b, c, e, toDeg(dh.Ang.L))
			}
		}
	}
	writeRun(d.p.Torsions, false)
	writeRun(d.p.Impropers, false)
	writeRun(d.p.Torsions, true)
	writeRun(d.p.Impropers, true)

	d.printf("end dihedral_angles\n\n")
}

// order writes the BP order, one 1-based atom index per line.
func (d *writer) order() {
	d.printf("# reorder length: %d\n", d.g.NOrder())
	d.printf("begin bp_order\n")
	lineFmt := d.fmt + " # %s%-4d %-4s\n"
	for _, id := range d.g.Order() {
		d.printf(lineFmt, id+1, d.resCode(id), d.p.Atoms[id].ResID+1, d.p.Atoms[id].Name)
	}
	d.printf("end bp_order\n\n")
}
