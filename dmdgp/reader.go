package dmdgp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/value"
)

// ErrSyntax indicates malformed DMDGP input; the wrapped message carries
// the offending line number.
var ErrSyntax = errors.New("dmdgp: syntax error")

// reader accumulates the parsed sections before the model is assembled.
type reader struct {
	codes      []string
	sidechains []int

	pep *peptide.Peptide
	g   *graph.Graph

	section string // current begin/end section, "" outside
	header  string // current header list ("sequence" or "sidechains")
	line    int
}

func (r *reader) fail(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, r.line, fmt.Sprintf(format, args...))
}

// ReadFile parses a DMDGP file from disk.
func ReadFile(path string) (*peptide.Peptide, *graph.Graph, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	defer fh.Close()

	return Read(fh)
}

// Read parses a DMDGP dump and rebuilds the peptide, distance graph and BP
// order. Dihedral entries are classified as torsions (the format carries
// no improper marker) and angles convert from degrees to radians.
func Read(rd io.Reader) (*peptide.Peptide, *graph.Graph, error) {
	r := &reader{}
	var order []int

	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		r.line++
		line := strings.TrimRight(sc.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			r.header = ""
			continue
		case strings.HasPrefix(trimmed, "begin "):
			r.section = strings.TrimSpace(strings.TrimPrefix(trimmed, "begin "))
			if r.section == "edges" {
				if err := r.buildModel(); err != nil {
					return nil, nil, err
				}
			}
			continue
		case strings.HasPrefix(trimmed, "end "):
			r.section = ""
			continue
		}

		var err error
		switch r.section {
		case "":
			err = r.headerLine(trimmed)
		case "vertices":
			err = r.vertexLine(trimmed)
		case "edges":
			err = r.edgeLine(trimmed)
		case "atom_names", "residues":
			// Derivable groupings; regenerated on write.
		case "dihedral_angles":
			err = r.dihedralLine(trimmed)
		case "bp_order":
			var id int
			if id, err = r.orderLine(trimmed); err == nil {
				order = append(order, id)
			}
		default:
			// Unknown sections are skipped for forward compatibility.
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	if r.g == nil {
		if err := r.buildModel(); err != nil {
			return nil, nil, err
		}
	}
	if len(order) > 0 {
		if err := r.g.SetOrder(order); err != nil {
			return nil, nil, err
		}
	}

	return r.pep, r.g, nil
}

// headerLine consumes the commented lines outside any section: the sequence
// and explicit sidechain lists, plus annotated headers (lines with a colon),
// which end any running list.
func (r *reader) headerLine(line string) error {
	if !strings.HasPrefix(line, "#") {
		return r.fail("unexpected text outside sections: %q", line)
	}
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))

	switch {
	case strings.HasPrefix(body, "sequence:"):
		r.header = "sequence"

		return nil
	case strings.HasPrefix(body, "explicit sidechains:"):
		r.header = "sidechains"

		return nil
	case strings.Contains(body, ":"):
		// Counters and other annotated headers end any running list.
		r.header = ""

		return nil
	}

	switch r.header {
	case "sequence":
		r.codes = append(r.codes, strings.Fields(body)...)
	case "sidechains":
		for _, tok := range strings.Fields(body) {
			seq, err := trailingInt(tok)
			if err != nil {
				return r.fail("bad sidechain token %q", tok)
			}
			r.sidechains = append(r.sidechains, seq-1)
		}
	}

	return nil
}

// vertexLine parses "<idx> * * * # <RES><rid> <name> (<type>)".
func (r *reader) vertexLine(line string) error {
	if r.pep == nil {
		if len(r.codes) == 0 {
			return r.fail("vertices before sequence header")
		}
		r.pep = peptide.New(r.codes...)
		r.pep.Sidechains = r.sidechains
	}

	f := strings.Fields(line)
	if len(f) < 8 || f[4] != "#" {
		return r.fail("bad vertex entry %q", line)
	}
	rid, err := trailingInt(f[5])
	if err != nil {
		return r.fail("bad residue token %q", f[5])
	}
	name := f[6]
	typ := strings.Trim(f[7], "()")

	if _, err := r.pep.AddAtom(rid-1, name, typ, 0, 0, 0); err != nil {
		return r.fail("add atom %q: %v", name, err)
	}

	return nil
}

// buildModel finalizes the peptide and allocates the graph once the vertex
// census is complete.
func (r *reader) buildModel() error {
	if r.pep == nil {
		return r.fail("no vertices")
	}
	g, err := graph.New(r.pep.NAtoms())
	if err != nil {
		return r.fail("graph: %v", err)
	}
	r.g = g

	return nil
}

// edgeLine parses "<i> <j> D <d>" or "<i> <j> I <l> <u>" (1-based).
func (r *reader) edgeLine(line string) error {
	f := strings.Fields(line)
	if len(f) < 4 {
		return r.fail("bad edge entry %q", line)
	}
	i, err1 := strconv.Atoi(f[0])
	j, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil {
		return r.fail("bad edge indices %q", line)
	}

	var v value.Value
	switch f[2] {
	case "D":
		d, err := strconv.ParseFloat(f[3], 64)
		if err != nil {
			return r.fail("bad distance %q", f[3])
		}
		v = value.Exact(d)
	case "I":
		if len(f) < 5 {
			return r.fail("bad interval entry %q", line)
		}
		lo, err1 := strconv.ParseFloat(f[3], 64)
		hi, err2 := strconv.ParseFloat(f[4], 64)
		if err1 != nil || err2 != nil {
			return r.fail("bad interval bounds %q", line)
		}
		v = value.Range(lo, hi)
	default:
		return r.fail("bad edge type %q", f[2])
	}

	if err := r.g.SetEdge(i-1, j-1, v); err != nil {
		return r.fail("edge (%d,%d): %v", i, j, err)
	}

	return nil
}

// dihedralLine parses "<a> <b> <c> <d> D <ω>" or "... I <ω_l> <ω_u>",
// angles in degrees.
func (r *reader) dihedralLine(line string) error {
	f := strings.Fields(line)
	if len(f) < 6 {
		return r.fail("bad dihedral entry %q", line)
	}
	var ids [4]int
	for k := 0; k < 4; k++ {
		id, err := strconv.Atoi(f[k])
		if err != nil {
			return r.fail("bad dihedral index %q", f[k])
		}
		ids[k] = id - 1
	}

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	var ang value.Value
	switch f[4] {
	case "D":
		d, err := strconv.ParseFloat(f[5], 64)
		if err != nil {
			return r.fail("bad angle %q", f[5])
		}
		ang = value.Exact(toRad(d))
	case "I":
		if len(f) < 7 {
			return r.fail("bad interval dihedral %q", line)
		}
		lo, err1 := strconv.ParseFloat(f[5], 64)
		hi, err2 := strconv.ParseFloat(f[6], 64)
		if err1 != nil || err2 != nil {
			return r.fail("bad angle bounds %q", line)
		}
		ang = value.Range(toRad(lo), toRad(hi))
	default:
		return r.fail("bad dihedral type %q", f[4])
	}

	if err := r.pep.AddTorsionID(ids, ang); err != nil {
		return r.fail("dihedral %v: %v", ids, err)
	}

	return nil
}

// orderLine parses one BP order entry (1-based atom index).
func (r *reader) orderLine(line string) (int, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return 0, r.fail("empty order entry")
	}
	id, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, r.fail("bad order index %q", f[0])
	}

	return id - 1, nil
}

// trailingInt splits a token like "ALA12" into its trailing integer.
func trailingInt(tok string) (int, error) {
	i := len(tok)
	for i > 0 && tok[i-1] >= '0' && tok[i-1] <= '9' {
		i--
	}
	if i == len(tok) {
		return 0, fmt.Errorf("no trailing digits")
	}

	return strconv.Atoi(tok[i:])
}
