package enum

import (
	"fmt"
	"sort"
)

// TAFReport renders the per-quadruple torsion-angle pruning counters, one
// line per dihedral that pruned at least once: the four atoms as
// residue/name pairs, then prunes/tests and the prune percentage.
func (e *Enumerator) TAFReport() []string {
	e.smu.Lock()
	defer e.smu.Unlock()

	var out []string
	out = append(out, e.tafLines(e.stats.TorsionDetail)...)
	out = append(out, e.tafLines(e.stats.ImproperDetail)...)

	return out
}

func (e *Enumerator) tafLines(detail map[[4]int]PruneStats) []string {
	quads := make([][4]int, 0, len(detail))
	for q := range detail {
		quads = append(quads, q)
	}
	sort.Slice(quads, func(i, j int) bool {
		for k := 0; k < 4; k++ {
			if quads[i][k] != quads[j][k] {
				return quads[i][k] < quads[j][k]
			}
		}

		return false
	})

	var out []string
	for _, q := range quads {
		s := detail[q]
		if s.Prunes == 0 {
			continue
		}
		f := float64(s.Prunes) / float64(s.Tests) * 100
		out = append(out, fmt.Sprintf(
			"  %s | %s | %s | %s : %16d/%-16d %3.0f%%",
			e.atomLabel(q[0]), e.atomLabel(q[1]),
			e.atomLabel(q[2]), e.atomLabel(q[3]),
			s.Prunes, s.Tests, f))
	}

	return out
}

// atomLabel renders "<RES><res_id+1> <name>" for one atom.
func (e *Enumerator) atomLabel(id int) string {
	a := e.pep.Atoms[id]

	return fmt.Sprintf("%s%-4d %-4s", e.pep.Code(a.ResID), a.ResID+1, a.Name)
}
