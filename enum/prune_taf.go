package enum

import (
	"math"

	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/value"
	"github.com/korzhev/idmdgp/vec3"
)

// tafClosure checks torsion-angle feasibility for one dihedral quadruple.
// The payload stores the backward level offsets n[k] of the four atoms
// relative to the registration level, the angle bound in radians, and the
// test/prune counters folded into the thread statistics on release.
type tafClosure struct {
	improper bool
	quad     [4]int
	n        [4]int
	bound    value.Value
	ntest    uint64
	nprune   uint64
}

// tafInit registers one closure per dihedral whose newest atom was just
// embedded at lev and whose remaining atoms are already embedded.
func tafInit(e *Enumerator, arr []peptide.Dihedral, improper bool, lev int) []closure {
	id := e.order[lev]
	var out []closure
	for _, d := range arr {
		if id != d.AtomID[0] && id != d.AtomID[1] && id != d.AtomID[2] && id != d.AtomID[3] {
			continue
		}
		ready := true
		var n [4]int
		for k, a := range d.AtomID {
			la := e.levelOf[a]
			if la < 0 || la > lev {
				ready = false
				break
			}
			n[k] = lev - la
		}
		if !ready {
			continue
		}
		out = append(out, &tafClosure{
			improper: improper,
			quad:     d.AtomID,
			n:        n,
			bound:    d.Ang,
		})
	}

	return out
}

// apply recomputes the dihedral angle from the embedded positions and
// prunes when it leaves the bound by more than the tolerance.
func (c *tafClosure) apply(e *Enumerator, th *threadState, lev int) Verdict {
	omega, ok := Dihedral(
		th.state[lev-c.n[0]].pos,
		th.state[lev-c.n[1]].pos,
		th.state[lev-c.n[2]].pos,
		th.state[lev-c.n[3]].pos)
	if !ok {
		return Keep // collinear triple: the angle is undefined, not a prune
	}

	c.ntest++
	if c.bound.L-omega > e.opts.DDFTol || omega-c.bound.U > e.opts.DDFTol {
		c.nprune++

		return Prune
	}

	return Keep
}

// release folds the counters into the owning thread's statistics.
func (c *tafClosure) release(th *threadState) {
	s := PruneStats{Tests: c.ntest, Prunes: c.nprune}
	if c.improper {
		th.stats.Improper.add(s)
		d := th.stats.ImproperDetail[c.quad]
		d.add(s)
		th.stats.ImproperDetail[c.quad] = d
	} else {
		th.stats.Torsion.add(s)
		d := th.stats.TorsionDetail[c.quad]
		d.add(s)
		th.stats.TorsionDetail[c.quad] = d
	}
	c.ntest, c.nprune = 0, 0
}

// dihePruner registers torsion-angle feasibility closures for proper
// torsions.
type dihePruner struct{}

func (dihePruner) init(e *Enumerator, lev int) []closure {
	return tafInit(e, e.pep.Torsions, false, lev)
}

// imprPruner registers torsion-angle feasibility closures for improper
// dihedrals.
type imprPruner struct{}

func (imprPruner) init(e *Enumerator, lev int) []closure {
	return tafInit(e, e.pep.Impropers, true, lev)
}

// Dihedral recomputes the signed dihedral angle of four positions the way
// the TAF closure does; exported for solution verification.
func Dihedral(x1, x2, x3, x4 vec3.Vec3) (float64, bool) {
	b1 := x1.Sub(x2)
	b2 := x2.Sub(x3)
	b3 := x3.Sub(x4)

	n1, err := b1.Cross(b2).Normalize()
	if err != nil {
		return 0, false
	}
	n2, err := b2.Cross(b3).Normalize()
	if err != nil {
		return 0, false
	}
	b2u, err := b2.Normalize()
	if err != nil {
		return 0, false
	}
	m := n1.Cross(b2u)

	return math.Atan2(m.Dot(n2), n1.Dot(n2)), true
}
