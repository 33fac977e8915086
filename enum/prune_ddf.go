package enum

import (
	"github.com/korzhev/idmdgp/value"
	"github.com/korzhev/idmdgp/vec3"
)

// ddfCheck is one distance bound between the atom embedded at the
// registration level and a predecessor off backward steps up the stack.
type ddfCheck struct {
	off int
	val value.Value
}

// ddfClosure checks every graph edge between the newly embedded atom and
// the predecessors not consumed by trilateration: exact edges within
// ±tol, interval edges against [l−tol, u+tol].
type ddfClosure struct {
	checks   []ddfCheck
	exact    PruneStats
	interval PruneStats
}

func (c *ddfClosure) apply(e *Enumerator, th *threadState, lev int) Verdict {
	pos := th.state[lev].pos
	tol := e.opts.DDFTol
	for _, chk := range c.checks {
		d := vec3.Dist(pos, th.state[lev-chk.off].pos)
		if chk.val.IsScalar() {
			c.exact.Tests++
			if d-chk.val.L > tol || chk.val.L-d > tol {
				c.exact.Prunes++

				return Prune
			}
		} else {
			c.interval.Tests++
			if d < chk.val.L-tol || d > chk.val.U+tol {
				c.interval.Prunes++

				return Prune
			}
		}
	}

	return Keep
}

func (c *ddfClosure) release(th *threadState) {
	th.stats.Distance.add(c.exact)
	th.stats.Interval.add(c.interval)
	c.exact = PruneStats{}
	c.interval = PruneStats{}
}

// ddfPruner registers one distance-feasibility closure per level that has
// at least one non-trilateration edge to check.
type ddfPruner struct{}

func (ddfPruner) init(e *Enumerator, lev int) []closure {
	var checks []ddfCheck
	for pos := 0; pos < lev; pos++ {
		if usedInTrilateration(pos, lev) {
			continue
		}
		v := e.edgeAt(pos, lev)
		if v.IsUndefined() {
			continue
		}
		checks = append(checks, ddfCheck{off: lev - pos, val: v})
	}
	if len(checks) == 0 {
		return nil
	}

	return []closure{&ddfClosure{checks: checks}}
}
