package enum

import (
	"github.com/korzhev/idmdgp/vec3"
)

// levelSlot is one entry of the per-thread search stack: the position
// placed at this order level, the candidate set of the current visit, the
// branch cursor, and the pruning closures registered at this level.
type levelSlot struct {
	pos      vec3.Vec3
	cands    []vec3.Vec3
	branch   int
	closures []closure
	inited   bool
}

// threadState is the search state owned by a single worker. Levels below
// root hold the fixed prefix (base embedding plus the work-item positions);
// levels at and above root are explored by this thread.
type threadState struct {
	e     *Enumerator
	state []levelSlot
	root  int
	stats Stats
}

// newThread builds a thread state with the base embedding placed at levels
// 0..2 and the search root at root.
func (e *Enumerator) newThread(root int) *threadState {
	th := &threadState{
		e:     e,
		state: make([]levelSlot, len(e.order)),
		root:  root,
	}
	for i := 0; i < len(e.base) && i < len(th.state); i++ {
		th.state[i].pos = e.base[i]
	}
	th.stats.TorsionDetail = make(map[[4]int]PruneStats)
	th.stats.ImproperDetail = make(map[[4]int]PruneStats)

	return th
}

// seedPrefix copies a work item's positions into the fixed prefix levels.
func (th *threadState) seedPrefix(prefix []vec3.Vec3) {
	for i, p := range prefix {
		th.state[i].pos = p
	}
}

// enter prepares level lev for a fresh visit: candidates are regenerated
// against the current predecessor positions and the level's closures are
// initialized on first entry.
func (th *threadState) enter(lev int) {
	slot := &th.state[lev]
	slot.cands = th.e.candidates(th, lev, slot.cands[:0])
	slot.branch = -1
	if !slot.inited {
		for _, p := range th.e.pruners {
			slot.closures = append(slot.closures, p.init(th.e, lev)...)
		}
		slot.inited = true
	}
}

// release frees the payloads registered at lev, folding their counters
// into the thread statistics.
func (th *threadState) release(lev int) {
	slot := &th.state[lev]
	for _, c := range slot.closures {
		c.release(th)
	}
	slot.closures = slot.closures[:0]
	slot.inited = false
	slot.cands = slot.cands[:0]
	slot.branch = -1
}

// unwind releases every level from lev down to the thread root; used on
// cancellation and error exits.
func (th *threadState) unwind(lev int) {
	for l := lev; l >= th.root; l-- {
		if th.state[l].inited {
			th.release(l)
		}
	}
}

// applyClosures runs the closures registered at lev in registration order;
// the first Prune verdict terminates the chain.
func (th *threadState) applyClosures(lev int) Verdict {
	for _, c := range th.state[lev].closures {
		if c.apply(th.e, th, lev) == Prune {
			return Prune
		}
	}

	return Keep
}
