package enum

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/vec3"
)

// Enumerator is the Branch-and-Prune search engine for one iDMDGP
// instance. The peptide and graph are treated as read-only for the whole
// lifetime of the enumerator; a single Enumerator runs one search.
type Enumerator struct {
	pep  *peptide.Peptide
	g    *graph.Graph
	opts Options

	order   []int
	levelOf []int // atom id → order position, -1 when absent
	pruners []pruner

	base [graph.Lookback]vec3.Vec3

	cancel atomic.Bool

	// Solution sink, serialized behind mu.
	mu       sync.Mutex
	sols     []Solution
	prev     []vec3.Vec3
	firstErr error

	// Counter aggregation at thread teardown.
	smu   sync.Mutex
	stats Stats
}

// New validates the instance and configuration and prepares an enumerator.
// The graph must carry a BP order (graph.SetOrder); the first three order
// vertices are embedded deterministically here, so a degenerate base
// triangle fails early with ErrBaseEmbedding.
func New(p *peptide.Peptide, g *graph.Graph, opts ...Option) (*Enumerator, error) {
	if p == nil {
		return nil, ErrNilPeptide
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.NOrder() < graph.Lookback {
		return nil, ErrNoOrder
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	e := &Enumerator{
		pep:   p,
		g:     g,
		opts:  o,
		order: g.Order(),
	}
	e.levelOf = make([]int, g.N())
	for i := range e.levelOf {
		e.levelOf[i] = -1
	}
	for lev, id := range e.order {
		e.levelOf[id] = lev
	}
	e.pruners = []pruner{
		ddfPruner{},
		dihePruner{},
		imprPruner{},
	}
	e.stats.TorsionDetail = make(map[[4]int]PruneStats)
	e.stats.ImproperDetail = make(map[[4]int]PruneStats)

	if err := e.embedBase(); err != nil {
		return nil, err
	}

	return e, nil
}

// embedBase places the first three order vertices: order[0] at the origin,
// order[1] on +x, order[2] in the upper xy half-plane.
func (e *Enumerator) embedBase() error {
	d01 := e.g.Edge(e.order[0], e.order[1]).Mid()
	d02 := e.g.Edge(e.order[0], e.order[2]).Mid()
	d12 := e.g.Edge(e.order[1], e.order[2]).Mid()
	if d01 < vec3.Eps {
		return ErrBaseEmbedding
	}

	x := (d01*d01 + d02*d02 - d12*d12) / (2 * d01)
	ysq := d02*d02 - x*x
	if ysq < -e.opts.DDFTol {
		return ErrBaseEmbedding
	}

	e.base[0] = vec3.New(0, 0, 0)
	e.base[1] = vec3.New(d01, 0, 0)
	e.base[2] = vec3.New(x, math.Sqrt(math.Max(0, ysq)), 0)

	return nil
}

// Cancel requests cooperative termination: every worker exits at its next
// descend boundary without further emission.
func (e *Enumerator) Cancel() {
	e.cancel.Store(true)
}

func (e *Enumerator) cancelled() bool {
	return e.cancel.Load()
}

// Stats returns the aggregated enumeration counters. Call after Run.
func (e *Enumerator) Stats() Stats {
	e.smu.Lock()
	defer e.smu.Unlock()

	return e.stats
}

// Solutions returns the emitted solutions. Call after Run.
func (e *Enumerator) Solutions() []Solution {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sols
}

// setErr records the first error observed by any worker and cancels the
// search.
func (e *Enumerator) setErr(err error) {
	e.mu.Lock()
	if e.firstErr == nil {
		e.firstErr = err
	}
	e.mu.Unlock()
	e.Cancel()
}

// foldStats merges a thread-local counter set into the shared totals.
func (e *Enumerator) foldStats(src *Stats) {
	e.smu.Lock()
	defer e.smu.Unlock()

	e.stats.Torsion.add(src.Torsion)
	e.stats.Improper.add(src.Improper)
	e.stats.Distance.add(src.Distance)
	e.stats.Interval.add(src.Interval)
	e.stats.Nodes += src.Nodes
	for q, s := range src.TorsionDetail {
		d := e.stats.TorsionDetail[q]
		d.add(s)
		e.stats.TorsionDetail[q] = d
	}
	for q, s := range src.ImproperDetail {
		d := e.stats.ImproperDetail[q]
		d.add(s)
		e.stats.ImproperDetail[q] = d
	}
}
