package enum

import (
	"math"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/value"
	"github.com/korzhev/idmdgp/vec3"
)

// candidates derives the candidate positions for order level lev from the
// three predecessor atoms and their distances to order[lev]. An interval
// lookback edge contributes IntervalSamples sampled distances, each with
// its own mirror pair. The result is appended to dst (reused storage).
//
// Candidate order is sample-major: for each sampled distance the
// positive-normal position precedes its reflection, so the branch index
// low bit is the reflection bit.
func (e *Enumerator) candidates(th *threadState, lev int, dst []vec3.Vec3) []vec3.Vec3 {
	id := e.order[lev]

	// Predecessors: p1 at lev-3, p2 at lev-2, p3 at lev-1.
	p1 := th.state[lev-3].pos
	p2 := th.state[lev-2].pos
	p3 := th.state[lev-1].pos

	d1v := e.g.Edge(e.order[lev-3], id)
	d2v := e.g.Edge(e.order[lev-2], id)
	d3v := e.g.Edge(e.order[lev-1], id)

	// At most one lookback edge is an interval (order validation); its
	// distance is discretized, the other two stay fixed.
	var sampled value.Value
	slot := -1
	switch {
	case d1v.IsInterval():
		sampled, slot = d1v, 0
	case d2v.IsInterval():
		sampled, slot = d2v, 1
	case d3v.IsInterval():
		sampled, slot = d3v, 2
	}

	if slot < 0 {
		return appendTrilaterated(dst, p1, p2, p3, d1v.L, d2v.L, d3v.L, e.opts.DDFTol)
	}

	lo, hi := sampled.L, sampled.U
	n := e.opts.IntervalSamples
	for i := 0; i < n; i++ {
		d := lo + (hi-lo)*float64(i)/float64(n-1)
		ds := [3]float64{d1v.L, d2v.L, d3v.L}
		ds[slot] = d
		dst = appendTrilaterated(dst, p1, p2, p3, ds[0], ds[1], ds[2], e.opts.DDFTol)
	}

	return dst
}

// appendTrilaterated solves the three-sphere intersection for a point at
// distances d1,d2,d3 from p1,p2,p3 and appends 0, 1 or 2 candidates.
//
// The frame sits at p3: û along p2→p3, ŵ the normalized component of
// p1→p3 orthogonal to û, n̂ = û×ŵ. A discriminant below −tol is a dead
// branch; within ±tol the mirror pair collapses onto the base plane.
func appendTrilaterated(dst []vec3.Vec3, p1, p2, p3 vec3.Vec3, d1, d2, d3, tol float64) []vec3.Vec3 {
	u := p3.Sub(p2)
	r23 := u.Norm()
	uh, err := u.Normalize()
	if err != nil {
		return dst // coincident predecessors
	}

	a := p3.Sub(p1)
	s := a.Dot(uh)
	w := a.Sub(uh.Scale(s))
	t := w.Norm()
	wh, err := w.Normalize()
	if err != nil {
		return dst // collinear predecessors
	}
	nh := uh.Cross(wh)

	alpha := (d2*d2 - d3*d3 - r23*r23) / (2 * r23)
	beta := (d1*d1 - d3*d3 - 2*alpha*s - s*s - t*t) / (2 * t)

	csq := d3*d3 - alpha*alpha - beta*beta
	if csq < -tol {
		return dst // spheres do not intersect
	}

	base := p3.Add(uh.Scale(alpha)).Add(wh.Scale(beta))
	if csq <= tol {
		return append(dst, base)
	}

	c := math.Sqrt(csq)

	return append(dst,
		base.Add(nh.Scale(c)),
		base.Sub(nh.Scale(c)))
}

// usedInTrilateration reports whether the order position pos supplies one
// of the embedding distances for level lev.
func usedInTrilateration(pos, lev int) bool {
	return lev-pos >= 1 && lev-pos <= graph.Lookback
}

// edgeAt is a small helper for closures: the stored value between the
// atoms at two order positions.
func (e *Enumerator) edgeAt(posA, posB int) value.Value {
	return e.g.Edge(e.order[posA], e.order[posB])
}
