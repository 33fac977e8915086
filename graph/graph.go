package graph

import (
	"errors"

	"github.com/korzhev/idmdgp/value"
)

// Lookback is the number of immediately preceding order positions a vertex
// draws its embedding distances from.
const Lookback = 3

var (
	// ErrBadSize indicates a non-positive vertex count.
	ErrBadSize = errors.New("graph: vertex count must be > 0")

	// ErrOutOfRange indicates a vertex index outside [0,N).
	ErrOutOfRange = errors.New("graph: vertex index out of range")

	// ErrSelfEdge indicates an attempt to set a distance from a vertex to
	// itself.
	ErrSelfEdge = errors.New("graph: self edge")

	// ErrUndefinedEdge indicates an attempt to store an undefined value or
	// an update whose intersection with the stored bounds is empty.
	ErrUndefinedEdge = errors.New("graph: undefined or contradictory edge value")

	// ErrInvalidOrder indicates a BP order violating the embedding
	// prerequisites.
	ErrInvalidOrder = errors.New("graph: invalid BP order")
)

// Graph is a dense symmetric distance graph with an optional BP order.
type Graph struct {
	n     int
	edges []value.Value // flat row-major N×N, mirrored
	order []int
}

// New creates an empty distance graph over n vertices.
func New(n int) (*Graph, error) {
	if n <= 0 {
		return nil, ErrBadSize
	}

	return &Graph{n: n, edges: make([]value.Value, n*n)}, nil
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// check validates a vertex pair.
func (g *Graph) check(i, j int) error {
	if i < 0 || i >= g.n || j < 0 || j >= g.n {
		return ErrOutOfRange
	}
	if i == j {
		return ErrSelfEdge
	}

	return nil
}

// SetEdge stores the distance value v on the edge (i,j). Updates are
// type-preserving: when an edge already holds a value the stored bounds are
// intersected with v, and an empty intersection is ErrUndefinedEdge.
func (g *Graph) SetEdge(i, j int, v value.Value) error {
	if err := g.check(i, j); err != nil {
		return err
	}
	if v.IsUndefined() {
		return ErrUndefinedEdge
	}
	merged := value.Bound(g.edges[i*g.n+j], v)
	if merged.IsUndefined() {
		return ErrUndefinedEdge
	}
	g.edges[i*g.n+j] = merged
	g.edges[j*g.n+i] = merged

	return nil
}

// Edge returns the value stored on (i,j); undefined for missing edges or
// out-of-range indices.
func (g *Graph) Edge(i, j int) value.Value {
	if g.check(i, j) != nil {
		return value.Undef()
	}

	return g.edges[i*g.n+j]
}

// HasEdge returns the kind of the value stored on (i,j).
func (g *Graph) HasEdge(i, j int) value.Kind {
	return g.Edge(i, j).Kind
}

// CountEdges returns the number of exact and interval edges.
func (g *Graph) CountEdges() (exact, interval int) {
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			switch g.edges[i*g.n+j].Kind {
			case value.Scalar:
				exact++
			case value.Interval:
				interval++
			}
		}
	}

	return exact, interval
}

// SetOrder installs the BP order after validating it:
//   - at least Lookback positions, every entry a distinct valid vertex;
//   - pairwise exact distances among the first three (they are embedded
//     deterministically);
//   - for every position k ≥ 3, defined edges to the three immediately
//     preceding positions, at most one of which is an interval.
func (g *Graph) SetOrder(order []int) error {
	if len(order) < Lookback || len(order) > g.n {
		return ErrInvalidOrder
	}
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		if id < 0 || id >= g.n || seen[id] {
			return ErrInvalidOrder
		}
		seen[id] = true
	}

	// Base triangle: three pairwise exact distances.
	for i := 0; i < Lookback; i++ {
		for j := i + 1; j < Lookback; j++ {
			if g.HasEdge(order[i], order[j]) != value.Scalar {
				return ErrInvalidOrder
			}
		}
	}

	// Discretization prerequisites for the tail.
	for k := Lookback; k < len(order); k++ {
		intervals := 0
		for b := 1; b <= Lookback; b++ {
			switch g.HasEdge(order[k-b], order[k]) {
			case value.Scalar:
			case value.Interval:
				intervals++
			default:
				return ErrInvalidOrder
			}
		}
		if intervals > 1 {
			return ErrInvalidOrder
		}
	}

	g.order = append([]int(nil), order...)

	return nil
}

// Order returns the installed BP order (the caller must not mutate it).
func (g *Graph) Order() []int { return g.order }

// NOrder returns the length of the BP order.
func (g *Graph) NOrder() int { return len(g.order) }
