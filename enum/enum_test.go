package enum_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korzhev/idmdgp/enum"
	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/value"
	"github.com/korzhev/idmdgp/vec3"
)

// mkPeptide builds a single-residue peptide with n atoms named A0..A(n-1).
func mkPeptide(t *testing.T, n int) *peptide.Peptide {
	t.Helper()
	p := peptide.New("GLY")
	names := []string{"A0", "A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}
	for i := 0; i < n; i++ {
		_, err := p.AddAtom(0, names[i], "C", 12.011, 0, 1.7)
		require.NoError(t, err)
	}

	return p
}

func deg(d float64) float64 { return d * math.Pi / 180 }

func TestNewValidation(t *testing.T) {
	p := mkPeptide(t, 3)
	g, err := graph.New(3)
	require.NoError(t, err)

	_, err = enum.New(nil, g)
	assert.ErrorIs(t, err, enum.ErrNilPeptide)
	_, err = enum.New(p, nil)
	assert.ErrorIs(t, err, enum.ErrNilGraph)
	_, err = enum.New(p, g)
	assert.ErrorIs(t, err, enum.ErrNoOrder)

	require.NoError(t, g.SetEdge(0, 1, value.Exact(1)))
	require.NoError(t, g.SetEdge(0, 2, value.Exact(1)))
	require.NoError(t, g.SetEdge(1, 2, value.Exact(1)))
	require.NoError(t, g.SetOrder([]int{0, 1, 2}))

	_, err = enum.New(p, g, enum.WithDDFTol(0))
	assert.ErrorIs(t, err, enum.ErrBadTolerance)
	_, err = enum.New(p, g, enum.WithIntervalSamples(1))
	assert.ErrorIs(t, err, enum.ErrBadSamples)
	_, err = enum.New(p, g, enum.WithThreads(0))
	assert.ErrorIs(t, err, enum.ErrBadThreads)
	_, err = enum.New(p, g, enum.WithSplitLevel(-1))
	assert.ErrorIs(t, err, enum.ErrBadSplit)

	_, err = enum.New(p, g)
	assert.NoError(t, err)
}

func TestTriangle(t *testing.T) {
	p := mkPeptide(t, 3)
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.SetEdge(0, 1, value.Exact(1)))
	require.NoError(t, g.SetEdge(0, 2, value.Exact(1)))
	require.NoError(t, g.SetEdge(1, 2, value.Exact(1)))
	require.NoError(t, g.SetOrder([]int{0, 1, 2}))

	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	require.Len(t, sols, 1)

	s := sols[0]
	assert.Equal(t, vec3.New(0, 0, 0), s.Positions[0])
	assert.InDelta(t, 1, s.Positions[1].X, 1e-12)
	assert.InDelta(t, 0, s.Positions[1].Y, 1e-12)
	assert.InDelta(t, 0.5, s.Positions[2].X, 1e-12)
	assert.InDelta(t, math.Sqrt(3)/2, s.Positions[2].Y, 1e-12)
	assert.InDelta(t, 0, s.Positions[2].Z, 1e-12)
	assert.Equal(t, 0, s.Violations)
}

func TestTetrahedron(t *testing.T) {
	p := mkPeptide(t, 4)
	g, err := graph.New(4)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			require.NoError(t, g.SetEdge(i, j, value.Exact(1)))
		}
	}
	require.NoError(t, g.SetOrder([]int{0, 1, 2, 3}))

	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	require.Len(t, sols, 2)

	want := math.Sqrt(2.0 / 3.0)
	var zs []float64
	for _, s := range sols {
		assert.InDelta(t, 0.5, s.Positions[3].X, 1e-9)
		assert.InDelta(t, math.Sqrt(3)/6, s.Positions[3].Y, 1e-9)
		assert.Equal(t, 0, s.Violations)
		zs = append(zs, s.Positions[3].Z)
	}
	sort.Float64s(zs)
	assert.InDelta(t, -want, zs[0], 1e-9)
	assert.InDelta(t, want, zs[1], 1e-9)
}

// intervalChain builds the 4-atom chain with an interval 1–4 edge and an
// improper bound over all four atoms.
func intervalChain(t *testing.T, lo, hi float64) (*peptide.Peptide, *graph.Graph) {
	t.Helper()
	p := mkPeptide(t, 4)
	q := [4]peptide.AtomKey{
		{ResID: 0, Name: "A0"}, {ResID: 0, Name: "A1"},
		{ResID: 0, Name: "A2"}, {ResID: 0, Name: "A3"},
	}
	require.NoError(t, p.AddImproper(q, value.Range(deg(lo), deg(hi))))

	g, err := graph.New(4)
	require.NoError(t, err)
	require.NoError(t, g.SetEdge(0, 1, value.Exact(1.5)))
	require.NoError(t, g.SetEdge(1, 2, value.Exact(1.5)))
	require.NoError(t, g.SetEdge(2, 3, value.Exact(1.5)))
	require.NoError(t, g.SetEdge(0, 2, value.Exact(math.Sqrt(3))))
	require.NoError(t, g.SetEdge(1, 3, value.Exact(math.Sqrt(3))))
	require.NoError(t, g.SetEdge(0, 3, value.Range(2.8, 2.87)))
	require.NoError(t, g.SetOrder([]int{0, 1, 2, 3}))

	return p, g
}

func TestIntervalChainFeasible(t *testing.T) {
	p, g := intervalChain(t, 150, 185)

	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	tol := enum.DefaultDDFTol
	for _, s := range sols {
		d := vec3.Dist(s.Positions[0], s.Positions[3])
		assert.GreaterOrEqual(t, d, 2.8-tol)
		assert.LessOrEqual(t, d, 2.87+tol)

		omega, ok := enum.Dihedral(
			s.Positions[0], s.Positions[1], s.Positions[2], s.Positions[3])
		require.True(t, ok)
		assert.GreaterOrEqual(t, omega, deg(150)-tol)
		assert.LessOrEqual(t, omega, deg(185)+tol)
		assert.Equal(t, 0, s.Violations)
	}

	st := e.Stats()
	assert.NotZero(t, st.Improper.Tests)
	assert.Equal(t, uint64(len(sols)), st.Emitted)
}

func TestIntervalChainInfeasible(t *testing.T) {
	p, g := intervalChain(t, -5, 5)

	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	assert.Empty(t, sols)

	st := e.Stats()
	assert.NotZero(t, st.Improper.Prunes)

	report := e.TAFReport()
	require.Len(t, report, 1)
	assert.Contains(t, report[0], "GLY1")
}

// chainPositions is a generic non-degenerate 8-atom chain.
var chainPositions = []vec3.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 1.5, Y: 0, Z: 0},
	{X: 2.1, Y: 1.3, Z: 0},
	{X: 2.9, Y: 1.7, Z: 1.1},
	{X: 4.0, Y: 2.2, Z: 0.6},
	{X: 4.8, Y: 1.4, Z: 1.9},
	{X: 6.0, Y: 2.5, Z: 1.2},
	{X: 6.7, Y: 1.6, Z: 2.4},
}

// chainGraph builds a graph with exact lookback edges derived from
// chainPositions; every reflection branch stays feasible, so the instance
// has 2^(n-3) solutions.
func chainGraph(t *testing.T, n int) (*peptide.Peptide, *graph.Graph) {
	t.Helper()
	p := mkPeptide(t, n)
	g, err := graph.New(n)
	require.NoError(t, err)

	set := func(i, j int) {
		require.NoError(t, g.SetEdge(i, j, value.Exact(vec3.Dist(chainPositions[i], chainPositions[j]))))
	}
	set(0, 1)
	set(0, 2)
	set(1, 2)
	order := []int{0, 1, 2}
	for k := 3; k < n; k++ {
		set(k-3, k)
		set(k-2, k)
		set(k-1, k)
		order = append(order, k)
	}
	require.NoError(t, g.SetOrder(order))

	return p, g
}

func TestChainEnumeratesAllReflections(t *testing.T) {
	p, g := chainGraph(t, 8)
	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	assert.Len(t, sols, 32)

	tol := enum.DefaultDDFTol
	for i, s := range sols {
		assert.Equal(t, vec3.New(0, 0, 0), s.Positions[0])
		assert.InDelta(t, 0, s.Positions[1].Y, 1e-12)
		assert.InDelta(t, 0, s.Positions[1].Z, 1e-12)
		assert.InDelta(t, 0, s.Positions[2].Z, 1e-12)
		assert.GreaterOrEqual(t, s.Positions[2].Y, 0.0)
		assert.Equal(t, 0, s.Violations)
		assert.LessOrEqual(t, s.Err, tol)
		if i > 0 {
			assert.Greater(t, s.RMSDPrev, 0.0)
		}
	}
}

func TestDihedralDistanceLaw(t *testing.T) {
	p, g := chainGraph(t, 6)
	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	require.NotEmpty(t, sols)

	// The closed-form distance dihedral matches the coordinate dihedral
	// (up to the sign distances cannot see) on every consecutive quadruple
	// of the first emitted solution.
	s := sols[0]
	for a := 0; a+3 < 6; a++ {
		x := s.Positions
		fromCoords, ok := enum.Dihedral(x[a], x[a+1], x[a+2], x[a+3])
		require.True(t, ok)
		fromDists, err := value.DistancesToDihedral(
			vec3.Dist(x[a], x[a+1]), vec3.Dist(x[a], x[a+2]), vec3.Dist(x[a], x[a+3]),
			vec3.Dist(x[a+1], x[a+2]), vec3.Dist(x[a+1], x[a+3]), vec3.Dist(x[a+2], x[a+3]))
		require.NoError(t, err)
		assert.InDelta(t, math.Abs(fromCoords), fromDists, enum.DefaultDDFTol)
	}
}

func TestDistancePrunerCutsInconsistentBranches(t *testing.T) {
	p, g := chainGraph(t, 8)
	// A long-range exact edge beyond the lookback window activates the
	// distance pruner at level 4.
	require.NoError(t, g.SetEdge(0, 4, value.Exact(vec3.Dist(chainPositions[0], chainPositions[4]))))
	require.NoError(t, g.SetOrder([]int{0, 1, 2, 3, 4, 5, 6, 7}))

	e, err := enum.New(p, g)
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)

	// Only the branch pairs that preserve the 0–4 distance survive.
	assert.Len(t, sols, 16)
	st := e.Stats()
	assert.NotZero(t, st.Distance.Tests)
	assert.NotZero(t, st.Distance.Prunes)
	for _, s := range sols {
		assert.InDelta(t,
			vec3.Dist(chainPositions[0], chainPositions[4]),
			vec3.Dist(s.Positions[0], s.Positions[4]), enum.DefaultDDFTol)
	}
}

func TestEmitLimit(t *testing.T) {
	p, g := chainGraph(t, 8)
	e, err := enum.New(p, g, enum.WithEmitLimit(3))
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	assert.Len(t, sols, 3)
}

func TestCancellationAfterFirstSolution(t *testing.T) {
	p, g := chainGraph(t, 8)

	var e *enum.Enumerator
	e, err := enum.New(p, g, enum.WithOnSolution(func(*enum.Solution) error {
		e.Cancel()

		return nil
	}))
	require.NoError(t, err)

	sols, err := e.Run()
	require.NoError(t, err)
	assert.Len(t, sols, 1)
}

func TestOnSolutionErrorSurfaces(t *testing.T) {
	p, g := chainGraph(t, 8)
	boom := errors.New("sink full")

	e, err := enum.New(p, g, enum.WithOnSolution(func(*enum.Solution) error {
		return boom
	}))
	require.NoError(t, err)

	sols, err := e.Run()
	assert.ErrorIs(t, err, boom)
	assert.Len(t, sols, 1)
}

// fingerprints returns the sorted fingerprint multiset of a solution list.
func fingerprints(sols []enum.Solution) []string {
	out := make([]string, 0, len(sols))
	for i := range sols {
		out = append(out, sols[i].Fingerprint())
	}
	sort.Strings(out)

	return out
}

func TestParallelMatchesSequential(t *testing.T) {
	p, g := chainGraph(t, 8)

	seq, err := enum.New(p, g, enum.WithThreads(1))
	require.NoError(t, err)
	seqSols, err := seq.Run()
	require.NoError(t, err)

	par, err := enum.New(p, g, enum.WithThreads(4))
	require.NoError(t, err)
	parSols, err := par.Run()
	require.NoError(t, err)

	assert.Equal(t, fingerprints(seqSols), fingerprints(parSols))
	assert.Len(t, parSols, 32)
}

func TestExplicitSplitLevel(t *testing.T) {
	p, g := chainGraph(t, 8)

	e, err := enum.New(p, g, enum.WithThreads(3), enum.WithSplitLevel(5))
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)
	assert.Len(t, sols, 32)
}

func TestIntervalSamplesBranching(t *testing.T) {
	p, g := intervalChain(t, -360, 360) // bound never prunes

	e, err := enum.New(p, g, enum.WithIntervalSamples(4))
	require.NoError(t, err)
	sols, err := e.Run()
	require.NoError(t, err)

	// Four samples, each with a mirror pair.
	assert.Len(t, sols, 8)
}
