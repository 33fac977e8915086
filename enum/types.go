package enum

import (
	"errors"
)

// Default knobs.
const (
	// DefaultDDFTol is the absolute tolerance shared by distance and
	// dihedral feasibility checks.
	DefaultDDFTol = 1e-3

	// DefaultIntervalSamples is the discretization count per interval
	// lookback edge.
	DefaultIntervalSamples = 5

	// DefaultThreads is the worker count.
	DefaultThreads = 1
)

var (
	// ErrNilPeptide indicates a nil peptide was passed to New.
	ErrNilPeptide = errors.New("enum: peptide is nil")

	// ErrNilGraph indicates a nil distance graph was passed to New.
	ErrNilGraph = errors.New("enum: graph is nil")

	// ErrNoOrder indicates the graph carries no BP order.
	ErrNoOrder = errors.New("enum: graph has no BP order")

	// ErrBadTolerance indicates a non-positive DDF tolerance.
	ErrBadTolerance = errors.New("enum: tolerance must be > 0")

	// ErrBadSamples indicates an interval sample count below 2.
	ErrBadSamples = errors.New("enum: interval samples must be >= 2")

	// ErrBadThreads indicates a worker count below 1.
	ErrBadThreads = errors.New("enum: thread count must be >= 1")

	// ErrBadSplit indicates a negative split level.
	ErrBadSplit = errors.New("enum: split level must be >= 0")

	// ErrBaseEmbedding indicates the first three order vertices could not
	// be embedded (degenerate base triangle).
	ErrBaseEmbedding = errors.New("enum: degenerate base embedding")
)

// Option configures the enumerator. Use with New(p, g, opts...).
type Option func(*Options)

// Options holds the enumerator configuration. Zero value is not meaningful;
// use DefaultOptions and override fields as needed.
type Options struct {
	// DDFTol is the absolute tolerance applied to distance and dihedral
	// feasibility checks, and to the trilateration discriminant.
	// Default: 1e-3.
	DDFTol float64

	// IntervalSamples is the number of distances sampled from an interval
	// lookback edge (endpoint-inclusive uniform grid, symmetric about the
	// midpoint). Minimum 2. Default: 5.
	IntervalSamples int

	// Threads is the number of workers exploring the search tree.
	// Default: 1.
	Threads int

	// EmitLimit caps the number of emitted solutions; reaching it cancels
	// the search. Zero means unlimited. Default: 0.
	EmitLimit int

	// SplitLevel is the order level at which the search tree fans out
	// across workers. Zero selects 2 + ⌈log₂ Threads⌉ automatically.
	SplitLevel int

	// OnSolution, if non-nil, is invoked under the emission lock for every
	// solution. Returning an error cancels the search; the first such
	// error is returned after join.
	OnSolution func(*Solution) error
}

// DefaultOptions returns the documented defaults: tolerance 1e-3, five
// interval samples, a single worker, unlimited emission, automatic split.
func DefaultOptions() Options {
	return Options{
		DDFTol:          DefaultDDFTol,
		IntervalSamples: DefaultIntervalSamples,
		Threads:         DefaultThreads,
		EmitLimit:       0,
		SplitLevel:      0,
		OnSolution:      nil,
	}
}

// WithDDFTol sets the distance/dihedral tolerance.
func WithDDFTol(tol float64) Option {
	return func(o *Options) { o.DDFTol = tol }
}

// WithIntervalSamples sets the interval-edge discretization count.
func WithIntervalSamples(n int) Option {
	return func(o *Options) { o.IntervalSamples = n }
}

// WithThreads sets the worker count.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}

// WithEmitLimit caps the number of emitted solutions (0 = unlimited).
func WithEmitLimit(n int) Option {
	return func(o *Options) { o.EmitLimit = n }
}

// WithSplitLevel fixes the thread-partitioning level (0 = automatic).
func WithSplitLevel(level int) Option {
	return func(o *Options) { o.SplitLevel = level }
}

// WithOnSolution installs a per-solution hook, called under the emission
// lock. A non-nil return cancels the search.
func WithOnSolution(fn func(*Solution) error) Option {
	return func(o *Options) { o.OnSolution = fn }
}

// validate rejects malformed option sets.
func (o Options) validate() error {
	switch {
	case o.DDFTol <= 0:
		return ErrBadTolerance
	case o.IntervalSamples < 2:
		return ErrBadSamples
	case o.Threads < 1:
		return ErrBadThreads
	case o.SplitLevel < 0:
		return ErrBadSplit
	}

	return nil
}

// Verdict is the outcome of a pruning closure.
type Verdict int

const (
	// Keep lets the search continue below the candidate.
	Keep Verdict = iota

	// Prune discards the candidate and its subtree.
	Prune
)

// PruneStats counts feasibility tests and the prunes among them.
type PruneStats struct {
	Tests  uint64
	Prunes uint64
}

// add folds src into s.
func (s *PruneStats) add(src PruneStats) {
	s.Tests += src.Tests
	s.Prunes += src.Prunes
}

// Stats aggregates enumeration counters across all workers.
type Stats struct {
	// Torsion and Improper are the torsion-angle feasibility counters.
	Torsion  PruneStats
	Improper PruneStats

	// Distance and Interval are the exact/interval distance feasibility
	// counters.
	Distance PruneStats
	Interval PruneStats

	// Nodes is the number of candidate placements attempted.
	Nodes uint64

	// Emitted is the number of solutions emitted.
	Emitted uint64

	// TorsionDetail and ImproperDetail hold per-quadruple TAF counters
	// keyed by atom indices.
	TorsionDetail  map[[4]int]PruneStats
	ImproperDetail map[[4]int]PruneStats
}
