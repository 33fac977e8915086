// Package enum implements the Branch-and-Prune enumerator for interval
// Discretizable Molecular Distance Geometry Problem (iDMDGP) instances: a
// depth-first search over the BP vertex order that derives candidate
// positions for each atom by trilateration against its three predecessors,
// filters them through a registry of pruning closures, and emits every
// coordinate assignment satisfying the distance and dihedral constraints
// within tolerance.
//
// Key features:
//   - Deterministic base embedding of the first three order vertices (origin,
//     +x axis, upper xy half-plane).
//   - Per-level candidate generation: an orthonormal frame at the nearest
//     predecessor and a three-sphere intersection yielding 0–2 positions;
//     interval lookback edges are discretized into IntervalSamples branches.
//   - Pluggable pruning closures (torsion-angle and distance feasibility)
//     registered per level with per-thread payload lifetimes and
//     test/prune counters.
//   - Iterative descend/backtrack state machine, cancellable at every
//     descent via a shared atomic flag.
//   - Thread partitioning: the subtree prefix up to a shallow split level is
//     enumerated sequentially, its leaves fan out over a fixed worker pool,
//     and solutions merge behind a single mutex.
//
// Concurrency: the peptide and graph are read-only during enumeration and
// shared without locking; each worker owns its search state and pruner
// payloads. Solutions from one worker arrive in left-to-right DFS order of
// its subtree; no cross-worker order is guaranteed (run with
// WithThreads(1) when a deterministic sequence is required).
//
// Errors: setup failures (nil inputs, missing order, bad options) are
// returned by New. Per-branch numerical anomalies — negative trilateration
// discriminants, acos clamps, degenerate frames — are not errors: the
// branch is skipped silently. A failing OnSolution hook cancels the search
// and surfaces as the first error after join.
package enum
