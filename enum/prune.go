package enum

// pruner is an entry of the pruning registry. init is invoked when a
// thread first enters a level and returns the closures whose prerequisites
// materialize exactly there: the newest atom the closure tests was just
// embedded and every other atom it needs sits at a lower level. This keeps
// each constraint from being rechecked higher in the tree.
type pruner interface {
	// init builds the closures registered at lev; an empty slice when no
	// prerequisite completes at this level.
	init(e *Enumerator, lev int) []closure
}

// closure is a payload-bearing pruning test registered at one level. It is
// owned by the registering thread level: apply runs after a candidate is
// placed there, and release folds the payload counters into the thread
// statistics when the search backtracks past the level.
type closure interface {
	apply(e *Enumerator, th *threadState, lev int) Verdict
	release(th *threadState)
}
