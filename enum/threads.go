package enum

import (
	"math/bits"
	"sync"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/vec3"
)

// workItem is one leaf of the prefix subtree: the fixed positions of every
// level below the split.
type workItem []vec3.Vec3

// Run executes the search and returns the emitted solutions. A single
// Enumerator runs once; construct a new one to re-enumerate.
//
// With one worker (or a split beyond the last level) the whole tree
// is explored sequentially. Otherwise the prefix up to the split level is
// enumerated first and its leaves are distributed over a fixed pool of
// workers, each owning its own search state and payloads; solutions merge
// behind the emission lock and counters aggregate at join.
func (e *Enumerator) Run() ([]Solution, error) {
	last := len(e.order) - 1
	split := e.splitLevel()

	emit := func(th *threadState) error { return e.emit(th) }

	if e.opts.Threads == 1 || split > last {
		th := e.newThread(graph.Lookback)
		err := th.run(last, emit)
		e.foldStats(&th.stats)

		return e.finish(err)
	}

	// Prefix pass: enumerate levels [3, split) sequentially, collecting
	// one work item per feasible partial embedding.
	items := make([]workItem, 0)
	prefix := e.newThread(graph.Lookback)
	err := prefix.run(split-1, func(th *threadState) error {
		item := make(workItem, split)
		for lev := 0; lev < split; lev++ {
			item[lev] = th.state[lev].pos
		}
		items = append(items, item)

		return nil
	})
	e.foldStats(&prefix.stats)
	if err != nil {
		return e.finish(err)
	}

	// Fan the leaves out over the worker pool.
	queue := make(chan workItem, len(items))
	for _, it := range items {
		queue <- it
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < e.opts.Threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				th := e.newThread(split)
				th.seedPrefix(item)
				if err := th.run(last, emit); err != nil {
					e.setErr(err)
				}
				e.foldStats(&th.stats)
				if e.cancelled() && e.firstError() != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	return e.finish(nil)
}

// splitLevel resolves the configured or automatic thread-partitioning
// level: 2 + ⌈log₂ T⌉, never below the first searched level.
func (e *Enumerator) splitLevel() int {
	split := e.opts.SplitLevel
	if split == 0 {
		split = 2 + ceilLog2(e.opts.Threads)
	}
	if split < graph.Lookback {
		split = graph.Lookback
	}

	return split
}

// ceilLog2 returns ⌈log₂ n⌉ for n ≥ 1.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

// firstError returns the first recorded worker error.
func (e *Enumerator) firstError() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.firstErr
}

// finish snapshots the sink and surfaces the first error.
func (e *Enumerator) finish(err error) ([]Solution, error) {
	e.mu.Lock()
	sols, ferr := e.sols, e.firstErr
	e.mu.Unlock()

	e.smu.Lock()
	e.stats.Emitted = uint64(len(sols))
	e.smu.Unlock()

	if ferr != nil {
		return sols, ferr
	}

	return sols, err
}
