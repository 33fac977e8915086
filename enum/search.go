package enum

// run drives the descend/backtrack state machine of one thread over the
// levels [th.root, last], invoking emit for every completed embedding.
//
// The machine mirrors the states of the search: descend advances the
// branch cursor at the current level and places the next candidate,
// backtrack releases the level's payloads and returns to the parent, emit
// hands a completed embedding to the sink and continues as if pruned. The
// cancellation flag is polled at the top of every descend; a set flag
// unwinds the stack without further emission.
func (th *threadState) run(last int, emit func(*threadState) error) error {
	e := th.e

	// The whole range may already be fixed by the prefix (e.g. an order
	// of exactly three vertices): a single completed embedding.
	if th.root > last {
		if e.cancelled() {
			return nil
		}

		return emit(th)
	}

	lev := th.root
	th.enter(lev)
	for {
		// Cancellation boundary.
		if e.cancelled() {
			th.unwind(lev)

			return nil
		}

		slot := &th.state[lev]
		slot.branch++

		// Branches exhausted: backtrack.
		if slot.branch >= len(slot.cands) {
			th.release(lev)
			lev--
			if lev < th.root {
				return nil
			}
			continue
		}

		// Place the candidate and run the level's closures in
		// registration order.
		slot.pos = slot.cands[slot.branch]
		th.stats.Nodes++
		if th.applyClosures(lev) == Prune {
			continue
		}

		// Completed embedding: emit, then continue with the sibling
		// branch.
		if lev == last {
			if err := emit(th); err != nil {
				th.unwind(lev)

				return err
			}
			continue
		}

		// Descend.
		lev++
		th.enter(lev)
	}
}
