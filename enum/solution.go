package enum

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"lukechampine.com/blake3"

	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/vec3"
)

// fingerprintQuantum is the coordinate grid used when hashing solutions:
// positions closer than this collapse onto the same fingerprint.
const fingerprintQuantum = 1e-6

// Solution is one embedding emitted by the search: a position per atom,
// the constraint-violation census, and the distance to the previously
// emitted solution.
type Solution struct {
	// Positions holds one coordinate per atom id; atoms outside the BP
	// order stay at the origin.
	Positions []vec3.Vec3

	// Violations counts the exact/interval edges and dihedral bounds
	// broken by more than the tolerance (zero for a valid embedding).
	Violations int

	// Err is the largest constraint violation (the DMDGP error).
	Err float64

	// RMSDPrev is the plain per-atom RMSD to the previously emitted
	// solution; zero for the first.
	RMSDPrev float64
}

// Fingerprint returns a Blake3 hash of the coordinates quantized to the
// fingerprint grid: a canonical identity for deduplication across runs and
// worker counts.
func (s *Solution) Fingerprint() string {
	buf := make([]byte, 0, 24*len(s.Positions))
	var word [8]byte
	for _, p := range s.Positions {
		for _, x := range [3]float64{p.X, p.Y, p.Z} {
			q := int64(math.Round(x / fingerprintQuantum))
			binary.LittleEndian.PutUint64(word[:], uint64(q))
			buf = append(buf, word[:]...)
		}
	}
	sum := blake3.Sum256(buf)

	return hex.EncodeToString(sum[:])
}

// rmsd computes the plain per-atom root-mean-square deviation between two
// position sets over the embedded atoms.
func rmsd(a, b []vec3.Vec3, embedded []int) float64 {
	if len(embedded) == 0 {
		return 0
	}
	var sum float64
	for _, id := range embedded {
		sum += vec3.SqDist(a[id], b[id])
	}

	return math.Sqrt(sum / float64(len(embedded)))
}

// evaluate counts constraint violations of a full embedding and the
// largest one.
func (e *Enumerator) evaluate(positions []vec3.Vec3) (int, float64) {
	violations := 0
	maxErr := 0.0
	tol := e.opts.DDFTol

	record := func(err float64) {
		if err > maxErr {
			maxErr = err
		}
		if err > tol {
			violations++
		}
	}

	// Distance constraints over embedded pairs.
	for ai := 0; ai < e.g.N(); ai++ {
		if e.levelOf[ai] < 0 {
			continue
		}
		for aj := ai + 1; aj < e.g.N(); aj++ {
			if e.levelOf[aj] < 0 {
				continue
			}
			v := e.g.Edge(ai, aj)
			if v.IsUndefined() {
				continue
			}
			d := vec3.Dist(positions[ai], positions[aj])
			record(math.Max(0, math.Max(v.L-d, d-v.U)))
		}
	}

	// Dihedral bounds, compared linearly on the endpoints.
	check := func(arr []peptide.Dihedral) {
		for _, dh := range arr {
			ok := true
			for _, a := range dh.AtomID {
				if e.levelOf[a] < 0 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			omega, defined := Dihedral(
				positions[dh.AtomID[0]], positions[dh.AtomID[1]],
				positions[dh.AtomID[2]], positions[dh.AtomID[3]])
			if !defined {
				continue
			}
			record(math.Max(0, math.Max(dh.Ang.L-omega, omega-dh.Ang.U)))
		}
	}
	check(e.pep.Torsions)
	check(e.pep.Impropers)

	return violations, maxErr
}

// emit copies the thread's embedding into a new Solution and hands it to
// the serialized sink. Reaching the emission limit or a failing hook
// cancels the search.
func (e *Enumerator) emit(th *threadState) error {
	positions := make([]vec3.Vec3, e.g.N())
	for lev, id := range e.order {
		positions[id] = th.state[lev].pos
	}

	violations, maxErr := e.evaluate(positions)
	sol := Solution{
		Positions:  positions,
		Violations: violations,
		Err:        maxErr,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The flag may have been raised while this embedding was completing;
	// no emission happens past the cancellation point.
	if e.cancel.Load() {
		return nil
	}

	if e.prev != nil {
		sol.RMSDPrev = rmsd(positions, e.prev, e.order)
	}
	e.prev = positions
	e.sols = append(e.sols, sol)

	if e.opts.OnSolution != nil {
		if err := e.opts.OnSolution(&sol); err != nil {
			if e.firstErr == nil {
				e.firstErr = err
			}
			e.cancel.Store(true)

			return err
		}
	}
	if e.opts.EmitLimit > 0 && len(e.sols) >= e.opts.EmitLimit {
		e.cancel.Store(true)
	}

	return nil
}
