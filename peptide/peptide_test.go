package peptide_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korzhev/idmdgp/graph"
	"github.com/korzhev/idmdgp/peptide"
	"github.com/korzhev/idmdgp/value"
)

func TestAddFindAtom(t *testing.T) {
	p := peptide.New("ALA", "GLY")

	id, err := p.AddAtom(0, "N", "NH1", 14.007, -0.47, 1.65)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	id, err = p.AddAtom(0, "CA", "CT1", 12.011, 0.07, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = p.AddAtom(1, "N", "NH1", 14.007, -0.47, 1.65)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	got, err := p.FindAtom(1, "N")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = p.FindAtom(0, "CB")
	assert.ErrorIs(t, err, peptide.ErrUnknownAtom)
	_, err = p.FindAtom(5, "N")
	assert.ErrorIs(t, err, peptide.ErrUnknownResidue)
	_, err = p.AddAtom(0, "N", "NH1", 14.007, -0.47, 1.65)
	assert.ErrorIs(t, err, peptide.ErrDuplicateAtom)
}

func TestModifyAtom(t *testing.T) {
	p := peptide.New("ALA")
	_, err := p.AddAtom(0, "CA", "CT1", 12.011, 0.07, 2.0)
	require.NoError(t, err)

	require.NoError(t, p.ModifyAtom(0, "CA", "CT2", 12.0, 0.1, 1.9))
	id, err := p.FindAtom(0, "CA")
	require.NoError(t, err)
	assert.Equal(t, "CT2", p.Atoms[id].Type)
	assert.Equal(t, 12.0, p.Atoms[id].Mass)

	assert.ErrorIs(t, p.ModifyAtom(0, "CB", "CT2", 0, 0, 0), peptide.ErrUnknownAtom)
}

// backbone builds a single-residue peptide with four atoms (N, CA, C, O)
// and no dihedrals.
func backbone(t *testing.T) *peptide.Peptide {
	t.Helper()
	p := peptide.New("ALA")
	for _, n := range []string{"N", "CA", "C", "O"} {
		_, err := p.AddAtom(0, n, n, 1, 0, 1)
		require.NoError(t, err)
	}

	return p
}

func quad(names ...string) [4]peptide.AtomKey {
	var k [4]peptide.AtomKey
	for i, n := range names {
		k[i] = peptide.AtomKey{ResID: 0, Name: n}
	}

	return k
}

func TestAddDeleteTorsion(t *testing.T) {
	p := backbone(t)
	q := quad("N", "CA", "C", "O")

	require.NoError(t, p.AddTorsion(q, value.Exact(math.Pi)))
	assert.Len(t, p.Torsions, 1)

	// Duplicate in either direction is rejected.
	assert.ErrorIs(t, p.AddTorsion(q, value.Exact(0)), peptide.ErrDuplicateDihedral)
	assert.ErrorIs(t, p.AddTorsion(quad("O", "C", "CA", "N"), value.Exact(0)),
		peptide.ErrDuplicateDihedral)

	// Improper array is independent.
	require.NoError(t, p.AddImproper(q, value.Range(-0.1, 0.1)))
	assert.Len(t, p.Impropers, 1)

	require.NoError(t, p.DeleteTorsion(q))
	assert.Empty(t, p.Torsions)
	assert.Len(t, p.Impropers, 1)
}

func TestAddTorsionRejectsMalformed(t *testing.T) {
	p := backbone(t)

	assert.ErrorIs(t, p.AddTorsion(quad("N", "CA", "C", "N"), value.Exact(0)),
		peptide.ErrBadDihedral)
	assert.ErrorIs(t, p.AddTorsion(quad("N", "CA", "C", "XX"), value.Exact(0)),
		peptide.ErrUnknownAtom)
	assert.ErrorIs(t, p.AddTorsion(quad("N", "CA", "C", "O"), value.Undef()),
		peptide.ErrBadDihedral)
}

func TestDeleteDihedralsWith(t *testing.T) {
	p := backbone(t)
	require.NoError(t, p.AddTorsion(quad("N", "CA", "C", "O"), value.Exact(0)))

	require.NoError(t, p.DeleteTorsionsWith(0, "O"))
	assert.Empty(t, p.Torsions)
}

func TestDeleteAtomRenumbers(t *testing.T) {
	p := backbone(t)
	require.NoError(t, p.AddTorsion(quad("N", "CA", "C", "O"), value.Exact(0)))

	// Deleting CA (id 1) drops the torsion and shifts C and O down.
	require.NoError(t, p.DeleteAtom(0, "CA"))
	assert.Empty(t, p.Torsions)
	assert.Equal(t, 3, p.NAtoms())

	id, err := p.FindAtom(0, "C")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	id, err = p.FindAtom(0, "O")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestGraphTorsions(t *testing.T) {
	p := backbone(t)

	// Exact trans torsion on the planar zigzag example.
	require.NoError(t, p.AddTorsion(quad("N", "CA", "C", "O"), value.Exact(math.Pi)))

	g, err := graph.New(4)
	require.NoError(t, err)
	require.NoError(t, g.SetEdge(0, 1, value.Exact(1)))
	require.NoError(t, g.SetEdge(0, 2, value.Exact(math.Sqrt2)))
	require.NoError(t, g.SetEdge(1, 2, value.Exact(1)))
	require.NoError(t, g.SetEdge(1, 3, value.Exact(math.Sqrt2)))
	require.NoError(t, g.SetEdge(2, 3, value.Exact(1)))

	require.NoError(t, p.GraphTorsions(g))

	d03 := g.Edge(0, 3)
	assert.Equal(t, value.Scalar, d03.Kind)
	assert.InDelta(t, math.Sqrt(5), d03.Mid(), 1e-9)
}

func TestGraphTorsionsSkipsIncomplete(t *testing.T) {
	p := backbone(t)
	require.NoError(t, p.AddTorsion(quad("N", "CA", "C", "O"), value.Exact(math.Pi)))

	g, err := graph.New(4)
	require.NoError(t, err)
	require.NoError(t, g.SetEdge(0, 1, value.Exact(1)))

	require.NoError(t, p.GraphTorsions(g))
	assert.Equal(t, value.Undefined, g.HasEdge(0, 3))
}
