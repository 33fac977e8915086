package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `# triangle.dmdgp
# automatically generated by idmdgp

# sequence:
# GLY

# explicit sidechains:
#

# vertices: 3
begin vertices
1  *   *   *   # GLY1 N    (NH1)
2  *   *   *   # GLY1 CA   (CT1)
3  *   *   *   # GLY1 C    (CC)
end vertices

# exact edges:    3
# interval edges: 0
begin edges
1 2 D    1.000000             # GLY1 N    -- GLY1 CA
1 3 D    1.000000             # GLY1 N    -- GLY1 C
2 3 D    1.000000             # GLY1 CA   -- GLY1 C
end edges

begin bp_order
1 # GLY1 N
2 # GLY1 CA
3 # GLY1 C
end bp_order
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triangle.dmdgp")
	require.NoError(t, os.WriteFile(path, []byte(triangle), 0o644))

	return path
}

func TestSolveCommand(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "sols.xyz")
	db := filepath.Join(t.TempDir(), "sols.db")

	err := application().Run([]string{"idmdgp", "solve", "-o", out, "--db", db, in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "solution 1 violations=0")
	assert.Contains(t, string(data), "CA")

	_, err = os.Stat(db)
	assert.NoError(t, err)
}

func TestSolveCommandRequiresInput(t *testing.T) {
	err := application().Run([]string{"idmdgp", "solve"})
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "normalized.dmdgp")

	err := application().Run([]string{"idmdgp", "convert", "-o", out, in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "begin vertices")
	assert.Contains(t, string(data), "begin bp_order")
}
