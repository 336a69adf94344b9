package readfiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gonedelec/types"
)

func TestReadGambitMesh(t *testing.T) {
	m, materials, err := ReadGambit2DFrom(strings.NewReader(gambitSquare))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, 2, m.NumCells())
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 5, m.NumEdges())
	assert.Equal(t, 4, m.NumBoundaryEdges())
	assert.Equal(t, [3]int{0, 2, 3}, m.EToV[1])
	assert.Equal(t, []float64{0, 1, 1, 0}, m.VX)
	assert.Equal(t, []float64{0, 0, 1, 1}, m.VY)
	for c := 0; c < m.NumCells(); c++ {
		assert.Greater(t, m.CellGeometry(c).DetBk, 0.)
	}

	require.Len(t, materials, 1)
	assert.Equal(t, "fluid", materials[0].Title)
	assert.Equal(t, 2., materials[0].MaterialValue)
	assert.Equal(t, []int{0, 1}, materials[0].Elements)

	// Bottom and right of cell 1, top and left of cell 2
	assert.Equal(t, []types.BCTAG{"inflow", "wall"}, m.Tags())
	assert.Equal(t, []types.EdgeKey{
		types.NewEdgeKey([2]int{0, 1}), types.NewEdgeKey([2]int{1, 2}),
	}, m.BCEdges[types.NewBCTAG("wall")])
	assert.Equal(t, []types.EdgeKey{
		types.NewEdgeKey([2]int{2, 3}), types.NewEdgeKey([2]int{3, 0}),
	}, m.BCEdges[types.NewBCTAG("inflow")])
	for _, tag := range m.Tags() {
		for _, ek := range m.BCEdges[tag] {
			en, ok := m.EdgeIndex[ek]
			require.True(t, ok, "tag %s", tag)
			assert.True(t, m.IsBoundaryEdge(en))
		}
	}
}

func TestReadGambitFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "square.neu")
	require.NoError(t, os.WriteFile(fileName, []byte(gambitSquare), 0644))
	m, err := ReadGambit2D(fileName, true)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumCells())
	_, err = ReadGambit2D(filepath.Join(t.TempDir(), "missing.neu"), false)
	assert.Error(t, err)
}

func TestReadGambitErrors(t *testing.T) {
	for name, replace := range map[string][2]string{
		"3D":              {"4         2         1         2         2", "4         2         1         2         3"},
		"quadrilateral":   {"1    3  3        1       2       3", "1    2  4        1       2       3"},
		"node range":      {"2    3  3        1       3       4", "2    3  3        1       3       5"},
		"group header":    {"GROUP:", "GRUPPE:"},
		"group element":   {"       1       2\n", "       1       7\n"},
		"bc face":         {"       2        3       3", "       2        3       4"},
		"truncated":       {"       2        3       3\nENDOFSECTION\n", ""},
		"short header":    {"4         2         1         2         2         2", "4 2"},
		"bad coordinates": {"4   0.0000000000e+00", "4   abc"},
	} {
		input := strings.Replace(gambitSquare, replace[0], replace[1], 1)
		require.NotEqual(t, gambitSquare, input, name)
		_, _, err := ReadGambit2DFrom(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}

var gambitSquare = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
square
PROGRAM:                Gambit     VERSION:  2.0.0
Oct 2026
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         1         2         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.0000000000e+00   0.0000000000e+00
         2   1.0000000000e+00   0.0000000000e+00
         3   1.0000000000e+00   1.0000000000e+00
         4   0.0000000000e+00   1.0000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.0.0
         1    3  3        1       2       3
         2    3  3        1       3       4
ENDOFSECTION
       ELEMENT GROUP 2.0.0
GROUP:          1 ELEMENTS:          2 MATERIAL:          2 NFLAGS:          1
                           fluid
       0
       1       2
ENDOFSECTION
 BOUNDARY CONDITIONS 2.0.0
                           Wall       1       2       0       6
       1        3       1
       1        3       2
ENDOFSECTION
 BOUNDARY CONDITIONS 2.0.0
                          Inflow       1       2       0       6
       2        3       2
       2        3       3
ENDOFSECTION
`
