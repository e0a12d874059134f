package chooser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferActiveSpace(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		electrons *int
		orbitals  *int
	}{
		{"label in file name", "mr_benzene_10-10.log", intPtr(10), intPtr(10)},
		{"asymmetric label", "/calc/pyridine_14-12.csv", intPtr(14), intPtr(12)},
		{"no label", "benzene.csv", nil, nil},
		{"no label with directory", "/tmp/runs/benzene.log", nil, nil},
		{"label from parent directory", "/data/6-5/casscf.log", intPtr(6), intPtr(5)},
		{"file name beats parent directory", "/data/6-5/calc_8-8.log", intPtr(8), intPtr(8)},
		{"zero electrons", "calc_0-4.log", intPtr(0), intPtr(4)},
		{"leading zeros", "calc_010-008.log", intPtr(10), intPtr(8)},
		{"label glued to text", "x12-9y.log", intPtr(12), intPtr(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := InferActiveSpace(tt.path)
			assert.Equal(t, tt.electrons, as.Electrons)
			assert.Equal(t, tt.orbitals, as.Orbitals)
			assert.Equal(t, tt.electrons != nil, as.Known())
		})
	}
}

// Multiple "<n>-<m>" substrings are ambiguous; the leftmost one is used.
// This is a policy choice, not a unique parse.
func TestInferActiveSpace_MultipleLabels_LeftmostWins(t *testing.T) {
	as := InferActiveSpace("run2-3_benzene_10-10.log")
	require.True(t, as.Known())
	assert.Equal(t, 2, *as.Electrons)
	assert.Equal(t, 3, *as.Orbitals)
}

func TestInferActiveSpace_DoesNotValidateChemistry(t *testing.T) {
	// 20 electrons in 2 orbitals is impossible, but inference is purely textual.
	as := InferActiveSpace("weird_20-2.log")
	require.True(t, as.Known())
	assert.Equal(t, 20, *as.Electrons)
	assert.Equal(t, 2, *as.Orbitals)
}

func TestIsActiveSpaceLabel(t *testing.T) {
	assert.True(t, IsActiveSpaceLabel("2-2"))
	assert.True(t, IsActiveSpaceLabel("14-14"))
	assert.False(t, IsActiveSpaceLabel("bad-format"))
	assert.False(t, IsActiveSpaceLabel("a2-2"))
	assert.False(t, IsActiveSpaceLabel("2-2b"))
	assert.False(t, IsActiveSpaceLabel(""))
}
