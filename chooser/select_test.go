package chooser

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundStateScore(t *testing.T) {
	assert.InDelta(t, 0.05, GroundStateScore(1.30, 1.25), 1e-12)
	for _, pair := range [][2]float64{{1.3, 1.25}, {-2, 5}, {0, 0}, {1e-9, 3}} {
		assert.Equal(t, GroundStateScore(pair[0], pair[1]), GroundStateScore(pair[1], pair[0]), "score must be symmetric")
	}
}

func TestMetricByName(t *testing.T) {
	c := []float64{1.0, 1.5, 2.0}
	r := []float64{1.1, 1.4, 2.3}

	tests := []struct {
		name string
		want float64
	}{
		{"", math.Sqrt(0.01 + 0.01 + 0.09)},
		{"euclidean", math.Sqrt(0.01 + 0.01 + 0.09)},
		{"manhattan", 0.1 + 0.1 + 0.3},
		{"max", 0.3},
	}
	for _, tt := range tests {
		m, err := MetricByName(tt.name)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, m(c, r), 1e-12, "metric %q", tt.name)
	}

	_, err := MetricByName("cosine")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestValidMetricNames_Sorted(t *testing.T) {
	names := ValidMetricNames()
	assert.Equal(t, []string{"euclidean", "manhattan", "max"}, names)
	for _, n := range names {
		assert.True(t, IsValidMetric(n))
	}
	assert.False(t, IsValidMetric("cosine"))
}

func TestSelect_GroundState_PicksClosest(t *testing.T) {
	cands := []Candidate{
		scalarCandidate("foo_2-2.log", 0.1),
		scalarCandidate("bar_4-4.log", 0.3),
		scalarCandidate("baz_6-6.log", 0.2),
	}
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(0.12), nil)
	require.NoError(t, err)

	sel, err := Select(cands, scorer)

	require.NoError(t, err)
	assert.Equal(t, "foo_2-2.log", sel.Best.Path)
	assert.Equal(t, 0, sel.Best.Index)
	assert.Len(t, sel.Scored, 3)
}

func TestSelect_Tie_EarliestInputWins(t *testing.T) {
	// Distances are exact in binary floating point: both are 0.5.
	cands := []Candidate{
		scalarCandidate("a_2-2.log", 0.5),
		scalarCandidate("b_4-4.log", 1.5),
		scalarCandidate("c_6-6.log", 3.0),
	}
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1.0), nil)
	require.NoError(t, err)

	sel, err := Select(cands, scorer)

	require.NoError(t, err)
	assert.Equal(t, 0.5, sel.Scored[0].Score)
	assert.Equal(t, 0.5, sel.Scored[1].Score)
	assert.Equal(t, "a_2-2.log", sel.Best.Path, "ties go to the earliest candidate")
}

func TestSelect_PermutationInvariant_UpToTies(t *testing.T) {
	// GIVEN candidates with distinct scores
	base := []Candidate{
		scalarCandidate("a_2-2.log", 1.9),
		scalarCandidate("b_4-4.log", 1.05),
		scalarCandidate("c_6-6.log", 0.7),
		scalarCandidate("d_8-8.log", 1.4),
		scalarCandidate("e_10-10.log", 2.6),
	}
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1.0), nil)
	require.NoError(t, err)
	want, err := Select(base, scorer)
	require.NoError(t, err)

	// WHEN selection runs repeatedly on shuffled input
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Candidate(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Select(shuffled, scorer)

		// THEN the same candidate wins every time
		require.NoError(t, err)
		assert.Equal(t, want.Best.Path, got.Best.Path)
		assert.Equal(t, want.Best.Score, got.Best.Score)
	}
}

func TestSelect_Idempotent(t *testing.T) {
	cands := []Candidate{scalarCandidate("a_2-2.log", 1.0), scalarCandidate("b_4-4.log", 1.0)}
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1.0), nil)
	require.NoError(t, err)

	first, err := Select(cands, scorer)
	require.NoError(t, err)
	second, err := Select(cands, scorer)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelect_NaNNeverWins(t *testing.T) {
	cands := []Candidate{scalarCandidate("nan_2-2.log", math.NaN()), scalarCandidate("ok_4-4.log", 5.0)}
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1.0), nil)
	require.NoError(t, err)

	sel, err := Select(cands, scorer)

	require.NoError(t, err)
	assert.Equal(t, "ok_4-4.log", sel.Best.Path)
}

func TestSelect_ExcitedStates_EuclideanScore(t *testing.T) {
	// GIVEN one candidate [1.0, 1.5, 2.0] over S1..S3 and reference [1.1, 1.4, 2.1]
	states := mustStates(t, 1, 2, 3)
	cand := Candidate{Path: "only_8-8.csv", Dipole: VectorDipole(1, []float64{1.0, 1.5, 2.0})}
	ref := StateReference(map[int]float64{1: 1.1, 2: 1.4, 3: 2.1})
	scorer, err := NewScorer(ExcitedStateMode(states), ref, nil)
	require.NoError(t, err)

	// WHEN selected
	sel, err := Select([]Candidate{cand}, scorer)

	// THEN the lone candidate wins with the Euclidean distance
	require.NoError(t, err)
	assert.Equal(t, "only_8-8.csv", sel.Best.Path)
	assert.InDelta(t, math.Sqrt(0.03), sel.Best.Score, 1e-12)
}

func TestSelect_ExcitedStates_IgnoresUnrequestedStates(t *testing.T) {
	states := mustStates(t, 2)
	near := Candidate{Path: "near.log", Dipole: VectorDipole(0, []float64{50, 50, 1.0})}
	far := Candidate{Path: "far.log", Dipole: VectorDipole(0, []float64{1.0, 1.0, 3.0})}
	scorer, err := NewScorer(ExcitedStateMode(states), StateReference(map[int]float64{2: 1.0}), nil)
	require.NoError(t, err)

	sel, err := Select([]Candidate{far, near}, scorer)

	require.NoError(t, err)
	assert.Equal(t, "near.log", sel.Best.Path)
}

func TestNewScorer_Mismatches(t *testing.T) {
	_, err := NewScorer(GroundStateMode(), StateReference(map[int]float64{1: 1}), nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewScorer(ExcitedStateMode(mustStates(t, 1, 2)), StateReference(map[int]float64{1: 1}), nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestScorer_ShapeMismatch(t *testing.T) {
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1), nil)
	require.NoError(t, err)
	_, err = scorer.Score(Candidate{Path: "v.log", Dipole: VectorDipole(1, []float64{1})})
	assert.Error(t, err)

	scorer, err = NewScorer(ExcitedStateMode(mustStates(t, 1, 2)), StateReference(map[int]float64{1: 1, 2: 2}), nil)
	require.NoError(t, err)
	_, err = scorer.Score(Candidate{Path: "short.log", Dipole: VectorDipole(1, []float64{1})})
	assert.Error(t, err)
}

func TestSelect_Empty(t *testing.T) {
	scorer, err := NewScorer(GroundStateMode(), ScalarReference(1), nil)
	require.NoError(t, err)
	_, err = Select(nil, scorer)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
