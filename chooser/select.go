package chooser

import (
	"fmt"
	"math"
)

// Scorer computes the distance between a candidate and the reference.
// Lower is better.
type Scorer struct {
	mode      Mode
	reference Reference
	metric    Metric
	states    []int     // EDM: ascending selected states
	refValues []float64 // EDM: reference dipoles aligned with states
}

// NewScorer validates that the reference covers the mode and binds the metric.
// metric is only consulted in EDM-AS; nil selects the default.
func NewScorer(mode Mode, reference Reference, metric Metric) (*Scorer, error) {
	if reference.Kind() != mode.Kind {
		return nil, configErrorf("%s reference cannot score %s candidates", reference.Kind(), mode.Kind)
	}
	s := &Scorer{mode: mode, reference: reference, metric: metric}
	if mode.Kind != ModeEDM {
		return s, nil
	}
	if s.metric == nil {
		m, err := MetricByName(DefaultMetricName)
		if err != nil {
			return nil, err
		}
		s.metric = m
	}
	s.states = mode.States.Sorted()
	s.refValues = make([]float64, len(s.states))
	for i, st := range s.states {
		v, ok := reference.State(st)
		if !ok {
			return nil, configErrorf("reference has no dipole for state S%d", st)
		}
		s.refValues[i] = v
	}
	return s, nil
}

// Score returns the candidate's distance to the reference.
func (s *Scorer) Score(c Candidate) (float64, error) {
	switch s.mode.Kind {
	case ModeGDM:
		if c.Dipole.IsVector() {
			return 0, fmt.Errorf("candidate %s holds per-state dipoles, want a scalar", c.Path)
		}
		return GroundStateScore(c.Dipole.Scalar(), s.reference.Scalar()), nil
	case ModeEDM:
		values, err := c.Dipole.Select(s.states)
		if err != nil {
			return 0, fmt.Errorf("candidate %s: %w", c.Path, err)
		}
		return s.metric(values, s.refValues), nil
	default:
		return 0, fmt.Errorf("unsupported mode %s", s.mode.Kind)
	}
}

// Scored pairs a candidate with its score and input position.
type Scored struct {
	Candidate
	Index int
	Score float64
}

// Selection is the outcome of Select.
type Selection struct {
	Best   Scored
	Scored []Scored // every candidate, input order
}

// Select scores all candidates and returns the minimum. Exact ties go to the
// earliest candidate in input order; a NaN score never beats a number.
func Select(candidates []Candidate, scorer *Scorer) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, fmt.Errorf("%w: nothing to select from", ErrNoCandidates)
	}
	scored := make([]Scored, len(candidates))
	best := -1
	for i, c := range candidates {
		score, err := scorer.Score(c)
		if err != nil {
			return Selection{}, err
		}
		scored[i] = Scored{Candidate: c, Index: i, Score: score}
		if best < 0 || better(score, scored[best].Score) {
			best = i
		}
	}
	return Selection{Best: scored[best], Scored: scored}, nil
}

// better reports whether score a strictly beats b.
func better(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
