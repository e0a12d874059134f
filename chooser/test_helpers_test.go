package chooser

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dipole-as/active-space-chooser/chooser/logparse"
)

// stubParser serves canned calculations keyed by path, so scoring can be
// tested without writing program logs.
type stubParser struct {
	calcs map[string]*logparse.Calculation
	calls atomic.Int64
}

func newStubParser() *stubParser {
	return &stubParser{calcs: make(map[string]*logparse.Calculation)}
}

// withRoots registers a Molcas-style calculation whose root i+1 has totals[i].
func (s *stubParser) withRoots(path string, totals ...float64) *stubParser {
	calc := &logparse.Calculation{Program: logparse.ProgramMolcas}
	for i, v := range totals {
		calc.Dipoles = append(calc.Dipoles, logparse.Dipole{Root: i + 1, Total: v})
	}
	s.calcs[path] = calc
	return s
}

func (s *stubParser) ParseFile(path string) (*logparse.Calculation, error) {
	s.calls.Add(1)
	calc, ok := s.calcs[path]
	if !ok {
		return nil, fmt.Errorf("stub: %s: %w", path, logparse.ErrNoDipoles)
	}
	return calc, nil
}

func mustStates(t *testing.T, states ...int) StateSelection {
	t.Helper()
	sel, err := NewStateSelection(states)
	require.NoError(t, err)
	return sel
}

func mustExtractor(t *testing.T, p logparse.Parser, csvBase int) *Extractor {
	t.Helper()
	ext, err := NewExtractor(p, csvBase)
	require.NoError(t, err)
	return ext
}

func intPtr(v int) *int { return &v }

func scalarCandidate(path string, v float64) Candidate {
	return Candidate{Path: path, ActiveSpace: InferActiveSpace(path), Dipole: ScalarDipole(v)}
}
