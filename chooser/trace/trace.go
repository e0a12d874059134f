// Package trace records how every candidate of a selection run was scored or
// why it was dropped, and writes that record as YAML for later inspection.
package trace

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SelectionTrace collects the records of one run.
type SelectionTrace struct {
	RunID      string            `yaml:"run_id"`
	Mode       string            `yaml:"mode"`
	Reference  string            `yaml:"reference"`
	Candidates []CandidateRecord `yaml:"candidates"`
	Dropped    []DroppedRecord   `yaml:"dropped,omitempty"`
	Summary    *TraceSummary     `yaml:"summary,omitempty"`
}

// NewSelectionTrace creates a SelectionTrace ready for recording.
func NewSelectionTrace(mode, reference string) *SelectionTrace {
	return &SelectionTrace{
		RunID:      uuid.NewString(),
		Mode:       mode,
		Reference:  reference,
		Candidates: make([]CandidateRecord, 0),
	}
}

// RecordCandidate appends a scored candidate.
func (st *SelectionTrace) RecordCandidate(record CandidateRecord) {
	st.Candidates = append(st.Candidates, record)
}

// RecordDropped appends a dropped candidate.
func (st *SelectionTrace) RecordDropped(record DroppedRecord) {
	st.Dropped = append(st.Dropped, record)
}

// Finalize computes and attaches the summary.
func (st *SelectionTrace) Finalize() {
	st.Summary = Summarize(st)
}

// WriteFile writes the trace as YAML to path.
func (st *SelectionTrace) WriteFile(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing trace %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a trace written by WriteFile.
func ReadFile(path string) (*SelectionTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	var st SelectionTrace
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	return &st, nil
}
