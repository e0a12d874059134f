package chooser

import (
	"encoding/json"
	"fmt"
	"io"
)

// SelectionResult is the sole externally visible artifact of a run.
type SelectionResult struct {
	Electrons *int   `json:"num_electrons"`
	Orbitals  *int   `json:"num_orbitals"`
	Path      string `json:"path"`
}

// NewSelectionResult copies the chosen candidate's metadata and path.
func NewSelectionResult(c Candidate) SelectionResult {
	return SelectionResult{Electrons: c.Electrons, Orbitals: c.Orbitals, Path: c.Path}
}

// Write serialises the result as one JSON object line.
func (r SelectionResult) Write(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling selection result: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing selection result: %w", err)
	}
	return nil
}
