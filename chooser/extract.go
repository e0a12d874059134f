package chooser

import (
	"fmt"
	"math"
	"strings"

	"github.com/dipole-as/active-space-chooser/chooser/logparse"
)

// DefaultCSVBaseState is the state held by the first data row of an EDM-AS CSV.
const DefaultCSVBaseState = 1

type fileKind int

const (
	kindUnknown fileKind = iota
	kindLog
	kindCSV
)

func classify(path string) fileKind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".log"), strings.HasSuffix(lower, ".log.gz"):
		return kindLog
	case strings.HasSuffix(lower, ".csv"):
		return kindCSV
	default:
		return kindUnknown
	}
}

// IsDipoleFile reports whether path has an extension the extractor reads.
func IsDipoleFile(path string) bool { return classify(path) != kindUnknown }

// Extractor normalises log and CSV files into DipoleValues.
// Every failure is returned as *ExtractionError.
type Extractor struct {
	logs    logparse.Parser
	csvBase int
}

// NewExtractor returns an Extractor backed by the given log parser.
// csvBase is the state index of the first CSV data row in vector mode.
func NewExtractor(logs logparse.Parser, csvBase int) (*Extractor, error) {
	if logs == nil {
		logs = logparse.FileParser{}
	}
	if csvBase < 0 {
		return nil, configErrorf("CSV base state %d must be non-negative", csvBase)
	}
	return &Extractor{logs: logs, csvBase: csvBase}, nil
}

// CSVBase returns the configured CSV base state.
func (e *Extractor) CSVBase() int { return e.csvBase }

// Extract reads path in the shape the mode needs: a scalar for GDM-AS, a
// per-state vector covering every selected state for EDM-AS.
func (e *Extractor) Extract(path string, mode Mode) (DipoleValue, error) {
	switch mode.Kind {
	case ModeGDM:
		return e.scalar(path, (*logparse.Calculation).GroundState, "no ground-state dipole")
	case ModeEDM:
		return e.ExtractStates(path, mode.States)
	default:
		return DipoleValue{}, extractionErr(path, fmt.Sprintf("unsupported mode %s", mode.Kind), nil)
	}
}

// ExtractScalar returns the single dipole a file holds: the ground-state
// dipole of a log, or the first cell of the first CSV data row.
func (e *Extractor) ExtractScalar(path string) (float64, error) {
	v, err := e.scalar(path, (*logparse.Calculation).GroundState, "no ground-state dipole")
	if err != nil {
		return 0, err
	}
	return v.Scalar(), nil
}

// ExtractTargetState returns the dipole of the state a reference calculation
// targeted: the final density of a log (the excited state of a TD-DFT
// density=current job), or the first cell of the first CSV data row.
func (e *Extractor) ExtractTargetState(path string) (float64, error) {
	v, err := e.scalar(path, (*logparse.Calculation).FinalDensity, "no final-density dipole")
	if err != nil {
		return 0, err
	}
	return v.Scalar(), nil
}

// logView picks one dipole out of a parsed calculation.
type logView func(*logparse.Calculation) (logparse.Dipole, error)

func (e *Extractor) scalar(path string, view logView, missing string) (DipoleValue, error) {
	switch classify(path) {
	case kindLog:
		calc, err := e.logs.ParseFile(path)
		if err != nil {
			return DipoleValue{}, extractionErr(path, "log parsing failed", err)
		}
		d, err := view(calc)
		if err != nil {
			return DipoleValue{}, extractionErr(path, missing, err)
		}
		v := d.Magnitude()
		if !isFinite(v) {
			return DipoleValue{}, extractionErr(path, fmt.Sprintf("non-finite dipole %v", v), nil)
		}
		return ScalarDipole(v).WithComponents(d.X, d.Y, d.Z), nil
	case kindCSV:
		rows, err := ReadCSVRows(path)
		if err != nil {
			return DipoleValue{}, extractionErr(path, "CSV read failed", err)
		}
		if len(rows) == 0 {
			return DipoleValue{}, extractionErr(path, "CSV has no data rows", nil)
		}
		v, err := firstCellFloat(rows[0], 0)
		if err != nil {
			return DipoleValue{}, extractionErr(path, "CSV value unusable", err)
		}
		return ScalarDipole(v), nil
	default:
		return DipoleValue{}, extractionErr(path, "unrecognized file extension (want .log, .log.gz or .csv)", nil)
	}
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ExtractStates returns per-state dipoles covering every selected state.
func (e *Extractor) ExtractStates(path string, states StateSelection) (DipoleValue, error) {
	if states.Len() == 0 {
		return DipoleValue{}, extractionErr(path, "empty state selection", nil)
	}
	switch classify(path) {
	case kindLog:
		return e.logStates(path, states)
	case kindCSV:
		return e.csvStates(path, states)
	default:
		return DipoleValue{}, extractionErr(path, "unrecognized file extension (want .log, .log.gz or .csv)", nil)
	}
}

// logStates reads states 0..max from a multi-root log. Unselected states the
// log lacks (or reports as non-finite) are stored as NaN; they are never scored.
func (e *Extractor) logStates(path string, states StateSelection) (DipoleValue, error) {
	calc, err := e.logs.ParseFile(path)
	if err != nil {
		return DipoleValue{}, extractionErr(path, "log parsing failed", err)
	}
	selected := make(map[int]bool, states.Len())
	for _, s := range states.Order() {
		selected[s] = true
	}
	values := make([]float64, states.Max()+1)
	for k := range values {
		d, ok := calc.State(k)
		switch {
		case ok && isFinite(d.Magnitude()):
			values[k] = d.Magnitude()
		case ok && selected[k]:
			return DipoleValue{}, extractionErr(path, fmt.Sprintf("non-finite dipole for state S%d", k), nil)
		case selected[k]:
			return DipoleValue{}, extractionErr(path,
				fmt.Sprintf("no dipole for state S%d (log has %d states)", k, calc.NumStates()), nil)
		default:
			values[k] = math.NaN()
		}
	}
	return VectorDipole(0, values), nil
}

// csvStates reads one state per data row, starting at the CSV base state.
func (e *Extractor) csvStates(path string, states StateSelection) (DipoleValue, error) {
	if low := states.Min(); low < e.csvBase {
		return DipoleValue{}, extractionErr(path,
			fmt.Sprintf("state S%d precedes CSV base state S%d", low, e.csvBase), nil)
	}
	rows, err := ReadCSVRows(path)
	if err != nil {
		return DipoleValue{}, extractionErr(path, "CSV read failed", err)
	}
	need := states.Max() - e.csvBase + 1
	if len(rows) < need {
		return DipoleValue{}, extractionErr(path,
			fmt.Sprintf("CSV has %d data rows, need %d for states S%d..S%d", len(rows), need, e.csvBase, states.Max()), nil)
	}
	values := make([]float64, need)
	for i := range values {
		v, err := firstCellFloat(rows[i], i)
		if err != nil {
			return DipoleValue{}, extractionErr(path, "CSV value unusable", err)
		}
		values[i] = v
	}
	return VectorDipole(e.csvBase, values), nil
}
