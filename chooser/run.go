package chooser

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dipole-as/active-space-chooser/chooser/logparse"
)

// Request describes one batch selection.
type Request struct {
	Mode           Mode
	CandidatePaths []string

	GroundReference string   // GDM-AS: number or .log/.csv path
	ReferencePaths  []string // EDM-AS: one file per state, in Mode.States order

	Metric  string // EDM-AS metric name; empty = DefaultMetricName
	CSVBase int    // state of the first CSV data row in EDM-AS
	Jobs    int    // parallel extraction limit; <= 0 = GOMAXPROCS

	Parser logparse.Parser // nil = logparse.FileParser
}

// Outcome is everything a run produced.
type Outcome struct {
	Result    SelectionResult
	Selection Selection
	Dropped   []Dropped
	Reference Reference
}

// Run validates the request, resolves the reference, collects candidates and
// selects the best one. Configuration problems are reported before any file
// is read.
func Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	var metric Metric
	if req.Mode.Kind == ModeEDM {
		m, err := MetricByName(req.Metric)
		if err != nil {
			return nil, err
		}
		metric = m
	}
	ext, err := NewExtractor(req.Parser, req.CSVBase)
	if err != nil {
		return nil, err
	}

	var ref Reference
	switch req.Mode.Kind {
	case ModeGDM:
		ref, err = ResolveGroundReference(ext, req.GroundReference)
	case ModeEDM:
		ref, err = ResolveStateReference(ext, req.Mode.States, req.ReferencePaths)
	}
	if err != nil {
		return nil, err
	}

	scorer, err := NewScorer(req.Mode, ref, metric)
	if err != nil {
		return nil, err
	}

	candidates, dropped, err := NewCollector(ext, req.Jobs).Collect(ctx, req.CandidatePaths, req.Mode)
	if err != nil {
		return nil, err
	}

	sel, err := Select(candidates, scorer)
	if err != nil {
		return nil, err
	}
	logrus.Infof("selected %s (%s) with score %g", sel.Best.Path, sel.Best.Label(), sel.Best.Score)

	return &Outcome{
		Result:    NewSelectionResult(sel.Best.Candidate),
		Selection: sel,
		Dropped:   dropped,
		Reference: ref,
	}, nil
}

func (req Request) validate() error {
	if len(req.CandidatePaths) == 0 {
		return fmt.Errorf("%w: no candidate files given", ErrNoCandidates)
	}
	switch req.Mode.Kind {
	case ModeGDM:
		if req.GroundReference == "" {
			return configErrorf("gdm-as requires a reference dipole")
		}
	case ModeEDM:
		if req.Mode.States.Len() == 0 {
			return configErrorf("edm-as requires a non-empty state selection")
		}
		if len(req.ReferencePaths) != req.Mode.States.Len() {
			return configErrorf("%d reference files given for %d states (%s)",
				len(req.ReferencePaths), req.Mode.States.Len(), req.Mode.States)
		}
		if req.Metric != "" && !IsValidMetric(req.Metric) {
			return configErrorf("unknown metric %q", req.Metric)
		}
	default:
		return configErrorf("unknown mode %s", req.Mode.Kind)
	}
	if req.CSVBase < 0 {
		return configErrorf("CSV base state %d must be non-negative", req.CSVBase)
	}
	return nil
}
