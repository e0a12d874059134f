package chooser

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Candidate is one multi-reference calculation with usable dipole data.
type Candidate struct {
	Path string
	ActiveSpace
	Dipole DipoleValue
}

// Label returns the "<n>-<m>" active-space label, or the path when unknown.
func (c Candidate) Label() string {
	if c.Known() {
		return fmt.Sprintf("%d-%d", *c.Electrons, *c.Orbitals)
	}
	return c.Path
}

// Dropped records a candidate file discarded during collection.
type Dropped struct {
	Path   string
	Reason error
}

// Collector builds the candidate list for a run.
type Collector struct {
	extractor *Extractor
	jobs      int
}

// NewCollector returns a Collector that extracts up to jobs files at once.
// jobs <= 0 means GOMAXPROCS.
func NewCollector(extractor *Extractor, jobs int) *Collector {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Collector{extractor: extractor, jobs: jobs}
}

// Collect extracts every path in the mode's shape and returns the usable
// candidates in input order, plus the dropped files with their reasons.
// Returns ErrNoCandidates when nothing survives.
func (c *Collector) Collect(ctx context.Context, paths []string, mode Mode) ([]Candidate, []Dropped, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w: no candidate files given", ErrNoCandidates)
	}

	type slot struct {
		candidate Candidate
		err       error
	}
	// Each goroutine owns its slot; input order survives for tie-breaking.
	slots := make([]slot, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(c.jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dipole, err := c.extractor.Extract(path, mode)
			if err != nil {
				slots[i].err = err
				return nil
			}
			slots[i].candidate = Candidate{
				Path:        path,
				ActiveSpace: InferActiveSpace(path),
				Dipole:      dipole,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	candidates := make([]Candidate, 0, len(paths))
	var dropped []Dropped
	for i, s := range slots {
		if s.err != nil {
			var xerr *ExtractionError
			if !errors.As(s.err, &xerr) {
				return nil, nil, s.err
			}
			// The error text already leads with the path.
			logrus.Warnf("dropping candidate %v", xerr)
			dropped = append(dropped, Dropped{Path: paths[i], Reason: s.err})
			continue
		}
		logrus.Debugf("candidate %s (%s): dipole %s", s.candidate.Path, s.candidate.Label(), s.candidate.Dipole)
		candidates = append(candidates, s.candidate)
	}

	if len(candidates) == 0 {
		return nil, dropped, fmt.Errorf("%w: all %d candidate files were dropped", ErrNoCandidates, len(paths))
	}
	logrus.Infof("collected %d of %d candidates (%s)", len(candidates), len(paths), mode)
	return candidates, dropped, nil
}
