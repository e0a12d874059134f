package cmd

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dipole-as/active-space-chooser/chooser"
	"github.com/dipole-as/active-space-chooser/chooser/chart"
	"github.com/dipole-as/active-space-chooser/chooser/trace"
)

// outputOptions controls the optional artifacts written next to the JSON result.
type outputOptions struct {
	TraceOut string // YAML score trace path; empty = none
	PlotOut  string // score chart path; empty = none
}

// Shared selection flags. Each subcommand binds its own copy.
type selectionFlags struct {
	dataDir  string
	csv      bool
	jobs     int
	traceOut string
	plotOut  string
}

// registerInputs binds the candidate discovery flags.
func (f *selectionFlags) registerInputs(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dataDir, "data-dir", "d", "", "Directory holding <n>-<m>/ multi-reference calculation subdirectories")
	cmd.Flags().BoolVarP(&f.csv, "csv", "c", false, "Read data files as CSV instead of calculation log files")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Files extracted in parallel (0 = number of CPUs)")
}

// registerOutputs binds the optional artifact flags.
func (f *selectionFlags) registerOutputs(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.traceOut, "trace-out", "", "Write every candidate's score and drop reason to this YAML file")
	cmd.Flags().StringVar(&f.plotOut, "plot-out", "", "Write a chart of candidate scores (.png, .svg, .pdf, ...)")
}

// resolve merges flags with the run configuration; explicit flags win.
func (f *selectionFlags) resolve(cmd *cobra.Command, cfg *RunConfig) (jobs int, out outputOptions) {
	jobs = f.jobs
	if !cmd.Flags().Changed("jobs") && cfg.Jobs != nil {
		jobs = *cfg.Jobs
	}
	out = outputOptions{TraceOut: f.traceOut, PlotOut: f.plotOut}
	if !cmd.Flags().Changed("trace-out") && cfg.TraceOut != "" {
		out.TraceOut = cfg.TraceOut
	}
	if !cmd.Flags().Changed("plot-out") && cfg.PlotOut != "" {
		out.PlotOut = cfg.PlotOut
	}
	return jobs, out
}

// executeSelection runs the selection and writes the JSON result to stdout.
// Side artifacts are written first so a failure never leaves JSON behind.
func executeSelection(ctx context.Context, req chooser.Request, opts outputOptions, stdout io.Writer) error {
	if opts.PlotOut != "" && !chart.IsSupportedFormat(opts.PlotOut) {
		return fmt.Errorf("%w: unsupported chart format %q", chooser.ErrConfiguration, opts.PlotOut)
	}
	out, err := chooser.Run(ctx, req)
	if err != nil {
		return err
	}
	if opts.TraceOut != "" {
		st := buildTrace(req.Mode, out)
		if err := st.WriteFile(opts.TraceOut); err != nil {
			return err
		}
		logrus.Infof("score trace written to %s", opts.TraceOut)
	}
	if opts.PlotOut != "" {
		if err := writeScoreChart(opts.PlotOut, req.Mode, out); err != nil {
			return err
		}
		logrus.Infof("score chart written to %s", opts.PlotOut)
	}
	return out.Result.Write(stdout)
}

// buildTrace records every scored and dropped candidate of a run.
func buildTrace(mode chooser.Mode, out *chooser.Outcome) *trace.SelectionTrace {
	st := trace.NewSelectionTrace(mode.String(), out.Reference.String())
	for _, s := range out.Selection.Scored {
		st.RecordCandidate(trace.CandidateRecord{
			Path:      s.Path,
			Electrons: s.Electrons,
			Orbitals:  s.Orbitals,
			Score:     s.Score,
			Selected:  s.Index == out.Selection.Best.Index,
		})
	}
	for _, d := range out.Dropped {
		st.RecordDropped(trace.DroppedRecord{Path: d.Path, Reason: d.Reason.Error()})
	}
	st.Finalize()
	return st
}

func writeScoreChart(path string, mode chooser.Mode, out *chooser.Outcome) error {
	bars := make([]chart.Bar, 0, len(out.Selection.Scored))
	highlight := -1
	for _, s := range out.Selection.Scored {
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			continue
		}
		if s.Index == out.Selection.Best.Index {
			highlight = len(bars)
		}
		bars = append(bars, chart.Bar{Label: s.Label(), Value: s.Score})
	}
	return chart.Write(path, bars, chart.Options{
		Title:     fmt.Sprintf("%s distance to reference", mode),
		YLabel:    "Distance (Debye)",
		Highlight: highlight,
	})
}
