package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dipole-as/active-space-chooser/chooser"
	"github.com/dipole-as/active-space-chooser/chooser/chart"
)

// plotOptions controls the plot subcommand.
type plotOptions struct {
	Reference string // optional reference dipole drawn as a line
	Output    string
	Jobs      int
	NoLegend  bool
}

var (
	plotFlags selectionFlags
	plotOpts  plotOptions
)

// plotCmd charts the ground-state dipole of every candidate
var plotCmd = &cobra.Command{
	Use:   "plot [files...]",
	Short: "Plot the ground-state dipole moment of each multi-reference calculation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setupRun(cmd)

		paths, err := resolveCandidatePaths(args, plotFlags.dataDir, plotFlags.csv)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := plotOpts
		opts.Jobs, _ = plotFlags.resolve(cmd, cfg)
		if err := plotDipoles(context.Background(), paths, opts); err != nil {
			logrus.Fatalf("plot failed: %v", err)
		}
		logrus.Infof("dipole chart written to %s", opts.Output)
	},
}

// plotDipoles draws one group per usable candidate: the x, y, z components
// and magnitude of its ground-state dipole when every input is a log, the
// magnitude alone otherwise. With a reference, the reference magnitude is
// drawn as a line and the closest candidate is highlighted.
func plotDipoles(ctx context.Context, paths []string, opts plotOptions) error {
	if !chart.IsSupportedFormat(opts.Output) {
		return fmt.Errorf("%w: unsupported chart format %q", chooser.ErrConfiguration, opts.Output)
	}
	ext, err := chooser.NewExtractor(nil, chooser.DefaultCSVBaseState)
	if err != nil {
		return err
	}
	mode := chooser.GroundStateMode()
	candidates, _, err := chooser.NewCollector(ext, opts.Jobs).Collect(ctx, paths, mode)
	if err != nil {
		return err
	}

	chartOpts := chart.Options{
		Title:     "Ground-state dipole moment",
		YLabel:    "Dipole (Debye)",
		Highlight: -1,
		NoLegend:  opts.NoLegend,
	}
	if opts.Reference != "" {
		ref, err := chooser.ResolveGroundReference(ext, opts.Reference)
		if err != nil {
			return err
		}
		scorer, err := chooser.NewScorer(mode, ref, nil)
		if err != nil {
			return err
		}
		sel, err := chooser.Select(candidates, scorer)
		if err != nil {
			return err
		}
		v := ref.Scalar()
		chartOpts.Reference = &v
		chartOpts.Highlight = sel.Best.Index
	}

	labels, series := dipoleSeries(candidates)
	if len(series) == 1 {
		bars := make([]chart.Bar, len(labels))
		for i, label := range labels {
			bars[i] = chart.Bar{Label: label, Value: series[0].Values[i]}
		}
		return chart.Write(opts.Output, bars, chartOpts)
	}
	return chart.WriteGrouped(opts.Output, labels, series, chartOpts)
}

// dipoleSeries returns the active-space labels and the chart series: x, y, z
// and |μ| when every candidate carries components, otherwise |μ| only.
func dipoleSeries(candidates []chooser.Candidate) ([]string, []chart.Series) {
	labels := make([]string, len(candidates))
	xs := make([]float64, len(candidates))
	ys := make([]float64, len(candidates))
	zs := make([]float64, len(candidates))
	mags := make([]float64, len(candidates))
	withComponents := true
	for i, c := range candidates {
		labels[i] = c.Label()
		mags[i] = c.Dipole.Scalar()
		x, y, z, ok := c.Dipole.Components()
		if !ok {
			withComponents = false
		}
		xs[i], ys[i], zs[i] = x, y, z
	}
	magnitude := chart.Series{Name: "|μ|", Values: mags}
	if !withComponents {
		return labels, []chart.Series{magnitude}
	}
	return labels, []chart.Series{
		{Name: "x", Values: xs},
		{Name: "y", Values: ys},
		{Name: "z", Values: zs},
		magnitude,
	}
}

func init() {
	plotFlags.registerInputs(plotCmd)
	plotCmd.Flags().StringVarP(&plotOpts.Reference, "ref-dipole", "r", "", "Optional reference dipole (number, .log or .csv) drawn as a line")
	plotCmd.Flags().StringVarP(&plotOpts.Output, "output", "o", "dipoles.png", "Chart output file (.png, .svg, .pdf, ...)")
	plotCmd.Flags().BoolVar(&plotOpts.NoLegend, "no-legend", false, "Omit the chart legend")
}
