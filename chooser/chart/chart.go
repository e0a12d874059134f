// Package chart renders per-candidate dipole and score bar charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Bar is one labelled value, typically an active space and its dipole.
type Bar struct {
	Label string
	Value float64
}

// Series is one named value per group, e.g. the x components of every
// active space.
type Series struct {
	Name   string
	Values []float64
}

// Options controls chart rendering.
type Options struct {
	Title     string
	YLabel    string
	Reference *float64 // drawn as a dashed horizontal line when set
	Highlight int      // index of the bar (or group) to emphasise; -1 for none
	NoLegend  bool
}

// supportedFormats lists the file extensions plot.Save can render.
var supportedFormats = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".eps": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// IsSupportedFormat reports whether path has an extension the chart writer can render.
func IsSupportedFormat(path string) bool {
	return supportedFormats[strings.ToLower(filepath.Ext(path))]
}

// accent marks the highlighted bar.
var accent = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}

// Build assembles the plot without writing it.
func Build(bars []Bar, opts Options) (*plot.Plot, error) {
	if len(bars) == 0 {
		return nil, errors.New("chart: no bars to draw")
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.YLabel

	labels := make([]string, len(bars))
	values := make(plotter.Values, len(bars))
	for i, b := range bars {
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return nil, fmt.Errorf("chart: bar %q has non-finite value %v", b.Label, b.Value)
		}
		labels[i] = b.Label
		values[i] = b.Value
	}

	width := vg.Points(20)
	bc, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, fmt.Errorf("chart: building bars: %w", err)
	}
	bc.LineStyle.Width = vg.Length(0)
	bc.Color = plotutil.Color(0)
	p.Add(bc)

	if opts.Highlight >= 0 && opts.Highlight < len(bars) {
		only := make(plotter.Values, len(bars))
		only[opts.Highlight] = values[opts.Highlight]
		hl, err := plotter.NewBarChart(only, width)
		if err != nil {
			return nil, fmt.Errorf("chart: building highlight: %w", err)
		}
		hl.LineStyle.Width = vg.Length(0)
		hl.Color = accent
		p.Add(hl)
		addLegend(p, opts, "selected", hl)
	}

	if err := addReference(p, opts, len(bars)); err != nil {
		return nil, err
	}

	p.NominalX(labels...)
	return p, nil
}

// BuildGrouped assembles a grouped bar chart: one group per label, one
// coloured bar per series inside each group. The highlighted group's label
// is marked with an asterisk.
func BuildGrouped(labels []string, series []Series, opts Options) (*plot.Plot, error) {
	if len(labels) == 0 || len(series) == 0 {
		return nil, errors.New("chart: no bars to draw")
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true

	width := vg.Points(10)
	for i, s := range series {
		if len(s.Values) != len(labels) {
			return nil, fmt.Errorf("chart: series %q has %d values for %d groups", s.Name, len(s.Values), len(labels))
		}
		values := make(plotter.Values, len(s.Values))
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("chart: %s of %q has non-finite value %v", s.Name, labels[j], v)
			}
			values[j] = v
		}
		bc, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, fmt.Errorf("chart: building %s bars: %w", s.Name, err)
		}
		bc.LineStyle.Width = vg.Length(0)
		bc.Color = plotutil.Color(i)
		bc.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * width
		p.Add(bc)
		addLegend(p, opts, s.Name, bc)
	}

	if err := addReference(p, opts, len(labels)); err != nil {
		return nil, err
	}

	names := append([]string(nil), labels...)
	if opts.Highlight >= 0 && opts.Highlight < len(names) {
		names[opts.Highlight] += " *"
	}
	p.NominalX(names...)
	return p, nil
}

func addLegend(p *plot.Plot, opts Options, name string, thumb plot.Thumbnailer) {
	if !opts.NoLegend {
		p.Legend.Add(name, thumb)
	}
}

// addReference draws the dashed reference line across n groups.
func addReference(p *plot.Plot, opts Options, n int) error {
	if opts.Reference == nil {
		return nil
	}
	ref := *opts.Reference
	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: ref},
		{X: float64(n) - 0.5, Y: ref},
	})
	if err != nil {
		return fmt.Errorf("chart: building reference line: %w", err)
	}
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	line.LineStyle.Color = color.Black
	p.Add(line)
	addLegend(p, opts, "reference", line)
	return nil
}

// Write renders a single-series chart to path; the format follows the file
// extension.
func Write(path string, bars []Bar, opts Options) error {
	if !IsSupportedFormat(path) {
		return fmt.Errorf("chart: unsupported output format %q", filepath.Ext(path))
	}
	p, err := Build(bars, opts)
	if err != nil {
		return err
	}
	return save(p, path, len(bars))
}

// WriteGrouped renders a grouped chart to path.
func WriteGrouped(path string, labels []string, series []Series, opts Options) error {
	if !IsSupportedFormat(path) {
		return fmt.Errorf("chart: unsupported output format %q", filepath.Ext(path))
	}
	p, err := BuildGrouped(labels, series, opts)
	if err != nil {
		return err
	}
	return save(p, path, len(labels)*max(1, len(series)/2))
}

func save(p *plot.Plot, path string, groups int) error {
	w := vg.Length(max(4, groups)) * vg.Inch
	if err := p.Save(w, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: saving %s: %w", path, err)
	}
	return nil
}
