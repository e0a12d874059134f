package chooser

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric combines per-state candidate and reference dipoles into one distance.
// Both slices have equal length and follow ascending state order.
type Metric func(candidate, reference []float64) float64

// DefaultMetricName is the EDM-AS metric used when none is configured.
const DefaultMetricName = "euclidean"

// metrics maps metric names to implementations. Unexported to prevent mutation.
var metrics = map[string]Metric{
	"euclidean": func(c, r []float64) float64 { return floats.Distance(c, r, 2) },
	"manhattan": func(c, r []float64) float64 { return floats.Distance(c, r, 1) },
	"max":       func(c, r []float64) float64 { return floats.Distance(c, r, math.Inf(1)) },
}

// IsValidMetric returns true if name is a recognized metric.
func IsValidMetric(name string) bool {
	_, ok := metrics[name]
	return ok
}

// ValidMetricNames returns sorted valid metric names.
func ValidMetricNames() []string {
	names := make([]string, 0, len(metrics))
	for n := range metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MetricByName looks up a metric; an empty name selects the default.
func MetricByName(name string) (Metric, error) {
	if name == "" {
		name = DefaultMetricName
	}
	m, ok := metrics[name]
	if !ok {
		return nil, configErrorf("unknown metric %q; valid: %s", name, strings.Join(ValidMetricNames(), ", "))
	}
	return m, nil
}

// GroundStateScore is the GDM-AS score |x - r|.
func GroundStateScore(dipole, reference float64) float64 {
	return math.Abs(dipole - reference)
}
