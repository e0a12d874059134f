package trace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a SelectionTrace.
type TraceSummary struct {
	Scored    int     `yaml:"scored"`
	Dropped   int     `yaml:"dropped"`
	BestScore float64 `yaml:"best_score"`
	MeanScore float64 `yaml:"mean_score"`
	StdDev    float64 `yaml:"std_dev"`
	// Margin is the runner-up score minus the best score; zero with fewer
	// than two finite scores.
	Margin float64 `yaml:"margin"`
}

// Summarize computes aggregate statistics from a SelectionTrace.
// Safe for nil or empty traces (returns zero-value fields). NaN scores are
// counted as scored but excluded from the statistics.
func Summarize(st *SelectionTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}
	summary.Scored = len(st.Candidates)
	summary.Dropped = len(st.Dropped)

	scores := make([]float64, 0, len(st.Candidates))
	for _, c := range st.Candidates {
		if !math.IsNaN(c.Score) {
			scores = append(scores, c.Score)
		}
	}
	if len(scores) == 0 {
		return summary
	}
	sort.Float64s(scores)
	summary.BestScore = scores[0]
	summary.MeanScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		summary.StdDev = stat.StdDev(scores, nil)
		summary.Margin = scores[1] - scores[0]
	}
	return summary
}
