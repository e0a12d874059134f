package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dipole-as/active-space-chooser/chooser"
)

var (
	edmFlags      selectionFlags
	edmStates     []int    // -S, paired positionally with edmReferences
	edmReferences []string // one TD-DFT log/CSV per state
	edmMetric     string
	edmCSVBase    int
)

// edmCmd runs the excited-state dipole moment active-space selection
var edmCmd = &cobra.Command{
	Use:   "edm-as [files...]",
	Short: "Run the excited-state dipole moment active-space selection algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setupRun(cmd)

		states := edmStates
		if !cmd.Flags().Changed("states") && len(cfg.States) > 0 {
			states = cfg.States
		}
		selection, err := chooser.NewStateSelection(states)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		metric := edmMetric
		if !cmd.Flags().Changed("metric") && cfg.Metric != "" {
			metric = cfg.Metric
		}
		csvBase := edmCSVBase
		if !cmd.Flags().Changed("csv-base-state") && cfg.CSVBaseState != nil {
			csvBase = *cfg.CSVBaseState
		}

		paths, err := resolveCandidatePaths(args, edmFlags.dataDir, edmFlags.csv)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		refs := edmReferences
		if len(refs) == 0 {
			refs, err = discoverReferences(dataDirOrWorkdir(edmFlags.dataDir), edmFlags.csv)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		jobs, out := edmFlags.resolve(cmd, cfg)

		req := chooser.Request{
			Mode:           chooser.ExcitedStateMode(selection),
			CandidatePaths: paths,
			ReferencePaths: refs,
			Metric:         metric,
			CSVBase:        csvBase,
			Jobs:           jobs,
		}
		if err := executeSelection(context.Background(), req, out, os.Stdout); err != nil {
			logrus.Fatalf("edm-as failed: %v", err)
		}
	},
}

// dataDirOrWorkdir defaults an empty data directory to the working directory.
func dataDirOrWorkdir(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func init() {
	edmFlags.registerInputs(edmCmd)
	edmFlags.registerOutputs(edmCmd)
	edmCmd.Flags().IntSliceVarP(&edmStates, "states", "S", chooser.DefaultStates, "Comma-separated states to compare (0 = ground, k = Sk)")
	edmCmd.Flags().StringSliceVarP(&edmReferences, "ref-tddft", "r", nil, "Reference TD-DFT .log/.csv files, one per state in --states order (default: top-level files in the data directory)")
	edmCmd.Flags().StringVar(&edmMetric, "metric", chooser.DefaultMetricName, "Distance over states: euclidean, manhattan or max")
	edmCmd.Flags().IntVar(&edmCSVBase, "csv-base-state", chooser.DefaultCSVBaseState, "State held by the first data row of CSV files")
}
