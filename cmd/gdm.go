package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dipole-as/active-space-chooser/chooser"
)

var (
	gdmFlags     selectionFlags
	gdmReference string // number, .log or .csv
)

// gdmCmd runs the ground-state dipole moment active-space selection
var gdmCmd = &cobra.Command{
	Use:   "gdm-as [files...]",
	Short: "Run the ground-state dipole moment active-space selection algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setupRun(cmd)

		paths, err := resolveCandidatePaths(args, gdmFlags.dataDir, gdmFlags.csv)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		jobs, out := gdmFlags.resolve(cmd, cfg)

		req := chooser.Request{
			Mode:            chooser.GroundStateMode(),
			CandidatePaths:  paths,
			GroundReference: gdmReference,
			CSVBase:         chooser.DefaultCSVBaseState,
			Jobs:            jobs,
		}
		if err := executeSelection(context.Background(), req, out, os.Stdout); err != nil {
			logrus.Fatalf("gdm-as failed: %v", err)
		}
	},
}

func init() {
	gdmFlags.registerInputs(gdmCmd)
	gdmFlags.registerOutputs(gdmCmd)
	gdmCmd.Flags().StringVarP(&gdmReference, "ref-dipole", "r", "", "Reference dipole: a number, a TD-DFT .log file or a .csv file")
	_ = gdmCmd.MarkFlagRequired("ref-dipole")
}
