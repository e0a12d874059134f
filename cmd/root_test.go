package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipole-as/active-space-chooser/internal/testutil"
)

// executeRoot runs the CLI with args and returns what it printed to stdout.
func executeRoot(t *testing.T, args ...string) []byte {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	// Restore stdout and read captured output
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	require.NoError(t, execErr)
	return buf.Bytes()
}

// resetChanged clears the Changed marks a previous Execute left on cmd's flags.
func resetChanged(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

func decodeResult(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(out, &result), "stdout: %q", out)
	assert.Equal(t, 1, bytes.Count(out, []byte("\n")), "exactly one JSON line")
	return result
}

func TestGDMCommand_SelectionJSONPrintedToStdout(t *testing.T) {
	// GIVEN a data directory with three active-space subdirectories
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "2-2/mol.csv", testutil.DipoleCSV("1.2"))
	best := testutil.WriteFile(t, dir, "4-4/mol.csv", testutil.DipoleCSV("1.0"))
	testutil.WriteFile(t, dir, "6-6/mol.csv", testutil.DipoleCSV("0.95"))

	// WHEN gdm-as runs in directory mode
	out := executeRoot(t, "gdm-as", "--log", "error", "-c", "-d", dir, "-r", "1.0")

	// THEN exactly one JSON object names the best active space
	assert.Equal(t, map[string]any{"num_electrons": 4.0, "num_orbitals": 4.0, "path": best}, decodeResult(t, out))
}

func TestEDMCommand_ReferencePairing(t *testing.T) {
	// GIVEN two candidates whose S1/S3 dipoles mirror each other
	dir := t.TempDir()
	mirrored := testutil.WriteFile(t, dir, "2-2/mol.csv", testutil.DipoleCSV("2.5", "2.0", "1.5"))
	straight := testutil.WriteFile(t, dir, "4-4/mol.csv", testutil.DipoleCSV("1.5", "2.0", "2.5"))
	// Top-level TD-DFT references for S1, S2, S3 in lexical order
	testutil.WriteFile(t, dir, "ref_1.csv", testutil.DipoleCSV("2.5"))
	testutil.WriteFile(t, dir, "ref_2.csv", testutil.DipoleCSV("2.0"))
	testutil.WriteFile(t, dir, "ref_3.csv", testutil.DipoleCSV("1.5"))

	t.Run("references discovered in the data directory", func(t *testing.T) {
		resetChanged(edmCmd)

		// WHEN edm-as runs without -r
		out := executeRoot(t, "edm-as", "--log", "error", "-c", "-d", dir)

		// THEN ref_1..ref_3 pair with the default S1,S2,S3
		assert.Equal(t, mirrored, decodeResult(t, out)["path"])
	})

	t.Run("explicit references follow the -S order", func(t *testing.T) {
		resetChanged(edmCmd)
		refs := t.TempDir()
		s3 := testutil.WriteFile(t, refs, "td_s3.csv", testutil.DipoleCSV("2.5"))
		s1 := testutil.WriteFile(t, refs, "td_s1.csv", testutil.DipoleCSV("1.5"))

		// WHEN states are given as 3,1 with references in the same order
		out := executeRoot(t, "edm-as", "--log", "error", "-c", "-d", dir, "-S", "3,1", "-r", s3+","+s1)

		// THEN S3=2.5 and S1=1.5 select the straight candidate; swapped pairing would pick the mirrored one
		result := decodeResult(t, out)
		assert.Equal(t, straight, result["path"])
		assert.Equal(t, 4.0, result["num_electrons"])
	})
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"gdm-as", "edm-as", "plot"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestEDMCommand_Defaults(t *testing.T) {
	// DefValue is immune to values left by earlier Execute calls.
	assert.Equal(t, "[1,2,3]", edmCmd.Flags().Lookup("states").DefValue)
	assert.Equal(t, "euclidean", edmCmd.Flags().Lookup("metric").DefValue)
	assert.Equal(t, "1", edmCmd.Flags().Lookup("csv-base-state").DefValue)
	assert.Equal(t, "false", plotCmd.Flags().Lookup("no-legend").DefValue)
}

func TestGDMCommand_ReferenceFlagRequired(t *testing.T) {
	flag := gdmCmd.Flags().Lookup("ref-dipole")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
	assert.Equal(t, "r", flag.Shorthand)
	assert.NotNil(t, gdmCmd.Flags().Lookup("trace-out"))
	assert.Nil(t, plotCmd.Flags().Lookup("trace-out"))
	assert.Equal(t, "dipoles.png", plotCmd.Flags().Lookup("output").DefValue)
}
