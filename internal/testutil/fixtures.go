// Package testutil provides shared test fixtures for the chooser packages:
// synthetic OpenMolcas and Gaussian logs and dipole CSV files written into
// per-test temporary directories.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// MolcasLog renders an OpenMolcas RASSCF log with one dipole block per root.
// totals[i] becomes the Total= dipole of root i+1 (state i).
// A CASPT2 module with deliberately different dipoles follows, so parsers
// that ignore module boundaries pick up wrong values.
func MolcasLog(totals ...float64) string {
	var b strings.Builder
	b.WriteString("                                              OpenMolcas\n")
	b.WriteString("--- Start Module: gateway at Mon Mar 14 10:00:00 2022 ---\n")
	b.WriteString("      Basis set label: C.ANO-RCC-VDZP\n")
	b.WriteString("--- Stop Module: gateway at Mon Mar 14 10:00:01 2022 /rc=_RC_ALL_IS_WELL_ ---\n")
	b.WriteString("--- Start Module: rasscf at Mon Mar 14 10:00:02 2022 ---\n")
	for i, total := range totals {
		writeMolcasRoot(&b, i+1, total)
	}
	b.WriteString("--- Stop Module: rasscf at Mon Mar 14 10:05:00 2022 /rc=_RC_ALL_IS_WELL_ ---\n")
	b.WriteString("--- Start Module: caspt2 at Mon Mar 14 10:05:01 2022 ---\n")
	for i := range totals {
		writeMolcasRoot(&b, i+1, 99.0)
	}
	b.WriteString("--- Stop Module: caspt2 at Mon Mar 14 10:09:00 2022 /rc=_RC_ALL_IS_WELL_ ---\n")
	return b.String()
}

func writeMolcasRoot(b *strings.Builder, root int, total float64) {
	fmt.Fprintf(b, "      Expectation values of various properties for root number:  %d\n", root)
	b.WriteString("      -------------------------------------------------------------\n")
	b.WriteString("      Dipole Moment (Debye):\n")
	b.WriteString("      Origin of the operator (Ang)=    0.0000    0.0000    0.0000\n")
	fmt.Fprintf(b, "                X=    0.0000E+00               Y=    0.0000E+00               Z=    %.8E           Total=    %.8E\n",
		total, math.Abs(total))
}

// GaussianLog renders a Gaussian log with one dipole block per value, in order.
func GaussianLog(totals ...float64) string {
	var b strings.Builder
	b.WriteString(" Entering Gaussian System, Link 0=g16\n")
	b.WriteString(" #p td=(root=1) b3lyp/6-31g(d) density=current\n")
	for _, total := range totals {
		writeGaussianDipole(&b, total)
	}
	b.WriteString(" Normal termination of Gaussian 16\n")
	return b.String()
}

// GaussianTDLog renders a TD-DFT density=current job: the SCF dipole, the
// excitation table, then the dipole of the targeted excited-state density.
func GaussianTDLog(ground, excited float64) string {
	var b strings.Builder
	b.WriteString(" Entering Gaussian System, Link 0=g16\n")
	b.WriteString(" #p td=(root=1) b3lyp/6-31g(d) density=current\n")
	b.WriteString(" SCF Done:  E(RB3LYP) =  -232.248576   A.U. after   12 cycles\n")
	writeGaussianDipole(&b, ground)
	b.WriteString(" Excitation energies and oscillator strengths:\n")
	b.WriteString(" Excited State   1:      Singlet-B2U    5.4321 eV  228.24 nm  f=0.0000  <S**2>=0.000\n")
	writeGaussianDipole(&b, excited)
	b.WriteString(" Normal termination of Gaussian 16\n")
	return b.String()
}

func writeGaussianDipole(b *strings.Builder, total float64) {
	b.WriteString(" Dipole moment (field-independent basis, Debye):\n")
	fmt.Fprintf(b, "    X=              0.0000    Y=              0.0000    Z=   %17.4f  Tot=   %17.4f\n", total, math.Abs(total))
}

// DipoleCSV renders a dipole CSV: one header line then one value per row.
func DipoleCSV(cells ...string) string {
	var b strings.Builder
	b.WriteString("dipole_debye\n")
	for _, c := range cells {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes content under dir/name, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteGzipFile writes gzip-compressed content under dir/name.
func WriteGzipFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", path, err)
	}
	defer f.Close() //nolint:errcheck // closed after the gzip writer flushes
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("compressing fixture %s: %v", path, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("flushing fixture %s: %v", path, err)
	}
	return path
}
