// Package logparse extracts dipole-moment records from quantum-chemistry
// program output (OpenMolcas and Gaussian log files).
//
// The chooser package depends only on the Parser interface and on the two
// views a Calculation offers: the ground-state dipole and the dipole of the
// k-th state. Any implementation that yields those views may be substituted.
package logparse

import (
	"errors"
	"fmt"
	"math"
)

// Program identifies the quantum-chemistry package that wrote a log.
type Program string

const (
	// ProgramUnknown is reported when no program banner or dipole block was recognised.
	ProgramUnknown Program = ""
	// ProgramMolcas marks OpenMolcas / Molcas output (RASSCF, CASPT2 modules).
	ProgramMolcas Program = "molcas"
	// ProgramGaussian marks Gaussian output (SCF and TD-DFT jobs).
	ProgramGaussian Program = "gaussian"
)

// ErrNoDipoles is returned when a log contains no dipole-moment records.
var ErrNoDipoles = errors.New("no dipole moment records found")

// Dipole is one dipole-moment record in Debye.
type Dipole struct {
	Root  int // 1-based root number (Molcas); block ordinal for Gaussian
	X     float64
	Y     float64
	Z     float64
	Total float64
	// Excited marks a Gaussian block printed for a TD-DFT excited-state
	// density (after the excitation table, before the next SCF).
	Excited bool
}

// Magnitude returns Total, or the vector norm when the log omitted the total.
func (d Dipole) Magnitude() float64 {
	if d.Total != 0 || (d.X == 0 && d.Y == 0 && d.Z == 0) {
		return d.Total
	}
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Calculation holds the dipole records parsed from a single log.
// Dipoles are ordered by root for Molcas and by appearance for Gaussian.
type Calculation struct {
	Program Program
	Dipoles []Dipole
}

// GroundState returns the dipole of the electronic ground state.
//
// For Molcas this is root 1. A Gaussian log reports one dipole block per
// density it analyses: every SCF (one per optimisation cycle) and, for
// TD-DFT jobs with density=current, the excited-state density after the
// excitation table. The ground state is the last SCF block, so a converged
// geometry wins and excited densities are never returned.
func (c *Calculation) GroundState() (Dipole, error) {
	if c == nil || len(c.Dipoles) == 0 {
		return Dipole{}, ErrNoDipoles
	}
	if c.Program != ProgramGaussian {
		return c.Dipoles[0], nil
	}
	for i := len(c.Dipoles) - 1; i >= 0; i-- {
		if !c.Dipoles[i].Excited {
			return c.Dipoles[i], nil
		}
	}
	return Dipole{}, fmt.Errorf("%w: only excited-state densities reported", ErrNoDipoles)
}

// FinalDensity returns the dipole of the density the calculation targeted:
// the last Gaussian block, which is the excited state a TD-DFT
// density=current job optimised or analysed. For Molcas it is root 1, the
// same as GroundState.
func (c *Calculation) FinalDensity() (Dipole, error) {
	if c == nil || len(c.Dipoles) == 0 {
		return Dipole{}, ErrNoDipoles
	}
	if c.Program == ProgramGaussian {
		return c.Dipoles[len(c.Dipoles)-1], nil
	}
	return c.Dipoles[0], nil
}

// State returns the dipole for state k (0 = ground, k = Sk), which is
// root k+1 of a multi-root calculation.
func (c *Calculation) State(k int) (Dipole, bool) {
	if c == nil || k < 0 {
		return Dipole{}, false
	}
	if c.Program == ProgramGaussian {
		if k != 0 {
			return Dipole{}, false
		}
		d, err := c.GroundState()
		return d, err == nil
	}
	for _, d := range c.Dipoles {
		if d.Root == k+1 {
			return d, true
		}
	}
	return Dipole{}, false
}

// NumStates returns how many states carry a dipole record.
func (c *Calculation) NumStates() int {
	if c == nil {
		return 0
	}
	return len(c.Dipoles)
}

// Parser turns a log file into a Calculation.
type Parser interface {
	ParseFile(path string) (*Calculation, error)
}

// FileParser is the default Parser. It detects the program from the log
// contents and transparently decompresses gzip files.
type FileParser struct{}

// ParseFile implements Parser.
func (FileParser) ParseFile(path string) (*Calculation, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only file

	calc, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return calc, nil
}
