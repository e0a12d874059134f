package logparse

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single log line; Molcas orbital dumps can exceed
// bufio's default 64 KiB token size.
const maxLineBytes = 4 << 20

const (
	molcasBanner      = "OpenMolcas"
	molcasLegacy      = "MOLCAS"
	molcasModuleStart = "--- Start Module:"
	molcasModuleStop  = "--- Stop Module:"
	molcasRootMarker  = "for root number:"
	molcasDipoleHead  = "Dipole Moment (Debye):"
	molcasTotalKey    = "Total="
	molcasDipoleRule  = "rasscf"

	gaussianBanner      = "Entering Gaussian System"
	gaussianDipoleHead  = "Dipole moment (field-independent basis, Debye):"
	gaussianTotalKey    = "Tot="
	gaussianSCFDone     = "SCF Done:"
	gaussianExcitations = "Excitation energies and oscillator strengths:"
)

// Parse reads a program log and collects its dipole records.
// Returns ErrNoDipoles (wrapped) when the log holds no dipole block.
func Parse(r io.Reader) (*Calculation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	p := &lineParser{byRoot: make(map[int]Dipole)}
	for scanner.Scan() {
		if err := p.feed(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	return p.result()
}

// lineParser is the streaming state machine behind Parse.
type lineParser struct {
	lineNo  int
	program Program

	// Molcas module tracking. When a log carries module markers, only
	// dipoles printed inside the rasscf module are kept.
	sawModules bool
	module     string

	root        int // current root from "for root number:"; 0 when unset
	nextRoot    int // sequential root counter for logs without root markers
	awaitMolcas bool
	byRoot      map[int]Dipole

	awaitGaussian bool
	// afterExcitations is set between a TD-DFT excitation table and the next
	// SCF convergence; dipoles printed there belong to an excited density.
	afterExcitations bool
	gaussian         []Dipole
}

func (p *lineParser) feed(line string) error {
	p.lineNo++

	switch {
	case strings.Contains(line, gaussianBanner):
		p.program = ProgramGaussian
		return nil
	case p.program == ProgramUnknown && (strings.Contains(line, molcasBanner) || strings.Contains(line, molcasLegacy)):
		p.program = ProgramMolcas
	}

	if strings.Contains(line, molcasModuleStart) {
		p.sawModules = true
		p.module = strings.ToLower(firstFieldAfter(line, molcasModuleStart))
		p.root = 0
		return nil
	}
	if strings.Contains(line, molcasModuleStop) {
		p.module = ""
		p.root = 0
		return nil
	}

	if p.program == ProgramGaussian {
		switch {
		case strings.Contains(line, gaussianSCFDone):
			p.afterExcitations = false
		case strings.Contains(line, gaussianExcitations):
			p.afterExcitations = true
		}
	}

	if p.awaitGaussian {
		if !strings.Contains(line, gaussianTotalKey) {
			return nil
		}
		p.awaitGaussian = false
		d, err := parseKeyedComponents(line, gaussianTotalKey)
		if err != nil {
			return fmt.Errorf("gaussian dipole: %w", err)
		}
		d.Root = len(p.gaussian) + 1
		d.Excited = p.afterExcitations
		p.gaussian = append(p.gaussian, d)
		return nil
	}
	if strings.Contains(line, gaussianDipoleHead) {
		if p.program == ProgramUnknown {
			p.program = ProgramGaussian
		}
		p.awaitGaussian = true
		return nil
	}

	if idx := strings.Index(line, molcasRootMarker); idx >= 0 {
		root, err := strconv.Atoi(strings.TrimSpace(line[idx+len(molcasRootMarker):]))
		if err != nil {
			return fmt.Errorf("malformed root marker %q: %w", strings.TrimSpace(line), err)
		}
		p.root = root
		return nil
	}

	if p.awaitMolcas {
		if !strings.Contains(line, molcasTotalKey) {
			return nil
		}
		p.awaitMolcas = false
		if p.sawModules && p.module != molcasDipoleRule {
			return nil
		}
		d, err := parseKeyedComponents(line, molcasTotalKey)
		if err != nil {
			return fmt.Errorf("molcas dipole: %w", err)
		}
		root := p.root
		if root == 0 {
			p.nextRoot++
			root = p.nextRoot
		}
		d.Root = root
		if _, seen := p.byRoot[root]; !seen {
			p.byRoot[root] = d
		}
		return nil
	}
	if strings.Contains(line, molcasDipoleHead) {
		if p.program == ProgramUnknown {
			p.program = ProgramMolcas
		}
		p.awaitMolcas = true
	}
	return nil
}

func (p *lineParser) result() (*Calculation, error) {
	calc := &Calculation{Program: p.program}
	if p.program == ProgramGaussian {
		calc.Dipoles = p.gaussian
	} else {
		roots := make([]int, 0, len(p.byRoot))
		for r := range p.byRoot {
			roots = append(roots, r)
		}
		sort.Ints(roots)
		for _, r := range roots {
			calc.Dipoles = append(calc.Dipoles, p.byRoot[r])
		}
	}
	if len(calc.Dipoles) == 0 {
		return nil, ErrNoDipoles
	}
	return calc, nil
}

// parseKeyedComponents reads "X= 1.0 Y= 2.0 Z= 3.0 <totalKey> 4.0" style lines.
// Values may also be glued to their key ("X=1.0").
func parseKeyedComponents(line, totalKey string) (Dipole, error) {
	var d Dipole
	fields := strings.Fields(line)
	seen := 0
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			continue
		}
		key := f[:eq+1]
		var dst *float64
		switch key {
		case "X=":
			dst = &d.X
		case "Y=":
			dst = &d.Y
		case "Z=":
			dst = &d.Z
		case totalKey:
			dst = &d.Total
		default:
			continue
		}
		raw := f[eq+1:]
		if raw == "" {
			if i+1 >= len(fields) {
				return Dipole{}, fmt.Errorf("missing value for %s", key)
			}
			i++
			raw = fields[i]
		}
		// Fortran double-precision exponents ("1.0D+00") appear in older logs.
		v, err := strconv.ParseFloat(strings.Replace(raw, "D", "E", 1), 64)
		if err != nil {
			return Dipole{}, fmt.Errorf("invalid value %q for %s: %w", raw, key, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Dipole{}, fmt.Errorf("non-finite value %q for %s", raw, key)
		}
		*dst = v
		seen++
	}
	if seen == 0 {
		return Dipole{}, fmt.Errorf("no dipole components in %q", strings.TrimSpace(line))
	}
	return d, nil
}

// firstFieldAfter returns the first whitespace-delimited word following marker.
func firstFieldAfter(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	fields := strings.Fields(line[idx+len(marker):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
