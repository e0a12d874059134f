package chooser

import "fmt"

// DipoleValue is either a single dipole (GDM-AS) or per-state dipoles
// indexed from a base state (EDM-AS). The zero value is an empty scalar.
type DipoleValue struct {
	vector bool
	scalar float64
	base   int
	values []float64

	// Cartesian components of a scalar read from a log; CSVs carry none.
	xyz    [3]float64
	hasXYZ bool
}

// ScalarDipole wraps a single dipole value.
func ScalarDipole(v float64) DipoleValue {
	return DipoleValue{scalar: v}
}

// WithComponents returns a copy of d carrying the x, y, z components the
// scalar was derived from.
func (d DipoleValue) WithComponents(x, y, z float64) DipoleValue {
	d.xyz = [3]float64{x, y, z}
	d.hasXYZ = true
	return d
}

// Components returns the x, y, z components, if the source provided them.
func (d DipoleValue) Components() (x, y, z float64, ok bool) {
	return d.xyz[0], d.xyz[1], d.xyz[2], d.hasXYZ
}

// VectorDipole wraps per-state dipoles; values[i] belongs to state base+i.
func VectorDipole(base int, values []float64) DipoleValue {
	return DipoleValue{vector: true, base: base, values: append([]float64(nil), values...)}
}

// IsVector reports whether the value holds per-state dipoles.
func (d DipoleValue) IsVector() bool { return d.vector }

// Scalar returns the single dipole. For vectors it returns 0.
func (d DipoleValue) Scalar() float64 { return d.scalar }

// Base returns the state index of the first vector entry.
func (d DipoleValue) Base() int { return d.base }

// Len returns the number of vector entries (0 for scalars).
func (d DipoleValue) Len() int { return len(d.values) }

// At returns the dipole of the given state index.
func (d DipoleValue) At(state int) (float64, bool) {
	if !d.vector {
		return 0, false
	}
	i := state - d.base
	if i < 0 || i >= len(d.values) {
		return 0, false
	}
	return d.values[i], true
}

// Select returns the dipoles of the given states, in order.
func (d DipoleValue) Select(states []int) ([]float64, error) {
	out := make([]float64, len(states))
	for i, s := range states {
		v, ok := d.At(s)
		if !ok {
			return nil, fmt.Errorf("no dipole for state %d", s)
		}
		out[i] = v
	}
	return out, nil
}

func (d DipoleValue) String() string {
	if d.vector {
		return fmt.Sprintf("%v (from state %d)", d.values, d.base)
	}
	return fmt.Sprintf("%g", d.scalar)
}
