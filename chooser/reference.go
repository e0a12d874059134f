package chooser

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Reference is the resolved dipole the candidates are compared against:
// a scalar for GDM-AS or a state → dipole mapping for EDM-AS.
type Reference struct {
	kind    ModeKind
	scalar  float64
	byState map[int]float64
}

// ScalarReference builds a GDM-AS reference.
func ScalarReference(v float64) Reference {
	return Reference{kind: ModeGDM, scalar: v}
}

// StateReference builds an EDM-AS reference from a state → dipole mapping.
func StateReference(byState map[int]float64) Reference {
	m := make(map[int]float64, len(byState))
	for k, v := range byState {
		m[k] = v
	}
	return Reference{kind: ModeEDM, byState: m}
}

// Kind returns the mode the reference was resolved for.
func (r Reference) Kind() ModeKind { return r.kind }

// Scalar returns the GDM-AS reference dipole.
func (r Reference) Scalar() float64 { return r.scalar }

// State returns the EDM-AS reference dipole for a state.
func (r Reference) State(s int) (float64, bool) {
	v, ok := r.byState[s]
	return v, ok
}

// States returns the referenced states in ascending order.
func (r Reference) States() []int {
	out := make([]int, 0, len(r.byState))
	for s := range r.byState {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func (r Reference) String() string {
	if r.kind == ModeGDM {
		return strconv.FormatFloat(r.scalar, 'g', -1, 64)
	}
	parts := make([]string, 0, len(r.byState))
	for _, s := range r.States() {
		parts = append(parts, fmt.Sprintf("S%d=%g", s, r.byState[s]))
	}
	return strings.Join(parts, " ")
}

// ResolveGroundReference turns the GDM-AS reference argument into a scalar.
// A number is used directly; a .log/.log.gz or .csv path is read in scalar
// mode. Other arguments are configuration errors.
func ResolveGroundReference(ext *Extractor, arg string) (Reference, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Reference{}, configErrorf("reference dipole must not be empty")
	}
	if v, err := strconv.ParseFloat(arg, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Reference{}, configErrorf("reference dipole must be finite, got %v", v)
		}
		logrus.Infof("using literal reference dipole %g", v)
		return ScalarReference(v), nil
	}
	if !IsDipoleFile(arg) {
		return Reference{}, configErrorf("reference %q is neither a number nor a .log/.csv file", arg)
	}
	v, err := ext.ExtractScalar(arg)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %w", ErrReferenceResolution, err)
	}
	logrus.Infof("reference dipole %g from %s", v, arg)
	return ScalarReference(v), nil
}

// ResolveStateReference pairs reference files with states in the user's
// order, reads the targeted state's dipole from each file and keys the
// result by state.
func ResolveStateReference(ext *Extractor, states StateSelection, paths []string) (Reference, error) {
	if states.Len() == 0 {
		return Reference{}, configErrorf("state selection must not be empty")
	}
	if len(paths) != states.Len() {
		return Reference{}, configErrorf("%d reference files given for %d states (%s)", len(paths), states.Len(), states)
	}
	for _, p := range paths {
		if !IsDipoleFile(p) {
			return Reference{}, configErrorf("reference %q is not a .log/.csv file", p)
		}
	}

	byState := make(map[int]float64, len(paths))
	for i, state := range states.Order() {
		v, err := ext.ExtractTargetState(paths[i])
		if err != nil {
			return Reference{}, fmt.Errorf("%w: state S%d: %w", ErrReferenceResolution, state, err)
		}
		logrus.Infof("reference dipole S%d = %g from %s", state, v, paths[i])
		byState[state] = v
	}
	return StateReference(byState), nil
}
