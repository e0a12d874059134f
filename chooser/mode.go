package chooser

import (
	"fmt"
	"slices"
	"strings"
)

// ModeKind tags the selection algorithm.
type ModeKind int

const (
	// ModeGDM compares ground-state dipoles (GDM-AS).
	ModeGDM ModeKind = iota
	// ModeEDM compares dipoles over a set of excited states (EDM-AS).
	ModeEDM
)

func (k ModeKind) String() string {
	switch k {
	case ModeGDM:
		return "gdm-as"
	case ModeEDM:
		return "edm-as"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// DefaultStates is the EDM-AS state selection when none is given (S1, S2, S3).
var DefaultStates = []int{1, 2, 3}

// StateSelection is a non-empty set of unique, non-negative state indices.
// The user's order is kept so reference files can be paired positionally.
type StateSelection struct {
	order []int
}

// NewStateSelection validates states and builds a StateSelection.
func NewStateSelection(states []int) (StateSelection, error) {
	if len(states) == 0 {
		return StateSelection{}, configErrorf("state selection must not be empty")
	}
	seen := make(map[int]bool, len(states))
	for _, s := range states {
		if s < 0 {
			return StateSelection{}, configErrorf("state index %d must be non-negative", s)
		}
		if seen[s] {
			return StateSelection{}, configErrorf("duplicate state index %d", s)
		}
		seen[s] = true
	}
	return StateSelection{order: append([]int(nil), states...)}, nil
}

// Order returns the states in the order the user gave them.
func (s StateSelection) Order() []int { return append([]int(nil), s.order...) }

// Sorted returns the states in ascending order.
func (s StateSelection) Sorted() []int {
	out := s.Order()
	slices.Sort(out)
	return out
}

// Len returns the number of selected states.
func (s StateSelection) Len() int { return len(s.order) }

// Min returns the lowest selected state.
func (s StateSelection) Min() int { return slices.Min(s.order) }

// Max returns the highest selected state.
func (s StateSelection) Max() int { return slices.Max(s.order) }

func (s StateSelection) String() string {
	parts := make([]string, len(s.order))
	for i, st := range s.order {
		parts[i] = fmt.Sprintf("S%d", st)
	}
	return strings.Join(parts, ",")
}

// Mode is the tagged selection variant carried through collection,
// reference resolution and scoring.
type Mode struct {
	Kind   ModeKind
	States StateSelection // EDM only
}

// GroundStateMode returns the GDM-AS mode.
func GroundStateMode() Mode { return Mode{Kind: ModeGDM} }

// ExcitedStateMode returns the EDM-AS mode over states.
func ExcitedStateMode(states StateSelection) Mode {
	return Mode{Kind: ModeEDM, States: states}
}

func (m Mode) String() string {
	if m.Kind == ModeEDM {
		return fmt.Sprintf("%s[%s]", m.Kind, m.States)
	}
	return m.Kind.String()
}
