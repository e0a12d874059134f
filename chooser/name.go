package chooser

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// activeSpacePattern matches "<electrons>-<orbitals>" labels such as "14-14".
var activeSpacePattern = regexp.MustCompile(`(\d+)-(\d+)`)

// ActiveSpace is the (electrons, orbitals) pair inferred from a path.
// Either field is nil when the path carries no label.
type ActiveSpace struct {
	Electrons *int
	Orbitals  *int
}

// Known reports whether both fields were inferred.
func (a ActiveSpace) Known() bool { return a.Electrons != nil && a.Orbitals != nil }

// InferActiveSpace extracts the active space from a calculation path.
//
// The base filename is searched first and its leftmost "<n>-<m>" match wins.
// When the base name has no label, the immediate parent directory name is
// searched the same way, matching the "<data-dir>/<n>-<m>/<calc>.log" layout.
// No chemical sanity checks are applied.
func InferActiveSpace(path string) ActiveSpace {
	if as, ok := matchActiveSpace(filepath.Base(path)); ok {
		return as
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return ActiveSpace{}
	}
	if as, ok := matchActiveSpace(filepath.Base(dir)); ok {
		return as
	}
	return ActiveSpace{}
}

func matchActiveSpace(name string) (ActiveSpace, bool) {
	m := activeSpacePattern.FindStringSubmatch(name)
	if m == nil {
		return ActiveSpace{}, false
	}
	electrons, err := strconv.Atoi(m[1])
	if err != nil {
		return ActiveSpace{}, false // overflow; treat as unlabelled
	}
	orbitals, err := strconv.Atoi(m[2])
	if err != nil {
		return ActiveSpace{}, false
	}
	return ActiveSpace{Electrons: &electrons, Orbitals: &orbitals}, true
}

// IsActiveSpaceLabel reports whether name is exactly an "<n>-<m>" label.
func IsActiveSpaceLabel(name string) bool {
	loc := activeSpacePattern.FindStringIndex(name)
	return loc != nil && loc[0] == 0 && loc[1] == len(name)
}
