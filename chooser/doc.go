// Package chooser selects the active space whose dipole moment best matches a
// reference calculation.
//
// # Reading Guide
//
//   - name.go: active-space inference from file names ("10-10" → 10 electrons, 10 orbitals)
//   - extract.go: log/CSV files → DipoleValue, with "no data" reported as *ExtractionError
//   - collect.go: builds the candidate list, dropping files without usable data
//   - reference.go: resolves the GDM-AS scalar or EDM-AS per-state reference
//   - select.go: scores candidates and picks the minimum (earliest wins ties)
//
// # Modes
//
// GDM-AS compares one ground-state dipole per candidate with one reference
// value. EDM-AS compares dipoles over a StateSelection of excited states using
// a named Metric (Euclidean by default). Mode carries the variant through the
// collector, resolver and scorer.
//
// Log parsing lives in the logparse sub-package behind the logparse.Parser
// interface; the score trace lives in trace/ and charts in chart/.
package chooser
