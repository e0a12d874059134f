package trace

// CandidateRecord captures one scored candidate.
type CandidateRecord struct {
	Path      string  `yaml:"path"`
	Electrons *int    `yaml:"num_electrons"`
	Orbitals  *int    `yaml:"num_orbitals"`
	Score     float64 `yaml:"score"`
	Selected  bool    `yaml:"selected,omitempty"`
}

// DroppedRecord captures a candidate discarded before scoring.
type DroppedRecord struct {
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
}
