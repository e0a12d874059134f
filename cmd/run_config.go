package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// RunConfig holds settings that may be kept in a configuration file instead
// of being repeated on every invocation. Pointer fields distinguish "unset"
// from zero.
type RunConfig struct {
	LogLevel     string `yaml:"log_level" toml:"log_level"`
	Jobs         *int   `yaml:"jobs" toml:"jobs"`
	Metric       string `yaml:"metric" toml:"metric"`
	CSVBaseState *int   `yaml:"csv_base_state" toml:"csv_base_state"`
	States       []int  `yaml:"states" toml:"states"`
	TraceOut     string `yaml:"trace_out" toml:"trace_out"`
	PlotOut      string `yaml:"plot_out" toml:"plot_out"`
}

// LoadRunConfig parses a run configuration file. The format follows the
// extension (.yaml/.yml or .toml); unknown keys are errors in both, so typos
// never pass silently.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config %s: %w", path, err)
	}

	var cfg RunConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing run config %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("run config %s: unsupported extension (want .yaml, .yml or .toml)", path)
	}

	if cfg.Jobs != nil && *cfg.Jobs < 0 {
		return nil, fmt.Errorf("run config %s: jobs must be >= 0, got %d", path, *cfg.Jobs)
	}
	if cfg.CSVBaseState != nil && *cfg.CSVBaseState < 0 {
		return nil, fmt.Errorf("run config %s: csv_base_state must be >= 0, got %d", path, *cfg.CSVBaseState)
	}
	return &cfg, nil
}
