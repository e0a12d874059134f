package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dipole-as/active-space-chooser/chooser"
)

// dataFilePatterns returns the glob patterns for calculation files.
func dataFilePatterns(useCSV bool) []string {
	if useCSV {
		return []string{"*.csv"}
	}
	return []string{"*.log", "*.log.gz"}
}

// discoverCandidates finds multi-reference calculations laid out as
// <dataDir>/<n>-<m>/<calc>.log (or .csv). Results are sorted so input order,
// and therefore tie-breaking, is reproducible.
func discoverCandidates(dataDir string, useCSV bool) ([]string, error) {
	if err := requireDir(dataDir); err != nil {
		return nil, err
	}
	var files []string
	for _, pattern := range dataFilePatterns(useCSV) {
		matches, err := filepath.Glob(filepath.Join(dataDir, "*", pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", chooser.ErrConfiguration, err)
		}
		for _, path := range matches {
			if !isRegularFile(path) {
				continue
			}
			if chooser.IsActiveSpaceLabel(filepath.Base(filepath.Dir(path))) {
				files = append(files, path)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: did not find any multi-reference calculation files in %s", chooser.ErrConfiguration, dataDir)
	}
	sort.Strings(files)
	return files, nil
}

// discoverReferences finds the TD-DFT reference files directly inside dataDir,
// sorted lexically so they pair with states in a predictable order.
func discoverReferences(dataDir string, useCSV bool) ([]string, error) {
	if err := requireDir(dataDir); err != nil {
		return nil, err
	}
	var files []string
	for _, pattern := range dataFilePatterns(useCSV) {
		matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", chooser.ErrConfiguration, err)
		}
		for _, path := range matches {
			if isRegularFile(path) {
				files = append(files, path)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: did not find td-dft calculation file in %s", chooser.ErrConfiguration, dataDir)
	}
	sort.Strings(files)
	return files, nil
}

// resolveCandidatePaths merges explicit file arguments with directory
// discovery. With neither, the current directory is searched.
func resolveCandidatePaths(args []string, dataDir string, useCSV bool) ([]string, error) {
	paths := append([]string(nil), args...)
	if dataDir == "" && len(paths) > 0 {
		return paths, nil
	}
	if dataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", chooser.ErrConfiguration, err)
		}
		dataDir = wd
	}
	found, err := discoverCandidates(dataDir, useCSV)
	if err != nil {
		return nil, err
	}
	return append(paths, found...), nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s does not exist", chooser.ErrConfiguration, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", chooser.ErrConfiguration, dir)
	}
	return nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
