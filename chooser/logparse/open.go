package logparse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipSuffix marks compressed logs, as archived by most cluster job scripts.
const gzipSuffix = ".gz"

// IsCompressed reports whether path names a gzip-compressed log.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), gzipSuffix)
}

// Open returns a reader over the (decompressed) contents of a log file.
// The caller must Close it.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	if !IsCompressed(path) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening gzip log %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

// gzipFile closes both the decompressor and the underlying file.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
