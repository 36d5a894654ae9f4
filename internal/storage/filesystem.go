// Package storage holds the output sinks for downloaded logos: a zip
// container and a plain output directory. Both name files through a Namer
// so collisions never overwrite each other.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirPrefix is the default prefix of CLI output directories.
const DirPrefix = "Logos"

// TimestampedDir returns "<prefix>-YYYYMMDDhhmmss" for t.
// Go note: time layouts are written using the reference time
// Mon Jan 2 15:04:05 2006, not format verbs.
func TimestampedDir(prefix string, t time.Time) string {
	return prefix + "-" + t.Format("20060102150405")
}

// OutputDir writes logo files into a single directory:
// {dir}/{company}.{ext}
type OutputDir struct {
	dir   string
	namer *Namer
}

// NewOutputDir creates the directory (and parents) if needed.
func NewOutputDir(dir string) (*OutputDir, error) {
	// 0755: owner rwx, group rx, others rx.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputDir{dir: dir, namer: NewNamer()}, nil
}

// Path returns the directory path.
func (o *OutputDir) Path() string {
	return o.dir
}

// Write saves data under a unique name derived from base and ext and
// returns the full path of the written file.
func (o *OutputDir) Write(base, ext string, data []byte) (string, error) {
	path := filepath.Join(o.dir, o.namer.Name(base, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing logo file: %w", err)
	}
	return path, nil
}
