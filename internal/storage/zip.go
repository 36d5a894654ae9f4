package storage

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"time"
)

// ZipArchive writes a Deflate-compressed zip container to an io.Writer.
// Entries are appended one at a time; Close writes the central directory
// and must be called exactly once, after the last entry.
type ZipArchive struct {
	zw      *zip.Writer
	entries int
}

// NewZipArchive starts a zip container on w. level follows compress/flate
// (1 fastest, 9 best); out-of-range values fall back to the default level.
func NewZipArchive(w io.Writer, level int) *ZipArchive {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = flate.DefaultCompression
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &ZipArchive{zw: zw}
}

// Add appends one file. name is used verbatim; callers pick unique names
// with a Namer.
func (a *ZipArchive) Add(name string, data []byte) error {
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing zip entry %s: %w", name, err)
	}
	a.entries++
	return nil
}

// Entries returns the number of files added so far.
func (a *ZipArchive) Entries() int {
	return a.entries
}

// Close finalizes the container.
func (a *ZipArchive) Close() error {
	if err := a.zw.Close(); err != nil {
		return fmt.Errorf("finalizing zip: %w", err)
	}
	return nil
}
