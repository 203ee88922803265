// Package report writes one JSON line per collected neighborhood into a
// zstd-compressed file, and reads such files back.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/halo/grid"
)

// Entry describes the neighborhood of one tile.
type Entry struct {
	Key       string           `json:"key"`
	Col       int              `json:"col"`
	Row       int              `json:"row"`
	Neighbors []grid.Direction `json:"neighbors"`
}

// Writer appends entries to a .jsonl.zst file. Safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

// Create creates (truncating) the report file at path.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 256*1024)}, nil
}

// Write appends e as one line.
func (w *Writer) Write(e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++

	return nil
}

// Count returns the number of entries written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.n
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	if err := w.w.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

// Read decodes every entry of a report file.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Entry
	jd := json.NewDecoder(dec)
	for {
		var e Entry
		if err := jd.Decode(&e); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("report: entry %d: %w", len(out), err)
		}
		out = append(out, e)
	}

	return out, nil
}
