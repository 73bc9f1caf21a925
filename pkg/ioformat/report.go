package ioformat

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Report is one batch job's reproducible dot-product result, in a form
// suitable for JSON output: the value plus its bit pattern for bit-exact
// comparison downstream.
type Report struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Bits  uint64  `json:"bits"`
	Hex   string  `json:"hex"`
}

// NewReport builds a Report from a computed dot product.
func NewReport(name string, value float64) Report {
	bits := math.Float64bits(value)
	return Report{
		Name:  name,
		Value: value,
		Bits:  bits,
		Hex:   fmt.Sprintf("0x%016X", bits),
	}
}

// WriteJSON writes a slice of reports as a JSON array, matching the
// teacher's result.WriteJSON convention (indented, one call, caller-owned
// writer).
func WriteJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// Checkpoint holds batch-job progress for resuming a large manifest run.
type Checkpoint struct {
	Reports   []Report
	Completed int // number of manifest entries fully computed
}

func init() {
	gob.Register(Report{})
}

// SaveCheckpoint writes batch progress to path.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: create checkpoint %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(ckpt); err != nil {
		return fmt.Errorf("ioformat: encode checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads batch progress from path.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open checkpoint %s: %w", path, err)
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, fmt.Errorf("ioformat: decode checkpoint: %w", err)
	}
	return &ckpt, nil
}
