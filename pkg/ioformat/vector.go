// Package ioformat handles the file formats the reprodot CLI reads and
// writes: raw little-endian binary64 vectors, CSV vectors, JSON batch
// reports, and gob-encoded resumable checkpoints. None of this lives in the
// core engine (pkg/kernel takes []float64 directly); it exists because a
// complete, runnable repository needs a way to get vectors in and results
// out.
package ioformat

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Format selects a vector file's on-disk representation.
type Format int

const (
	// FormatBinary is raw little-endian float64 values, no header.
	FormatBinary Format = iota
	// FormatCSV is one float64 per line (or comma-separated on one line).
	FormatCSV
)

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "binary", "bin", "raw":
		return FormatBinary, nil
	case "csv", "text":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("ioformat: unknown format %q (want \"binary\" or \"csv\")", s)
	}
}

// ReadVector reads a vector file in the given format.
func ReadVector(path string, format Format) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatBinary:
		return readBinary(f)
	case FormatCSV:
		return readCSV(f)
	default:
		return nil, fmt.Errorf("ioformat: unknown format %d", format)
	}
}

// WriteVector writes a vector file in the given format.
func WriteVector(path string, format Format, v []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatBinary:
		return writeBinary(f, v)
	case FormatCSV:
		return writeCSV(f, v)
	default:
		return fmt.Errorf("ioformat: unknown format %d", format)
	}
}

func readBinary(r io.Reader) ([]float64, error) {
	br := bufio.NewReader(r)
	var out []float64
	buf := make([]byte, 8)
	for {
		_, err := io.ReadFull(br, buf)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ioformat: read binary vector: %w", err)
		}
		bits := binary.LittleEndian.Uint64(buf)
		out = append(out, math.Float64frombits(bits))
	}
}

func writeBinary(w io.Writer, v []float64) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 8)
	for _, f := range v {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("ioformat: write binary vector: %w", err)
		}
	}
	return bw.Flush()
}

func readCSV(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var out []float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ioformat: read csv vector: %w", err)
		}
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("ioformat: parse %q: %w", field, err)
			}
			out = append(out, val)
		}
	}
}

func writeCSV(w io.Writer, v []float64) error {
	cw := csv.NewWriter(w)
	for _, f := range v {
		if err := cw.Write([]string{strconv.FormatFloat(f, 'g', -1, 64)}); err != nil {
			return fmt.Errorf("ioformat: write csv vector: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
