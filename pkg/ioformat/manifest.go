package ioformat

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ManifestEntry names one dot-product job for batch mode: a pair of vector
// files and a label for the report.
type ManifestEntry struct {
	Name   string
	XPath  string
	YPath  string
	Format Format
}

// ReadManifest parses a manifest file: one entry per line, whitespace
// separated as "name x-file y-file [format]". Blank lines and lines
// starting with '#' are skipped.
func ReadManifest(path string) ([]ManifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open manifest %s: %w", path, err)
	}
	defer f.Close()

	var entries []ManifestEntry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("ioformat: manifest %s line %d: want \"name x-file y-file [format]\"", path, lineNo)
		}
		format := FormatBinary
		if len(fields) >= 4 {
			format, err = ParseFormat(fields[3])
			if err != nil {
				return nil, fmt.Errorf("ioformat: manifest %s line %d: %w", path, lineNo, err)
			}
		}
		entries = append(entries, ManifestEntry{
			Name:   fields[0],
			XPath:  fields[1],
			YPath:  fields[2],
			Format: format,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: read manifest %s: %w", path, err)
	}
	return entries, nil
}
