package ioformat

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.bin")
	want := []float64{1.0, -2.5, math.Inf(1), math.Ldexp(1.0, -1074)}

	if err := WriteVector(path, FormatBinary, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadVector(path, FormatBinary)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.csv")
	want := []float64{1.0, -2.5, 3.25}

	if err := WriteVector(path, FormatCSV, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadVector(path, FormatCSV)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":       FormatBinary,
		"binary": FormatBinary,
		"raw":    FormatBinary,
		"csv":    FormatCSV,
		"CSV":    FormatCSV,
	}
	for s, want := range cases {
		got, err := ParseFormat(s)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseFormat("bogus"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ckpt.gob")
	want := &Checkpoint{
		Reports:   []Report{NewReport("a", 1.5), NewReport("b", math.NaN())},
		Completed: 2,
	}
	if err := SaveCheckpoint(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Completed != want.Completed || len(got.Reports) != len(want.Reports) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.Reports[0].Bits != want.Reports[0].Bits {
		t.Fatalf("report 0 bits mismatch")
	}
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.txt")
	content := "# comment\ncase1 x1.bin y1.bin\ncase2 x2.csv y2.csv csv\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	entries, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "case1" || entries[0].Format != FormatBinary {
		t.Fatalf("entry 0 = %+v", entries[0])
	}
	if entries[1].Name != "case2" || entries[1].Format != FormatCSV {
		t.Fatalf("entry 1 = %+v", entries[1])
	}
}
