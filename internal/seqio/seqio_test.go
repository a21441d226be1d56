package seqio_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/carolinebinley/ml-learning-alignment/internal/seqio"
)

func TestReadLines(t *testing.T) {
	got, err := seqio.Read(strings.NewReader("first unit\r\n\n  \nsecond unit  \n"), seqio.FormatLines)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"first unit", "second unit  "}, got); diff != "" {
		t.Fatalf("Read mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONKeepsUnitsVerbatim(t *testing.T) {
	got, err := seqio.Read(strings.NewReader(`["a b", "", "line\nbreak"]`), seqio.FormatJSON)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a b", "", "line\nbreak"}, got); diff != "" {
		t.Fatalf("Read mismatch (-want +got):\n%s", diff)
	}
}

func TestReadEmpty(t *testing.T) {
	for _, tt := range []struct {
		name   string
		input  string
		format seqio.Format
	}{
		{"blank lines", "\n\n", seqio.FormatLines},
		{"empty array", "[]", seqio.FormatJSON},
		{"empty json input", "", seqio.FormatJSON},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := seqio.Read(strings.NewReader(tt.input), tt.format); !errors.Is(err, seqio.ErrEmpty) {
				t.Fatalf("expected ErrEmpty, got %v", err)
			}
		})
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	if _, err := seqio.Read(strings.NewReader(`{"not": "an array"}`), seqio.FormatJSON); err == nil {
		t.Fatal("expected error for non-array JSON")
	}
	if _, err := seqio.Read(strings.NewReader("x"), seqio.Format("csv")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestReadFileInfersFormat(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "units.JSON")
	if err := os.WriteFile(jsonPath, []byte(`["one", "two"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(dir, "units.txt")
	if err := os.WriteFile(textPath, []byte(`["one", "two"]`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := seqio.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile json returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	got, err = seqio.ReadFile(textPath)
	if err != nil {
		t.Fatalf("ReadFile text returned error: %v", err)
	}
	if diff := cmp.Diff([]string{`["one", "two"]`}, got); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}

	if _, err := seqio.ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
