// Package seqio reads text unit sequences from files.
//
// A path ending in .json must hold a JSON array of strings; any other file is
// read as one unit per line, with blank lines skipped and CRLF endings
// tolerated.
package seqio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format selects how a sequence file is decoded.
type Format string

const (
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
)

// ErrEmpty is returned when an input holds no units.
var ErrEmpty = errors.New("sequence has no units")

// FormatFor infers the format from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatLines
}

// ReadFile reads the sequence stored at path. "-" reads standard input as lines.
func ReadFile(path string) ([]string, error) {
	if path == "-" {
		units, err := Read(os.Stdin, FormatLines)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return units, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence: %w", err)
	}
	defer file.Close()

	units, err := Read(file, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return units, nil
}

// Read decodes units from r.
func Read(r io.Reader, format Format) ([]string, error) {
	var (
		units []string
		err   error
	)
	switch format {
	case FormatJSON:
		units, err = readJSON(r)
	case FormatLines, "":
		units, err = readLines(r)
	default:
		return nil, fmt.Errorf("unsupported sequence format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, ErrEmpty
	}
	return units, nil
}

func readJSON(r io.Reader) ([]string, error) {
	var units []string
	if err := json.NewDecoder(r).Decode(&units); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode json array: %w", err)
	}
	return units, nil
}

func readLines(r io.Reader) ([]string, error) {
	var units []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		units = append(units, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return units, nil
}
