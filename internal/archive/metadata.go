package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Metadata is the flat key/value content of a problem.yaml or testdata.yaml
// file. Values are raw strings; callers parse numbers themselves.
type Metadata map[string]string

// Get returns the trimmed value for key, or "" if absent.
func (m Metadata) Get(key string) string {
	return m[key]
}

// ReadMetadata reads a file of "key: value" lines. Blank lines and lines
// starting with '#' are skipped, each line splits on its first colon, and
// both halves are trimmed. Nested structures and multi-line values are not
// understood.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	md, err := ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}

// ParseMetadata parses metadata content already in memory. A line longer
// than the scanner's token limit is an error, never a truncated result.
func ParseMetadata(data []byte) (Metadata, error) {
	md := make(Metadata)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		md[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return md, nil
}

// ParseRange parses a "range" value of two whitespace-separated integers.
func ParseRange(s string) (lo, hi int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("range %q: want two integers", s)
	}
	lo, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	hi, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	return lo, hi, nil
}
