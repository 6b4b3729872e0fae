// Package writer serializes the archive index to a file or stdout.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// Stdout is the output path that selects standard output.
const Stdout = "-"

// Supported encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes ix to w in the given format. JSON is indented with four
// spaces, YAML with two.
func Encode(w io.Writer, ix archive.Index, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(ix)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ix); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Write encodes ix to path. The file is written to a temporary sibling and
// renamed into place, so an existing index is only replaced by a complete
// one.
func Write(path string, ix archive.Index, format string) error {
	if path == Stdout {
		return Encode(os.Stdout, ix, format)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Encode(tmp, ix, format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
