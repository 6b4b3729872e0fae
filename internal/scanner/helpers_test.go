package scanner

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

// writeProblem creates a problem folder with the given problem.yaml fields.
// Default-validation problems get a data folder with a sample and the given
// subtask ranges.
func writeProblem(t *testing.T, dir, name, source, validation string, subtasks ...string) {
	t.Helper()
	content := "name: " + name + "\nsource: " + source + "\n"
	if validation != "" {
		content += "validation: " + validation + "\n"
	}
	writeFile(t, filepath.Join(dir, "problem.yaml"), content)
	if validation != "" {
		return
	}
	writeDataDir(t, filepath.Join(dir, "data"), "0 10", subtasks...)
}

// writeDataDir creates a data folder with a zero-point sample and one
// subtask folder per range.
func writeDataDir(t *testing.T, dataDir, secretRange string, subtasks ...string) {
	t.Helper()
	writeFile(t, filepath.Join(dataDir, "sample", "testdata.yaml"), "range: 0 0\n")
	writeFile(t, filepath.Join(dataDir, "sample", "sample.in"), "1\n")
	writeFile(t, filepath.Join(dataDir, "sample", "sample.ans"), "Case #1: 1\n")
	writeFile(t, filepath.Join(dataDir, "secret", "testdata.yaml"), "range: "+secretRange+"\n")
	for i, r := range subtasks {
		st := filepath.Join(dataDir, "secret", "subtask"+strconv.Itoa(i+1))
		writeFile(t, filepath.Join(st, "testdata.yaml"), "range: "+r+"\n")
		writeFile(t, filepath.Join(st, "1.in"), "")
		writeFile(t, filepath.Join(st, "1.ans"), "")
	}
}
