package scanner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FaultKind classifies a structural violation of the archive layout.
type FaultKind string

const (
	FaultSourceMismatch  FaultKind = "source-mismatch"
	FaultMissingSecret   FaultKind = "missing-secret"
	FaultUnexpectedEntry FaultKind = "unexpected-entry"
	FaultSamplePoints    FaultKind = "sample-points"
	FaultSampleFiles     FaultKind = "sample-files"
	FaultBadRange        FaultKind = "bad-range"
	FaultBadValidation   FaultKind = "bad-validation"
	FaultBadFolderName   FaultKind = "bad-folder-name"
	FaultDuplicatePhase  FaultKind = "duplicate-phase"
)

// Fault is a single consistency violation found while indexing.
type Fault struct {
	Kind    FaultKind `json:"kind"`
	Path    string    `json:"path"`
	Message string    `json:"message"`
}

func (f Fault) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Kind, f.Path, f.Message)
}

// ConsistencyError reports every fault collected during a run.
type ConsistencyError struct {
	Faults []Fault
}

func (e *ConsistencyError) Error() string {
	if len(e.Faults) == 1 {
		return "archive consistency fault: " + e.Faults[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d archive consistency faults:", len(e.Faults))
	for _, f := range e.Faults {
		sb.WriteString("\n  ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

// faults accumulates consistency violations from concurrent parsers.
type faults struct {
	mu   sync.Mutex
	list []Fault
}

func (c *faults) add(kind FaultKind, path, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, Fault{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)})
}

// err returns nil when no faults were recorded, else a *ConsistencyError
// with faults sorted by path so reports are stable across runs.
func (c *faults) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.list) == 0 {
		return nil
	}
	out := make([]Fault, len(c.list))
	copy(out, c.list)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Kind < out[j].Kind
	})
	return &ConsistencyError{Faults: out}
}
