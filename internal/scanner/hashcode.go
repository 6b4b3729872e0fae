package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// Hash code folder naming: <tag>_<year>_<phase>.
const (
	hashCodeTag        = "hashcode"
	phaseQualification = "qualification"
	phaseFinal         = "final"
	hashCodeDocExt     = ".pdf"
)

// ParseHashCode parses the hash code family root. Each child folder is named
// hashcode_<year>_<phase> and has a sibling <folder>.pdf problem document.
// Layout violations are returned together as a *ConsistencyError.
func ParseHashCode(root string) (map[int]*archive.HashCodeYear, error) {
	var fc faults
	years, err := parseHashCode(root, &fc)
	if err != nil {
		return nil, err
	}
	if err := fc.err(); err != nil {
		return nil, err
	}
	return years, nil
}

func parseHashCode(root string, fc *faults) (map[int]*archive.HashCodeYear, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading hash code folder: %w", err)
	}

	years := make(map[int]*archive.HashCodeYear)
	for _, e := range entries {
		if !e.IsDir() {
			// Phase documents sit next to their folders.
			continue
		}
		folder := filepath.Join(root, e.Name())

		year, phase, err := parseHashCodeName(e.Name())
		if err != nil {
			fc.add(FaultBadFolderName, folder, "%v", err)
			continue
		}

		l, err := listDir(folder)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", folder, err)
		}
		files := l.files
		if files == nil {
			files = []string{}
		}

		rec, ok := years[year]
		if !ok {
			rec = &archive.HashCodeYear{Name: fmt.Sprintf("Hash Code %d", year), Year: year}
			years[year] = rec
		}
		p := &archive.HashCodePhase{
			Name:    e.Name(),
			Problem: filepath.Join(root, e.Name()+hashCodeDocExt),
			Files:   files,
		}

		slot := &rec.Qualification
		if phase == phaseFinal {
			slot = &rec.Final
		}
		if *slot != nil {
			fc.add(FaultDuplicatePhase, folder, "%d already has a %s phase", year, phase)
			continue
		}
		*slot = p
	}
	return years, nil
}

// parseHashCodeName splits a phase folder name into its year and phase.
func parseHashCodeName(name string) (int, string, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 3 || parts[0] != hashCodeTag {
		return 0, "", fmt.Errorf("folder name %q is not %s_<year>_<phase>", name, hashCodeTag)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year <= 0 {
		return 0, "", fmt.Errorf("folder name %q has non-numeric year %q", name, parts[1])
	}
	switch parts[2] {
	case phaseQualification, phaseFinal:
		return year, parts[2], nil
	default:
		return 0, "", fmt.Errorf("folder name %q has unknown phase %q", name, parts[2])
	}
}
