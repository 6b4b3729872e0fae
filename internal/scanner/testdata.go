package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

var subtaskRe = regexp.MustCompile(`^` + archive.SubtaskPrefix + `(\d+)$`)

// ParseTestData parses the data folder of a default-validation problem.
// Layout violations are returned together as a *ConsistencyError.
func ParseTestData(dataDir string) (*archive.TestDataInfo, error) {
	var fc faults
	info, err := parseTestData(dataDir, &fc)
	if err != nil {
		return nil, err
	}
	if err := fc.err(); err != nil {
		return nil, err
	}
	return info, nil
}

// parseTestData records layout faults in fc and returns only I/O errors.
// The returned info is best effort when faults were recorded.
func parseTestData(dataDir string, fc *faults) (*archive.TestDataInfo, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data folder: %w", err)
	}

	var hasSample, hasSecret bool
	for _, e := range entries {
		switch {
		case e.IsDir() && e.Name() == archive.SecretDir:
			hasSecret = true
		case e.IsDir() && e.Name() == archive.SampleDir:
			hasSample = true
		default:
			fc.add(FaultUnexpectedEntry, filepath.Join(dataDir, e.Name()),
				"data folder may only contain %q and %q", archive.SampleDir, archive.SecretDir)
		}
	}

	info := &archive.TestDataInfo{
		Sample: []archive.TestCase{},
		Secret: []archive.TestCase{},
	}

	if hasSample {
		c, err := parseSample(filepath.Join(dataDir, archive.SampleDir), fc)
		if err != nil {
			return nil, err
		}
		if c != nil {
			info.Sample = append(info.Sample, *c)
		}
	}

	if !hasSecret {
		fc.add(FaultMissingSecret, dataDir, "default validation requires a %q folder", archive.SecretDir)
		return info, nil
	}

	secretDir := filepath.Join(dataDir, archive.SecretDir)
	points, err := readPoints(secretDir, fc)
	if err != nil {
		return nil, err
	}
	info.Points = points

	cases, err := parseSubtasks(secretDir, fc)
	if err != nil {
		return nil, err
	}
	info.Secret = cases
	return info, nil
}

// parseSample builds the single sample case. Samples must be worth nothing.
func parseSample(sampleDir string, fc *faults) (*archive.TestCase, error) {
	md, err := archive.ReadMetadata(filepath.Join(sampleDir, archive.TestDataMarker))
	if err != nil {
		return nil, fmt.Errorf("reading sample metadata: %w", err)
	}
	if lo, hi, err := archive.ParseRange(md.Get("range")); err != nil {
		fc.add(FaultBadRange, sampleDir, "%v", err)
	} else if lo != 0 || hi != 0 {
		fc.add(FaultSamplePoints, sampleDir, "sample range is %d %d, want 0 0", lo, hi)
	}

	l, err := listDir(sampleDir)
	if err != nil {
		return nil, fmt.Errorf("reading sample folder: %w", err)
	}
	var inputs []string
	present := make(map[string]bool, len(l.files))
	for _, f := range l.files {
		present[f] = true
		if filepath.Ext(f) == archive.InputExt {
			inputs = append(inputs, f)
		}
	}
	if len(inputs) != 1 {
		fc.add(FaultSampleFiles, sampleDir, "want exactly one %s file, found %d", archive.InputExt, len(inputs))
		return nil, nil
	}
	output := strings.TrimSuffix(inputs[0], archive.InputExt) + archive.OutputExt
	if !present[output] {
		fc.add(FaultSampleFiles, sampleDir, "missing %s", filepath.Base(output))
		return nil, nil
	}
	return &archive.TestCase{
		Name:   archive.SampleDir,
		Points: 0,
		Input:  inputs[0],
		Output: output,
	}, nil
}

// parseSubtasks returns one case per subtask folder, ordered by number.
func parseSubtasks(secretDir string, fc *faults) ([]archive.TestCase, error) {
	l, err := listDir(secretDir)
	if err != nil {
		return nil, fmt.Errorf("reading secret folder: %w", err)
	}

	type subtask struct {
		n   int
		dir string
	}
	var subtasks []subtask
	for _, d := range l.dirs {
		m := subtaskRe.FindStringSubmatch(filepath.Base(d))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		subtasks = append(subtasks, subtask{n: n, dir: d})
	}
	sort.Slice(subtasks, func(i, j int) bool { return subtasks[i].n < subtasks[j].n })

	cases := make([]archive.TestCase, 0, len(subtasks))
	for _, st := range subtasks {
		points, err := readPoints(st.dir, fc)
		if err != nil {
			return nil, err
		}
		cases = append(cases, archive.TestCase{
			Name:   filepath.Base(st.dir),
			Points: points,
			Input:  filepath.Join(st.dir, archive.SubtaskCaseStem+archive.InputExt),
			Output: filepath.Join(st.dir, archive.SubtaskCaseStem+archive.OutputExt),
		})
	}
	return cases, nil
}

// readPoints returns the upper bound of dir's testdata range.
func readPoints(dir string, fc *faults) (int, error) {
	md, err := archive.ReadMetadata(filepath.Join(dir, archive.TestDataMarker))
	if err != nil {
		return 0, fmt.Errorf("reading test data metadata: %w", err)
	}
	_, hi, err := archive.ParseRange(md.Get("range"))
	if err != nil {
		fc.add(FaultBadRange, dir, "%v", err)
		return 0, nil
	}
	return hi, nil
}
