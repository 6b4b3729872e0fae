package scanner

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestData_SampleAndSubtasks(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeDataDir(t, dataDir, "0 10", "0 5", "0 10")

	info, err := ParseTestData(dataDir)
	require.NoError(t, err)

	assert.Equal(t, 10, info.Points)
	require.Len(t, info.Sample, 1)
	assert.Equal(t, "sample", info.Sample[0].Name)
	assert.Equal(t, 0, info.Sample[0].Points)
	assert.Equal(t, filepath.Join(dataDir, "sample", "sample.in"), info.Sample[0].Input)
	assert.Equal(t, filepath.Join(dataDir, "sample", "sample.ans"), info.Sample[0].Output)

	require.Len(t, info.Secret, 2)
	assert.Equal(t, "subtask1", info.Secret[0].Name)
	assert.Equal(t, 5, info.Secret[0].Points)
	assert.Equal(t, "subtask2", info.Secret[1].Name)
	assert.Equal(t, 10, info.Secret[1].Points)
	assert.Equal(t, filepath.Join(dataDir, "secret", "subtask2", "1.in"), info.Secret[1].Input)
	assert.Equal(t, filepath.Join(dataDir, "secret", "subtask2", "1.ans"), info.Secret[1].Output)
}

func TestParseTestData_SubtasksOrderedNumerically(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	ranges := []string{"0 1", "0 2", "0 3", "0 4", "0 5", "0 6", "0 7", "0 8", "0 9", "0 10", "0 11"}
	writeDataDir(t, dataDir, "0 66", ranges...)

	info, err := ParseTestData(dataDir)
	require.NoError(t, err)
	require.Len(t, info.Secret, 11)
	for i, c := range info.Secret {
		assert.Equal(t, i+1, c.Points, "case %s", c.Name)
	}
	assert.Equal(t, "subtask10", info.Secret[9].Name)
}

func TestParseTestData_NoSample(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(dataDir, "secret", "testdata.yaml"), "range: 0 20\n")
	writeFile(t, filepath.Join(dataDir, "secret", "subtask1", "testdata.yaml"), "range: 0 20\n")

	info, err := ParseTestData(dataDir)
	require.NoError(t, err)
	assert.Empty(t, info.Sample)
	assert.NotNil(t, info.Sample)
	assert.Equal(t, 20, info.Points)
	assert.Len(t, info.Secret, 1)
}

func TestParseTestData_MissingSecret(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(dataDir, "sample", "testdata.yaml"), "range: 0 0\n")
	writeFile(t, filepath.Join(dataDir, "sample", "1.in"), "")
	writeFile(t, filepath.Join(dataDir, "sample", "1.ans"), "")

	_, err := ParseTestData(dataDir)
	assertFaults(t, err, FaultMissingSecret)
}

func TestParseTestData_UnexpectedEntry(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeDataDir(t, dataDir, "0 5", "0 5")
	writeFile(t, filepath.Join(dataDir, "README.md"), "notes")

	_, err := ParseTestData(dataDir)
	assertFaults(t, err, FaultUnexpectedEntry)
}

func TestParseTestData_SampleWithPoints(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeDataDir(t, dataDir, "0 5", "0 5")
	writeFile(t, filepath.Join(dataDir, "sample", "testdata.yaml"), "range: 0 1\n")

	_, err := ParseTestData(dataDir)
	assertFaults(t, err, FaultSamplePoints)
}

func TestParseTestData_SampleWithoutAnswer(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeDataDir(t, dataDir, "0 5", "0 5")
	writeFile(t, filepath.Join(dataDir, "sample", "other.in"), "")

	_, err := ParseTestData(dataDir)
	assertFaults(t, err, FaultSampleFiles)
}

func TestParseTestData_BadRange(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	writeDataDir(t, dataDir, "zero ten", "0 5")

	_, err := ParseTestData(dataDir)
	assertFaults(t, err, FaultBadRange)
}

func TestParseTestData_MissingSecretMetadataIsIOError(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	mkdir(t, filepath.Join(dataDir, "secret"))

	_, err := ParseTestData(dataDir)
	require.Error(t, err)
	var ce *ConsistencyError
	assert.False(t, errors.As(err, &ce))
}

// assertFaults checks err is a *ConsistencyError with exactly these kinds.
func assertFaults(t *testing.T, err error, kinds ...FaultKind) {
	t.Helper()
	var ce *ConsistencyError
	require.True(t, errors.As(err, &ce), "expected *ConsistencyError, got %v", err)
	got := make([]FaultKind, 0, len(ce.Faults))
	for _, f := range ce.Faults {
		got = append(got, f.Kind)
	}
	assert.ElementsMatch(t, kinds, got)
}
