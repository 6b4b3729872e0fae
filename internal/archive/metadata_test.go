package archive

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadMetadata_WellFormed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProblemMarker)
	content := `# comment line
name:   Square Free
source: Round 1A 2022

  # indented comment
validation: custom interactive
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	md, err := ReadMetadata(path)
	require.NoError(t, err)

	assert.Len(t, md, 3)
	assert.Equal(t, "Square Free", md.Get("name"))
	assert.Equal(t, "Round 1A 2022", md.Get("source"))
	assert.Equal(t, "custom interactive", md.Get("validation"))
}

func TestReadMetadata_MissingFile(t *testing.T) {
	_, err := ReadMetadata(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParseMetadata_SplitsOnFirstColon(t *testing.T) {
	md, err := ParseMetadata([]byte("url: https://example.com/a:b\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a:b", md.Get("url"))
}

func TestParseMetadata_LineWithoutColon(t *testing.T) {
	md, err := ParseMetadata([]byte("orphan\n"))
	require.NoError(t, err)
	v, ok := md["orphan"]
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestParseMetadata_DuplicateKeyLastWins(t *testing.T) {
	md, err := ParseMetadata([]byte("range: 0 5\nrange: 0 9\n"))
	require.NoError(t, err)
	assert.Equal(t, "0 9", md.Get("range"))
}

func TestParseMetadata_OversizedLine(t *testing.T) {
	data := "name: " + strings.Repeat("x", 70000) + "\nsource: Round 1A\nvalidation: custom\n"

	md, err := ParseMetadata([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Nil(t, md)
}

func TestReadMetadata_OversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProblemMarker)
	data := "name: " + strings.Repeat("x", 70000) + "\nsource: Round 1A\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := ReadMetadata(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		lo, hi  int
		wantErr bool
	}{
		{"0 10", 0, 10, false},
		{"  3   7 ", 3, 7, false},
		{"0", 0, 0, true},
		{"0 x", 0, 0, true},
		{"", 0, 0, true},
		{"1 2 3", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lo, hi, err := ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestNewRound_YearFromParent(t *testing.T) {
	r, ok := NewRound(filepath.Join("archive", "codejam", "2021", "round_1a"), DefaultYear)
	assert.True(t, ok)
	assert.Equal(t, 2021, r.Year)
	assert.Equal(t, filepath.Join("archive", "codejam", "2021", "round_1a", RoundOverview), r.Overview)
	assert.NotNil(t, r.Problems)
}

func TestNewRound_FallbackYear(t *testing.T) {
	r, ok := NewRound(filepath.Join("archive", "farewell", "round_a"), DefaultYear)
	assert.False(t, ok)
	assert.Equal(t, DefaultYear, r.Year)
}

func TestScoringInfo_JSONShapes(t *testing.T) {
	withData, err := json.Marshal(ScoringInfo{TestData: &TestDataInfo{Points: 10}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"points":10,"sample":null,"secret":null}`, string(withData))

	folderOnly, err := json.Marshal(ScoringInfo{Folder: "a/b"})
	require.NoError(t, err)
	assert.Equal(t, `"a/b"`, string(folderOnly))

	var back ScoringInfo
	require.NoError(t, json.Unmarshal(folderOnly, &back))
	assert.Equal(t, "a/b", back.Folder)
	assert.Nil(t, back.TestData)
}

func TestIndex_SerializedKeys(t *testing.T) {
	ix := Index{
		Rounds: map[string]map[int][]Round{
			"codejam":   {2022: {{Name: "Round 1A 2022", Year: 2022}}},
			"kickstart": {},
		},
		HashCode: map[int]*HashCodeYear{2021: {Name: "Hash Code 2021", Year: 2021}},
	}

	data, err := json.Marshal(ix)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc, 3)
	assert.Contains(t, doc["codejam"], "2022")
	assert.Contains(t, doc[HashCodeFamily], "2021")
	assert.Equal(t, []string{"codejam", "hashcode", "kickstart"}, ix.Families())

	out, err := yaml.Marshal(ix)
	require.NoError(t, err)
	var ydoc map[string]map[int]interface{}
	require.NoError(t, yaml.Unmarshal(out, &ydoc))
	assert.Contains(t, ydoc["codejam"], 2022)
}
