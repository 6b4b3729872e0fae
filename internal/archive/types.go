// Package archive defines the competition archive index model and the
// minimal metadata reader used to populate it.
package archive

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Validation identifies how a problem's output is checked.
type Validation string

const (
	// ValidationDefault is diff-based checking against structured test data.
	ValidationDefault Validation = "default"

	// ValidationCustom uses an external output checker.
	ValidationCustom Validation = "custom"

	// ValidationCustomInteractive uses a bidirectional external checker.
	ValidationCustomInteractive Validation = "custom-interactive"
)

// Round is one competition event within a family and year.
type Round struct {
	// Name is the round's source label, taken from its problems' metadata.
	Name string `json:"name" yaml:"name"`

	// Year is inferred from the round folder's parent, or the fallback year.
	Year int `json:"year" yaml:"year"`

	// Folder is the round folder path. It identifies the round.
	Folder string `json:"folder" yaml:"folder"`

	// Overview is the path to the round overview document.
	Overview string `json:"overview" yaml:"overview"`

	// Problems are listed in discovery order.
	Problems []Problem `json:"problems" yaml:"problems"`
}

// Problem is a single problem folder identified by its marker file.
type Problem struct {
	Name          string      `json:"name" yaml:"name"`
	Validation    Validation  `json:"validation" yaml:"validation"`
	Folder        string      `json:"folder" yaml:"folder"`
	StatementPDF  string      `json:"statementPDF" yaml:"statementPDF"`
	AnalysisPDF   string      `json:"analysisPDF" yaml:"analysisPDF"`
	StatementHTML string      `json:"statementHTML" yaml:"statementHTML"`
	AnalysisHTML  string      `json:"analysisHTML" yaml:"analysisHTML"`
	Info          ScoringInfo `json:"info" yaml:"info"`
}

// ScoringInfo describes how a problem is scored. Default-validation problems
// carry parsed test data; every other mode only records the problem folder,
// since the checker logic lives outside the archive index.
type ScoringInfo struct {
	TestData *TestDataInfo
	Folder   string
}

// MarshalJSON encodes the test data object when present, else the folder path.
func (s ScoringInfo) MarshalJSON() ([]byte, error) {
	if s.TestData != nil {
		return json.Marshal(s.TestData)
	}
	return json.Marshal(s.Folder)
}

// UnmarshalJSON accepts either shape produced by MarshalJSON.
func (s *ScoringInfo) UnmarshalJSON(data []byte) error {
	var folder string
	if err := json.Unmarshal(data, &folder); err == nil {
		*s = ScoringInfo{Folder: folder}
		return nil
	}
	var td TestDataInfo
	if err := json.Unmarshal(data, &td); err != nil {
		return err
	}
	*s = ScoringInfo{TestData: &td}
	return nil
}

// MarshalYAML mirrors MarshalJSON for the YAML index format.
func (s ScoringInfo) MarshalYAML() (interface{}, error) {
	if s.TestData != nil {
		return s.TestData, nil
	}
	return s.Folder, nil
}

// UnmarshalYAML mirrors UnmarshalJSON for the YAML index format.
func (s *ScoringInfo) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = ScoringInfo{Folder: node.Value}
		return nil
	}
	var td TestDataInfo
	if err := node.Decode(&td); err != nil {
		return err
	}
	*s = ScoringInfo{TestData: &td}
	return nil
}

// TestDataInfo is the parsed data folder of a default-validation problem.
type TestDataInfo struct {
	// Points is the total score of the secret data set.
	Points int `json:"points" yaml:"points"`

	// Sample holds at most one zero-point case.
	Sample []TestCase `json:"sample" yaml:"sample"`

	// Secret holds one case per subtask, ordered by subtask number.
	Secret []TestCase `json:"secret" yaml:"secret"`
}

// TestCase is one input/output pair with its score.
type TestCase struct {
	Name   string `json:"name" yaml:"name"`
	Points int    `json:"points" yaml:"points"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// HashCodeYear is one year of the hash code family, which is laid out by
// folder name instead of problem metadata files.
type HashCodeYear struct {
	Name          string         `json:"name" yaml:"name"`
	Year          int            `json:"year" yaml:"year"`
	Qualification *HashCodePhase `json:"qualification" yaml:"qualification"`
	Final         *HashCodePhase `json:"final" yaml:"final"`
}

// HashCodePhase is a single qualification or final phase folder.
type HashCodePhase struct {
	Name    string   `json:"name" yaml:"name"`
	Problem string   `json:"problem" yaml:"problem"`
	Files   []string `json:"files" yaml:"files"`
}

// Index is the consolidated archive index. Rounds maps family name to year
// to rounds; HashCode maps year to that family's record.
type Index struct {
	Rounds   map[string]map[int][]Round
	HashCode map[int]*HashCodeYear
}

// HashCodeFamily is the key the hash code family is serialized under.
const HashCodeFamily = "hashcode"

// document flattens the index into the serialized top-level mapping.
func (ix Index) document() map[string]interface{} {
	doc := make(map[string]interface{}, len(ix.Rounds)+1)
	for family, years := range ix.Rounds {
		if years == nil {
			years = map[int][]Round{}
		}
		doc[family] = years
	}
	hc := ix.HashCode
	if hc == nil {
		hc = map[int]*HashCodeYear{}
	}
	doc[HashCodeFamily] = hc
	return doc
}

// MarshalJSON encodes the index as family -> year -> value.
func (ix Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(ix.document())
}

// MarshalYAML encodes the index as family -> year -> value.
func (ix Index) MarshalYAML() (interface{}, error) {
	return ix.document(), nil
}

// Families returns the sorted family names present in the serialized index.
func (ix Index) Families() []string {
	names := make([]string, 0, len(ix.Rounds)+1)
	for family := range ix.document() {
		names = append(names, family)
	}
	sort.Strings(names)
	return names
}
