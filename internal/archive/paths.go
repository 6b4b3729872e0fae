package archive

import (
	"path/filepath"
	"strconv"
)

// File and folder names fixed by the archive layout.
const (
	ProblemMarker   = "problem.yaml"
	TestDataMarker  = "testdata.yaml"
	RoundOverview   = "round_overview.html"
	StatementPDF    = "statement.pdf"
	AnalysisPDF     = "analysis.pdf"
	StatementDir    = "problem_statement"
	StatementHTML   = "statement.html"
	AnalysisHTML    = "analysis.html"
	DataDir         = "data"
	SampleDir       = "sample"
	SecretDir       = "secret"
	SubtaskPrefix   = "subtask"
	InputExt        = ".in"
	OutputExt       = ".ans"
	SubtaskCaseStem = "1"
	DefaultYear     = 2023
)

// NewProblem returns a problem rooted at folder with its conventional
// document paths filled in.
func NewProblem(folder string) Problem {
	return Problem{
		Folder:        folder,
		StatementPDF:  filepath.Join(folder, StatementPDF),
		AnalysisPDF:   filepath.Join(folder, AnalysisPDF),
		StatementHTML: filepath.Join(folder, StatementDir, StatementHTML),
		AnalysisHTML:  filepath.Join(folder, StatementDir, AnalysisHTML),
	}
}

// NewRound returns an empty round for folder. The year is the integer name
// of the folder's parent; when that does not parse, fallback is used and ok
// is false.
func NewRound(folder string, fallback int) (r Round, ok bool) {
	year, err := strconv.Atoi(filepath.Base(filepath.Dir(folder)))
	ok              = err == nil && year > 0
	if !ok {
		year = fallback
	}
	return Round{
		Year:     year,
		Folder:   folder,
		Overview: filepath.Join(folder, RoundOverview),
		Problems: []Problem{},
	}, ok
}
