package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
	"github.com/wizardassassin/GCCA-Parser/internal/config"
	"github.com/wizardassassin/GCCA-Parser/internal/output"
	"github.com/wizardassassin/GCCA-Parser/internal/store"
	"github.com/wizardassassin/GCCA-Parser/internal/writer"
)

var doctorFlagJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the archive layout and output paths look usable",
	Long: `Run quick checks against the configured archive root, each family
folder, the hash code folder, the output location and the history database.
Prints a pass/fail line for each check. Doctor does not parse problems; run
'gcca-parser summary' for a full consistency check.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checks := runDoctorChecks(cfg)
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	out := cmd.OutOrStdout()
	if doctorFlagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doctorOutput{Checks: checks, PassedCount: passed, TotalCount: len(checks)})
	}

	fmt.Fprintln(out, output.Section("Doctor"))
	fmt.Fprintln(out)
	for _, c := range checks {
		renderDoctorCheck(out, c)
	}
	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(out, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(out, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// runDoctorChecks runs every check in display order.
func runDoctorChecks(cfg *config.Config) []doctorCheck {
	checks := []doctorCheck{checkDir("Archive root", cfg.ArchiveRoot)}
	for _, f := range cfg.Families {
		c := checkDir("Family: "+f, filepath.Join(cfg.ArchiveRoot, f))
		if c.Passed {
			c = checkHasMarker(c, filepath.Join(cfg.ArchiveRoot, f))
		}
		checks = append(checks, c)
	}
	if cfg.HashCodeDir != "" {
		checks = append(checks, checkDir("Family: "+archive.HashCodeFamily, filepath.Join(cfg.ArchiveRoot, cfg.HashCodeDir)))
	}
	checks = append(checks, checkOutput(cfg.Output))
	if cfg.History.Enabled {
		checks = append(checks, checkHistory(cfg.History.DB))
	}
	return checks
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(w io.Writer, c doctorCheck) {
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Fprintf(w, "  %s  %-30s %s\n", output.CheckMark(c.Passed), label, detail)
}

// checkDir verifies that path exists and is a directory.
func checkDir(name, path string) doctorCheck {
	info, err := os.Stat(path)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not found: %s", path)}
	}
	if !info.IsDir() {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not a directory: %s", path)}
	}
	return doctorCheck{Name: name, Passed: true, Message: path}
}

// checkHasMarker fails c when no problem.yaml exists anywhere below root.
func checkHasMarker(c doctorCheck, root string) doctorCheck {
	found := false
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == archive.ProblemMarker {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	if !found {
		c.Passed = false
		c.Message = fmt.Sprintf("no %s below %s", archive.ProblemMarker, root)
	}
	return c
}

// checkOutput verifies the index can be written next to its target.
func checkOutput(path string) doctorCheck {
	const name = "Output location"
	if path == writer.Stdout {
		return doctorCheck{Name: name, Passed: true, Message: "stdout"}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{Name: name, Passed: false, Message: err.Error()}
	}
	f, err := os.CreateTemp(dir, ".gcca-doctor-*")
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not writable: %s", dir)}
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	return doctorCheck{Name: name, Passed: true, Message: path}
}

// checkHistory verifies the history database opens and migrates.
func checkHistory(dbPath string) doctorCheck {
	const name = "History database"
	db, err := store.Open(dbPath)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: err.Error()}
	}
	defer func() { _ = db.Close() }()
	runs, err := db.ListRuns(0)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: err.Error()}
	}
	return doctorCheck{Name: name, Passed: true, Message: fmt.Sprintf("%d runs recorded", len(runs))}
}
