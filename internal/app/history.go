package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizardassassin/GCCA-Parser/internal/output"
	"github.com/wizardassassin/GCCA-Parser/internal/store"
)

var (
	historyFlagLimit int
	historyFlagJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded index runs",
	Long: `History lists runs recorded with --record (or history.enabled in the
config file), newest first. Pass a run ID to show its per-family counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of runs to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.History.DB)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = db.Close() }()

	if len(args) == 1 {
		return showRun(cmd, db, args[0])
	}

	runs, err := db.ListRuns(historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if historyFlagJSON {
		if runs == nil {
			runs = []store.Run{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	fmt.Fprintln(out, output.Section("Run History"))
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" No runs recorded."))
		return nil
	}

	tbl := output.NewTable("Run", "Started", "Status", "Rounds", "Problems", "Faults", "Took").AlignRight(3, 4, 5, 6)
	for _, r := range runs {
		status := output.StyleSuccess.Render(r.Status)
		if r.Status != store.StatusOK {
			status = output.StyleError.Render(r.Status)
		}
		tbl.AddRow(shortID(r.ID), r.StartedAt.Local().Format("2006-01-02 15:04:05"), status,
			strconv.Itoa(r.Rounds), strconv.Itoa(r.Problems), strconv.Itoa(r.Faults),
			(time.Duration(r.DurationMS) * time.Millisecond).String())
	}
	tbl.Fprint(out)
	return nil
}

// showRun prints one run and its per-family counts. IDs may be given as
// the short prefix shown in the listing.
func showRun(cmd *cobra.Command, db *store.DB, id string) error {
	run, err := resolveRun(db, id)
	if err != nil {
		return err
	}
	counts, err := db.RunFamilies(run.ID)
	if err != nil {
		return fmt.Errorf("loading run families: %w", err)
	}

	out := cmd.OutOrStdout()
	if historyFlagJSON {
		if counts == nil {
			counts = []store.FamilyCount{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			store.Run
			Families []store.FamilyCount `json:"families"`
		}{*run, counts})
	}

	fmt.Fprintln(out, output.Section("Run "+run.ID))
	fmt.Fprintln(out)
	fmt.Fprintln(out, output.KeyValue("Started:", run.StartedAt.Local().Format(time.RFC3339)))
	fmt.Fprintln(out, output.KeyValue("Status:", run.Status))
	fmt.Fprintln(out, output.KeyValue("Archive:", run.ArchiveRoot))
	fmt.Fprintln(out, output.KeyValue("Output:", run.Output))
	if run.Error != "" {
		fmt.Fprintln(out, output.KeyValue("Error:", run.Error))
	}
	fmt.Fprintln(out)

	tbl := output.NewTable("Family", "Year", "Rounds", "Problems").AlignRight(1, 2, 3)
	for _, c := range counts {
		tbl.AddRow(c.Family, strconv.Itoa(c.Year), strconv.Itoa(c.Rounds), strconv.Itoa(c.Problems))
	}
	tbl.Fprint(out)
	return nil
}

// resolveRun finds a run by full ID or unique prefix.
func resolveRun(db *store.DB, id string) (*store.Run, error) {
	run, err := db.GetRun(id)
	if err != nil {
		return nil, err
	}
	if run != nil {
		return run, nil
	}
	runs, err := db.ListRuns(0)
	if err != nil {
		return nil, err
	}
	var match *store.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run id %q is ambiguous", id)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no run with id %q", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
