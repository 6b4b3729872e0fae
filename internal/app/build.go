package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
	"github.com/wizardassassin/GCCA-Parser/internal/config"
	"github.com/wizardassassin/GCCA-Parser/internal/scanner"
	"github.com/wizardassassin/GCCA-Parser/internal/store"
	"github.com/wizardassassin/GCCA-Parser/internal/writer"
)

var (
	buildFlagOutput string
	buildFlagFormat string
	buildFlagRecord bool
)

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagArchive != "" {
		cfg.ArchiveRoot = flagArchive
	}
	if buildFlagOutput != "" {
		cfg.Output = buildFlagOutput
	}
	if buildFlagFormat != "" {
		cfg.Format = buildFlagFormat
	}
	if buildFlagRecord {
		cfg.History.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildIndex parses the whole archive described by cfg.
func buildIndex(ctx context.Context, cfg *config.Config) (archive.Index, error) {
	logger.Info("building index",
		zap.String("archive", cfg.ArchiveRoot),
		zap.Strings("families", cfg.Families),
		zap.Int("concurrency", cfg.Concurrency))

	return scanner.BuildIndex(ctx, scanner.IndexRequest{
		Root:        cfg.ArchiveRoot,
		Families:    cfg.Families,
		HashCodeDir: cfg.HashCodeDir,
		Options: scanner.Options{
			Concurrency: cfg.Concurrency,
			DefaultYear: cfg.DefaultYear,
			Logger:      logger,
		},
	})
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	started := time.Now()
	ix, err := buildIndex(cmd.Context(), cfg)
	if err == nil {
		if werr := writer.Write(cfg.Output, ix, cfg.Format); werr != nil {
			err = fmt.Errorf("writing index: %w", werr)
		}
	}

	if cfg.History.Enabled {
		if rerr := recordRun(cfg, started, ix, err); rerr != nil {
			logger.Warn("recording run failed", zap.Error(rerr))
		}
	}
	if err != nil {
		return err
	}

	stats := collectStats(ix)
	logger.Info("index written",
		zap.String("path", cfg.Output),
		zap.String("format", cfg.Format),
		zap.Int("rounds", stats.Rounds),
		zap.Int("problems", stats.Problems),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

// recordRun stores a summary of this run in the history database.
func recordRun(cfg *config.Config, started time.Time, ix archive.Index, runErr error) error {
	db, err := store.Open(cfg.History.DB)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = db.Close() }()

	run := &store.Run{
		ID:          uuid.NewString(),
		StartedAt:   started,
		DurationMS:  time.Since(started).Milliseconds(),
		ArchiveRoot: cfg.ArchiveRoot,
		Output:      cfg.Output,
		Version:     appVersion,
		Status:      store.StatusOK,
	}

	var counts []store.FamilyCount
	if runErr != nil {
		run.Status = store.StatusFailed
		run.Error = runErr.Error()
		var ce *scanner.ConsistencyError
		if errors.As(runErr, &ce) {
			run.Faults = len(ce.Faults)
		}
	} else {
		stats := collectStats(ix)
		run.Rounds = stats.Rounds
		run.Problems = stats.Problems
		for _, row := range stats.Rows {
			counts = append(counts, store.FamilyCount{
				Family:   row.Family,
				Year:     row.Year,
				Rounds:   row.Rounds,
				Problems: row.Problems,
			})
		}
	}

	if err := db.RecordRun(run, counts); err != nil {
		return err
	}
	logger.Debug("run recorded", zap.String("id", run.ID), zap.String("status", run.Status))
	return nil
}
