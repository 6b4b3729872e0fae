package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// ClassifyValidation maps a problem.yaml "validation" value to a mode.
// An absent value means default validation.
func ClassifyValidation(value string) (archive.Validation, error) {
	switch strings.ToLower(strings.Join(strings.Fields(value), " ")) {
	case "", "default":
		return archive.ValidationDefault, nil
	case "custom":
		return archive.ValidationCustom, nil
	case "custom interactive", "custom-interactive":
		return archive.ValidationCustomInteractive, nil
	default:
		return "", fmt.Errorf("unknown validation %q", value)
	}
}

// problemResult is what one concurrent problem read produces.
type problemResult struct {
	problem archive.Problem
	source  string
}

// GroupRounds reads every problem behind the given marker files and groups
// them by round folder, the marker's grandparent. Rounds are returned in
// first-seen order and problems keep marker order. Layout violations are
// returned together as a *ConsistencyError.
func GroupRounds(ctx context.Context, markers []string, opts Options) ([]archive.Round, error) {
	var fc faults
	rounds, err := groupRounds(ctx, markers, opts, &fc)
	if err != nil {
		return nil, err
	}
	if err := fc.err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func groupRounds(ctx context.Context, markers []string, opts Options, fc *faults) ([]archive.Round, error) {
	opts = opts.withDefaults()

	results := make([]problemResult, len(markers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, marker := range markers {
		i, marker := i, marker
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := readProblem(marker, fc)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return foldRounds(markers, results, opts, fc), nil
}

// foldRounds builds the round list sequentially from per-problem results.
func foldRounds(markers []string, results []problemResult, opts Options, fc *faults) []archive.Round {
	var order []string
	byFolder := make(map[string]*archive.Round)
	for i, marker := range markers {
		roundFolder := filepath.Dir(filepath.Dir(marker))
		round, ok := byFolder[roundFolder]
		if !ok {
			r, yearOK := archive.NewRound(roundFolder, opts.DefaultYear)
			if !yearOK {
				opts.Logger.Debug("round year not numeric, using fallback",
					zap.String("round", roundFolder), zap.Int("year", r.Year))
			}
			r.Name = results[i].source
			round = &r
			byFolder[roundFolder] = round
			order = append(order, roundFolder)
		} else if round.Name != results[i].source {
			fc.add(FaultSourceMismatch, results[i].problem.Folder,
				"source %q differs from round source %q", results[i].source, round.Name)
		}
		round.Problems = append(round.Problems, results[i].problem)
	}

	rounds := make([]archive.Round, 0, len(order))
	for _, folder := range order {
		rounds = append(rounds, *byFolder[folder])
	}
	return rounds
}

// readProblem reads one problem folder's metadata and scoring layout.
func readProblem(marker string, fc *faults) (problemResult, error) {
	folder := filepath.Dir(marker)
	md, err := archive.ReadMetadata(marker)
	if err != nil {
		return problemResult{}, fmt.Errorf("reading problem metadata: %w", err)
	}

	p := archive.NewProblem(folder)
	p.Name = md.Get("name")

	mode, err := ClassifyValidation(md.Get("validation"))
	if err != nil {
		fc.add(FaultBadValidation, folder, "%v", err)
		mode = archive.ValidationCustom
	}
	p.Validation = mode

	if mode == archive.ValidationDefault {
		dataDir := filepath.Join(folder, archive.DataDir)
		if _, err := os.Stat(dataDir); os.IsNotExist(err) {
			fc.add(FaultMissingSecret, dataDir, "default validation requires a data folder")
			p.Info = archive.ScoringInfo{Folder: folder}
		} else {
			info, err := parseTestData(dataDir, fc)
			if err != nil {
				return problemResult{}, fmt.Errorf("%s: %w", folder, err)
			}
			p.Info = archive.ScoringInfo{TestData: info}
		}
	} else {
		p.Info = archive.ScoringInfo{Folder: folder}
	}

	return problemResult{problem: p, source: md.Get("source")}, nil
}
