package scanner

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// IndexRequest describes a full archive build.
type IndexRequest struct {
	// Root is the archive root holding one folder per family.
	Root string

	// Families are folder names under Root parsed with discovery and grouping.
	Families []string

	// HashCodeDir is the folder under Root holding the hash code family.
	// Empty skips it.
	HashCodeDir string

	Options Options
}

// GroupByYear buckets rounds by year, preserving their relative order.
func GroupByYear(rounds []archive.Round) map[int][]archive.Round {
	byYear := make(map[int][]archive.Round)
	for _, r := range rounds {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	return byYear
}

// ParseFamily discovers and groups every round under a family folder.
func ParseFamily(ctx context.Context, dir string, opts Options) (map[int][]archive.Round, error) {
	var fc faults
	years, err := parseFamily(ctx, dir, opts, &fc)
	if err != nil {
		return nil, err
	}
	if err := fc.err(); err != nil {
		return nil, err
	}
	return years, nil
}

func parseFamily(ctx context.Context, dir string, opts Options, fc *faults) (map[int][]archive.Round, error) {
	opts = opts.withDefaults()
	markers, err := DiscoverProblems(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	rounds, err := groupRounds(ctx, markers, opts, fc)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("family parsed",
		zap.String("root", dir), zap.Int("markers", len(markers)), zap.Int("rounds", len(rounds)))
	return GroupByYear(rounds), nil
}

// BuildIndex parses every family concurrently and merges the results. I/O
// errors abort at once; consistency faults from all families are returned
// together as a *ConsistencyError once parsing has finished.
func BuildIndex(ctx context.Context, req IndexRequest) (archive.Index, error) {
	opts := req.Options.withDefaults()
	var fc faults

	results := make([]map[int][]archive.Round, len(req.Families))
	var hashCode map[int]*archive.HashCodeYear

	g, gctx := errgroup.WithContext(ctx)
	for i, family := range req.Families {
		i, family := i, family
		g.Go(func() error {
			years, err := parseFamily(gctx, filepath.Join(req.Root, family), opts.forFamily(family), &fc)
			if err != nil {
				return fmt.Errorf("family %s: %w", family, err)
			}
			results[i] = years
			return nil
		})
	}
	if req.HashCodeDir != "" {
		g.Go(func() error {
			years, err := parseHashCode(filepath.Join(req.Root, req.HashCodeDir), &fc)
			if err != nil {
				return fmt.Errorf("family %s: %w", archive.HashCodeFamily, err)
			}
			hashCode = years
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return archive.Index{}, err
	}
	if err := fc.err(); err != nil {
		return archive.Index{}, err
	}

	ix := archive.Index{
		Rounds:   make(map[string]map[int][]archive.Round, len(req.Families)),
		HashCode: hashCode,
	}
	for i, family := range req.Families {
		ix.Rounds[family] = results[i]
	}
	return ix, nil
}

func (o Options) forFamily(family string) Options {
	o.Logger = o.Logger.With(zap.String("family", family))
	return o
}
