package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// listing is the partitioned content of one directory.
type listing struct {
	files []string
	dirs  []string
}

// listDir reads dir and splits its entries into regular files and
// subdirectories, both in lexical order. Other entry types are ignored.
func listDir(dir string) (listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return listing{}, err
	}
	var l listing
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			l.dirs = append(l.dirs, p)
		case e.Type().IsRegular():
			l.files = append(l.files, p)
		}
	}
	return l, nil
}

// DiscoverProblems walks root breadth-first and returns the path of every
// problem marker file. A directory holding a marker is a problem folder and
// is never descended into; any other directory has all of its
// subdirectories queued.
//
// Each level of the queue is listed concurrently, then processed in queue
// order, so the result matches a serial traversal.
func DiscoverProblems(ctx context.Context, root string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	var markers []string
	queue := []string{root}
	for len(queue) > 0 {
		listings := make([]listing, len(queue))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i, dir := range queue {
			i, dir := i, dir
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				l, err := listDir(dir)
				if err != nil {
					return fmt.Errorf("listing %s: %w", dir, err)
				}
				listings[i] = l
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []string
		for _, l := range listings {
			var found []string
			for _, f := range l.files {
				if filepath.Base(f) == archive.ProblemMarker {
					found = append(found, f)
				}
			}
			if len(found) > 0 {
				markers = append(markers, found...)
				continue
			}
			next = append(next, l.dirs...)
		}
		queue = next
	}

	opts.Logger.Debug("problem discovery finished",
		zap.String("root", root), zap.Int("markers", len(markers)))
	return markers, nil
}
