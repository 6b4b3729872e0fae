// Package scanner discovers problem folders in a competition archive and
// assembles them into rounds, test-data summaries and the full index.
package scanner

import (
	"go.uber.org/zap"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// DefaultConcurrency bounds parallel directory and metadata reads.
const DefaultConcurrency = 8

// Options controls a scan.
type Options struct {
	// Concurrency is the maximum number of concurrent reads per fan-out.
	Concurrency int

	// DefaultYear is used when a round's year folder is not an integer.
	DefaultYear int

	// Logger receives progress and fallback notices. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.DefaultYear == 0 {
		o.DefaultYear = archive.DefaultYear
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
