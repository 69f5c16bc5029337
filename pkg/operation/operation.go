// Package operation provides the precedence merge of SOPs across sources
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/soprc/pkg/sop"
	"github.com/walteh/soprc/pkg/source"
)

// 🔧 Options contains the three source tiers for a collection run
type Options struct {
	// Sources are raw source configuration strings (highest precedence)
	Sources []string
	// Paths is a colon-separated list of local directories
	Paths string
	// BuiltinDir is the bundled SOP directory (lowest precedence)
	BuiltinDir string
}

// 📊 SourceResult summarizes what one source contributed to a merge
type SourceResult struct {
	Source     string // Source identity string
	Loaded     int    // SOPs kept from this source
	Duplicates int    // SOPs dropped because an earlier source won
	Failed     bool   // Whether the source failed to load
}

// 🎯 Collect builds the ordered source list and merges it
func Collect(ctx context.Context, opts Options) ([]sop.SOP, []SourceResult) {
	return Merge(ctx, source.Build(ctx, source.BuildOptions{
		Sources:    opts.Sources,
		Paths:      opts.Paths,
		BuiltinDir: opts.BuiltinDir,
	}))
}

// 🔀 Merge walks the sources in order, keeping the first SOP seen for each
// name. A failing source is logged and skipped; it never aborts the sources
// after it. The seen-name set is scoped to this call, so repeated merges are
// independent.
func Merge(ctx context.Context, sources []source.Source) ([]sop.SOP, []SourceResult) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]struct{})
	merged := []sop.SOP{}
	results := make([]SourceResult, 0, len(sources))

	for _, src := range sources {
		logger.Info().Str("source", src.String()).Msg("loading SOPs from source")

		result := SourceResult{Source: src.String()}
		sops, err := src.Load(ctx)
		if err != nil {
			logger.Error().Err(err).Str("source", src.String()).Msg("failed to load SOPs from source")
			result.Failed = true
			results = append(results, result)
			continue
		}

		for _, s := range sops {
			if _, dup := seen[s.Name]; dup {
				logger.Debug().Str("sop", s.Name).Str("source", src.String()).Msg("skipping duplicate SOP")
				result.Duplicates++
				continue
			}
			seen[s.Name] = struct{}{}
			merged = append(merged, s)
			result.Loaded++
		}

		results = append(results, result)
	}

	return merged, results
}
