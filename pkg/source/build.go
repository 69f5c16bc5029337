package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// 🔧 BuildOptions describes the three precedence tiers of SOP sources
type BuildOptions struct {
	// Sources are raw source configuration strings (highest precedence)
	Sources []string
	// Paths is a colon-separated list of local directories (medium precedence)
	Paths string
	// BuiltinDir is the bundled SOP directory (lowest precedence)
	BuiltinDir string
}

// 🏗️ Build assembles the ordered source list. Tier order is never changed and
// nothing is de-duplicated here - that is the aggregator's job. A source
// string that fails to parse is logged and dropped, the rest proceed.
func Build(ctx context.Context, opts BuildOptions) []Source {
	logger := zerolog.Ctx(ctx)

	var sources []Source

	for _, raw := range opts.Sources {
		src, err := Parse(raw)
		if err != nil {
			logger.Error().Err(err).Str("source", raw).Msg("invalid SOP source, skipping")
			continue
		}
		sources = append(sources, src)
	}

	sources = append(sources, ExpandPaths(ctx, opts.Paths)...)

	if opts.BuiltinDir != "" {
		if info, err := os.Stat(opts.BuiltinDir); err == nil && info.IsDir() {
			sources = append(sources, NewLocalSource(opts.BuiltinDir))
		}
	}

	return sources
}

// 📂 ExpandPaths turns a colon-separated path list into local sources. Each
// segment is trimmed, tilde-expanded, and resolved to an absolute path;
// empty segments are dropped.
func ExpandPaths(ctx context.Context, paths string) []Source {
	logger := zerolog.Ctx(ctx)

	var sources []Source
	for _, segment := range strings.Split(paths, ":") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		expanded := expandHome(segment)
		abs, err := filepath.Abs(expanded)
		if err != nil {
			logger.Warn().Err(err).Str("path", segment).Msg("resolving SOP path, skipping")
			continue
		}

		sources = append(sources, NewLocalSource(abs))
	}

	return sources
}

// 🏠 expandHome replaces a leading "~" with the invoking user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
