package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/soprc/cmd/soprc/commands"
	"github.com/walteh/soprc/cmd/soprc/opts"
	"github.com/walteh/soprc/pkg/config"
	"github.com/walteh/soprc/pkg/log"
	"github.com/walteh/soprc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	sopSources []string
	sopPaths   string
	debug      bool
)

// defaultConfigFiles are probed in order when no --config flag is given
var defaultConfigFiles = []string{".soprc", ".soprc.yaml", ".soprc.hcl"}

// NewRootCmd creates the soprc root command
func NewRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:          "soprc",
		Short:        "Collect SOPs from prioritized sources and serve or export them",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			resolved, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*ro = *resolved

			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(commands.NewServeCmd(ro))
	cmd.AddCommand(commands.NewSkillsCmd(ro))
	cmd.AddCommand(commands.NewListCmd(ro))

	return cmd
}

// newRootOpts creates a new RootOpts with resolved configuration.
// Precedence: flags > config file > environment > defaults.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Flag sources come before file sources so they win the merge
	sources := append([]string{}, sopSources...)
	sources = append(sources, cfg.Sources...)

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config: cfg,
		Operation: operation.Options{
			Sources:    sources,
			Paths:      firstNonEmpty(sopPaths, cfg.Paths, os.Getenv("SOPRC_SOP_PATHS")),
			BuiltinDir: firstNonEmpty(cfg.BuiltinDir, os.Getenv("SOPRC_BUILTIN_DIR"), defaultBuiltinDir()),
		},
		Addr:    firstNonEmpty(cfg.Addr, os.Getenv("SOPRC_ADDR"), config.DefaultAddr),
		Output:  firstNonEmpty(cfg.Output, os.Getenv("SOPRC_OUTPUT"), config.DefaultOutput),
		Console: log.New(os.Stdout, level),
	}, nil
}

// loadConfig loads the config file. An explicitly flagged file must exist;
// absence of the default files is not an error.
func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		return config.Load(ctx, configFile)
	}

	for _, path := range defaultConfigFiles {
		if _, err := os.Stat(path); err == nil {
			return config.Load(ctx, path)
		}
	}

	return config.Default(), nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default probes .soprc, .soprc.yaml, .soprc.hcl)")
	cmd.PersistentFlags().StringArrayVar(&sopSources, "sop-source", nil, "SOP source string, e.g. type=s3,bucket=my-bucket (repeatable, highest precedence)")
	cmd.PersistentFlags().StringVar(&sopPaths, "sop-paths", "", "colon-separated SOP directory paths")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags. Loggers installed on the
// command context carry no level of their own, so the global level decides
// whether Debug events fire.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// defaultBuiltinDir returns the bundled SOP directory next to the executable
func defaultBuiltinDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "sops"
	}
	return filepath.Join(filepath.Dir(exe), "sops")
}

// firstNonEmpty returns the first non-empty value
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
