package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/soprc/cmd/soprc/opts"
	"github.com/walteh/soprc/pkg/operation"
	"github.com/walteh/soprc/pkg/prompt"
	"github.com/walteh/soprc/pkg/server"
	"gitlab.com/tozd/go/errors"
)

// NewServeCmd creates a new serve command
func NewServeCmd(opts *opts.RootOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve SOPs as prompts over HTTP",
		Long: `Serve collects SOPs from all configured sources and serves them
as prompts. It will:
1. Build the ordered source list
2. Merge SOPs with first-wins precedence
3. Register one prompt handler per SOP
4. Listen for prompt requests until interrupted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			sops, _ := operation.Collect(ctx, opts.Operation)

			registry := prompt.NewRegistry()
			for _, s := range sops {
				registry.Register(s)
			}
			logger.Info().Int("sops", registry.Len()).Msg("registered SOP prompts")

			resolved := addr
			if resolved == "" {
				resolved = opts.Addr
			}

			if err := server.New(registry).ListenAndServe(ctx, resolved); err != nil {
				return errors.Errorf("serving prompts: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
