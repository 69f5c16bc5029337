package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/soprc/cmd/soprc/opts"
	"github.com/walteh/soprc/pkg/log"
	"github.com/walteh/soprc/pkg/operation"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List merged SOPs and their sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := opts.Console

			console.Header("collecting SOPs")

			sops, results := operation.Collect(ctx, opts.Operation)

			for _, r := range results {
				console.LogSourceOperation(ctx, log.SourceOperation{
					Identity:   r.Source,
					Count:      r.Loaded,
					Duplicates: r.Duplicates,
					Failed:     r.Failed,
				})
			}
			console.LogNewline()

			for _, s := range sops {
				console.LogSOPRow(ctx, log.SOPRow{
					Name:        s.Name,
					Description: s.Description,
				})
			}
			console.LogNewline()

			console.Successf("%d SOPs loaded", len(sops))

			return nil
		},
	}

	return cmd
}
