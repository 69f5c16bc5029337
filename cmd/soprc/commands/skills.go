package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/soprc/cmd/soprc/opts"
	"github.com/walteh/soprc/pkg/operation"
	"github.com/walteh/soprc/pkg/skills"
	"gitlab.com/tozd/go/errors"
)

// NewSkillsCmd creates a new skills command
func NewSkillsCmd(opts *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Export SOPs as skill files",
		Long: `Skills collects SOPs from all configured sources and writes one
skill directory per SOP. It will:
1. Build the ordered source list
2. Merge SOPs with first-wins precedence
3. Write <output>/<name>/SKILL.md for each SOP`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resolved := output
			if resolved == "" {
				resolved = opts.Output
			}

			sops, _ := operation.Collect(ctx, opts.Operation)

			if err := skills.Generate(ctx, resolved, sops); err != nil {
				return errors.Errorf("generating skills: %w", err)
			}

			absOutput, err := filepath.Abs(resolved)
			if err != nil {
				absOutput = resolved
			}
			opts.Console.Successf("Generated %d skills in %s", len(sops), absOutput)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory for skills (overrides config)")

	return cmd
}
