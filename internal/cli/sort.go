package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/baus/internal/config"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Desc    bool
	Cleanup bool
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Print stdin lines ordered by score",
		Long: `Read lines from stdin and print them ordered by their stored score.

Lines are sorted lowest score first; lines never saved score 0. Lines with
equal scores keep their input order. --desc reverses the whole output.

--cleanup rewrites the cache so it holds exactly the printed lines: entries
no longer offered are dropped and new lines are stored with score 0.

Example:
  ls ~/projects | baus -n projects sort --desc
  cat commands | baus -n commands sort --desc --cleanup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default(config.ActionSort)
			cfg.Desc = opts.Desc
			cfg.Cleanup = opts.Cleanup
			return execute(cmd, opts.RootOptions, cfg, config.Explicit{
				Desc:    cmd.Flags().Changed("desc"),
				Cleanup: cmd.Flags().Changed("cleanup"),
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Desc, "desc", "d", false, "highest score first")
	cmd.Flags().BoolVarP(&opts.Cleanup, "cleanup", "c", false, "drop cached lines not in the input and record new ones")

	return cmd
}
