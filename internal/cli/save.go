package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/baus/internal/config"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Value string
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a use of the first stdin line and print it",
		Long: `Read lines from stdin, record a use of the first one, and print it.

With --value count (default) the line's score is incremented. With
--value timestamp it is set to the current Unix time, so sort --desc lists
the most recently picked lines first. Empty input records nothing and
prints nothing.

Example:
  cat commands | baus -n commands sort --desc | fzf | baus -n commands save
  echo "ssh prod" | baus -n hosts save --value timestamp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := config.ParseValueKind(opts.Value)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --value", err)
			}
			cfg := config.Default(config.ActionSave)
			cfg.Value = kind
			return execute(cmd, opts.RootOptions, cfg, config.Explicit{
				Value: cmd.Flags().Changed("value"),
			})
		},
	}

	cmd.Flags().StringVar(&opts.Value, "value", string(config.ValueCount), fmt.Sprintf("score to record %v", config.ValidValueKinds))

	return cmd
}
