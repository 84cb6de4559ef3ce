package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Name       string
	Verbose    bool
	ConfigPath string // empty means the default location, which may be absent
	CacheDir   string
	Backend    string
	Normalize  bool
}

// NewRootCommand creates the root command for the baus CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "baus",
		Short: "baus - sort lines by how often or how recently you picked them",
		Long: `Sort lines from stdin by a persisted usage score.

baus remembers which lines you pick and prints the most used (or most
recently used) ones first. Chain it with an interactive picker:

  cat commands | baus -n commands sort --desc | fzf | baus -n commands save

Each --name selects its own cache file under the user cache directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateName(opts.Name); err != nil {
				return WrapExitError(ExitCommandError, "invalid --name", err)
			}
			if _, err := store.ParseKind(opts.Backend); err != nil {
				return WrapExitError(ExitCommandError, "invalid --backend", err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.Name, "name", "n", config.DefaultName, "name of the cache file to use")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging to stderr")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the YAML profile file (default <user config dir>/baus/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.CacheDir, "cache-dir", "", "directory holding cache files (default <user cache dir>/baus)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", string(store.KindJSON), fmt.Sprintf("cache file format %v", store.ValidKinds))
	cmd.PersistentFlags().BoolVar(&opts.Normalize, "normalize", false, "apply Unicode NFC to input lines before ranking")

	// Add subcommands
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}
