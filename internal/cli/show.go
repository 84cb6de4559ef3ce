package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/score"
	"github.com/roach88/baus/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Format string
}

// ShowEntry is one cached line and its score.
type ShowEntry struct {
	Line  string `json:"line"`
	Score int64  `json:"score"`
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Name    string      `json:"name"`
	Path    string      `json:"path"`
	Entries []ShowEntry `json:"entries"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored scores for a name",
		Long: `Print every line stored for --name with its score, highest first.

show never creates a cache or changes its scores. A name with no
cache file prints nothing.

Example:
  baus -n commands show
  baus -n commands show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "output format (text|json)")

	return cmd
}

func runShow(cmd *cobra.Command, opts *ShowOptions) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --format %q: must be text or json", opts.Format))
	}

	cfg, err := resolveConfig(cmd, opts.RootOptions, config.Default(config.ActionSort), config.Explicit{})
	if err != nil {
		return outputShowError(formatter, err)
	}

	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		return outputShowError(formatter, WrapExitError(ExitCommandError, "resolve cache path", err))
	}
	path := filepath.Join(dir, store.FileName(cfg.Backend, cfg.Name))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	scores, err := loadExisting(ctx, cfg.Backend, path)
	if err != nil {
		return outputShowError(formatter, WrapExitError(ExitCommandError, "show", err))
	}

	result := ShowResult{Name: cfg.Name, Path: path, Entries: rankEntries(scores)}
	if err := formatter.Success(result); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}

// WriteText prints one "score<TAB>line" row per entry.
func (r ShowResult) WriteText(w io.Writer) error {
	for _, e := range r.Entries {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", e.Score, e.Line); err != nil {
			return err
		}
	}
	return nil
}

// loadExisting loads the cache at path without creating it.
// A missing cache yields an empty mapping.
func loadExisting(ctx context.Context, kind store.Kind, path string) (score.Scores, error) {
	b, err := store.New(kind, path)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	exists, err := b.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return score.New(), nil
	}
	return b.Load(ctx)
}

// rankEntries orders entries by score, highest first, then by canonical key order.
func rankEntries(s score.Scores) []ShowEntry {
	entries := make([]ShowEntry, 0, s.Len())
	for _, k := range s.Keys() {
		entries = append(entries, ShowEntry{Line: k, Score: s.Get(k)})
	}
	slices.SortStableFunc(entries, func(a, b ShowEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return entries
}

// outputShowError reports err through the formatter and returns it for the
// exit code.
func outputShowError(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(errorCode(err), err.Error(), nil)
	return err
}
