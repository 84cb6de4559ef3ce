package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/engine"
	"github.com/roach88/baus/internal/lines"
	"github.com/roach88/baus/internal/store"
)

// newLogger configures slog on the command's stderr based on the verbose flag.
// Logs never go to stdout, which carries the ranked lines.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// resolveConfig layers the profile file under the command line flags and
// validates the result.
func resolveConfig(cmd *cobra.Command, opts *RootOptions, cfg config.Config, explicit config.Explicit) (config.Config, error) {
	cfg.Name = opts.Name
	cfg.Normalize = opts.Normalize
	cfg.CacheDir = opts.CacheDir
	kind, err := store.ParseKind(opts.Backend)
	if err != nil {
		return cfg, WrapExitError(ExitCommandError, "invalid --backend", err)
	}
	cfg.Backend = kind

	flags := cmd.Flags()
	explicit.Backend = flags.Changed("backend")
	explicit.CacheDir = flags.Changed("cache-dir")
	explicit.Normalize = flags.Changed("normalize")

	path, optional := opts.ConfigPath, false
	if path == "" {
		if path, err = config.DefaultFilePath(); err != nil {
			// No config directory on this platform; run on flags alone.
			return cfg, validate(cfg)
		}
		optional = true
	}
	file, err := config.LoadFile(path, optional)
	if err != nil {
		return cfg, WrapExitError(ExitCommandError, "load config", err)
	}
	if cfg, err = file.Apply(cfg, explicit); err != nil {
		return cfg, WrapExitError(ExitCommandError, "load config", err)
	}
	return cfg, validate(cfg)
}

func validate(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return nil
}

// openBackend resolves the cache path for cfg and creates its backend.
func openBackend(cfg config.Config) (store.Backend, error) {
	path, err := cfg.CachePath()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolve cache path", err)
	}
	b, err := store.New(cfg.Backend, path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open cache", err)
	}
	return b, nil
}

// execute runs one sort or save cycle: read stdin fully, run the engine,
// then print the result. Nothing is printed if any step fails.
func execute(cmd *cobra.Command, opts *RootOptions, cfg config.Config, explicit config.Explicit) error {
	logger := newLogger(cmd, opts.Verbose)

	cfg, err := resolveConfig(cmd, opts, cfg, explicit)
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			logger.Error("error closing cache", "error", closeErr)
		}
	}()

	input, err := lines.Read(cmd.InOrStdin(), cfg.Normalize)
	if err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := engine.New(backend, engine.WithLogger(logger)).Run(ctx, cfg, input)
	if err != nil {
		return wrapRunError(string(cfg.Action), err)
	}

	if err := lines.Write(cmd.OutOrStdout(), out); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}
