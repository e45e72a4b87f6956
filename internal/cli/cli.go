// Package cli implements the ltd command-line interface.
//
// The root command synthesizes a physical topology for a random traffic
// matrix, prints the maximum link load to stdout and optionally renders the
// loaded topology to a file. Logs and the run summary go to stderr, so the
// printed load composes in shell pipelines.
//
// # Commands
//
//   - ltd: run the synthesis (see --help for flags)
//   - cache: manage the local result cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ltd/pkg/buildinfo"
	"github.com/matzehuels/ltd/pkg/cache"
	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ltd"

	// redisKeyPrefix namespaces ltd entries in a shared redis.
	redisKeyPrefix = "ltd:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives the primary result (the maximum load).
	Out io.Writer

	// Err receives the human-readable summary and status lines.
	Err io.Writer
}

// New creates a new CLI instance whose logger and status output write to w.
// The primary result goes to os.Stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.synthCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

// newCache picks the result cache: none, redis when a URL is given, or the
// local file cache. A file cache that cannot be created degrades to none.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL, redisKeyPrefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to redis")
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("result cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("result cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ltd/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Exit Codes
// =============================================================================

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2   // Usage or configuration error, nothing was computed
	ExitInterrupted = 130 // Standard shell convention for SIGINT
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsConfig(err):
		return ExitConfig
	default:
		return ExitFailure
	}
}
