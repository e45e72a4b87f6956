package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ltd/internal/cli"
	"github.com/matzehuels/ltd/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	code := cli.ExitCode(err)
	switch code {
	case cli.ExitOK, cli.ExitInterrupted:
	default:
		if c := errors.GetCode(err); c != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", c, errors.UserMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		if code == cli.ExitConfig {
			fmt.Fprintln(os.Stderr, "Run 'ltd --help' for usage.")
		}
	}
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
