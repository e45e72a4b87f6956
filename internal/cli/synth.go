package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ltd/pkg/errors"
	"github.com/matzehuels/ltd/pkg/pipeline"
)

// synthFlags holds the flag values of the root command.
type synthFlags struct {
	nodes      int
	delta      int
	seed       string
	outputFile string
	split      bool
	manhattan  int
	config     string
	noCache    bool
	refresh    bool
	redis      string
	quiet      bool
}

// synthCommand creates the root command that runs the synthesis.
func (c *CLI) synthCommand() *cobra.Command {
	var f synthFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "ltd synthesizes degree-bounded network topologies for a traffic matrix",
		Long: `ltd generates a random logical traffic matrix, builds a physical topology in
which every node has at most delta transmit and receive links, routes all
demand over it and prints the load of the most congested link.

The opportunistic builder lays a heavy Hamiltonian cycle and adds direct links
for the heaviest remaining demands; --manhattan builds a toroidal grid instead.`,
		Example: `  ltd -n 16 -D 3
  ltd -n 16 -D 3 --split -o topology.svg
  ltd -n 12 -D 4 --manhattan 4
  ltd -c sweep.toml --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.synthOptions(cmd, f)
			if err != nil {
				return err
			}
			return c.runSynth(cmd, f, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.nodes, "nodes", "n", 0, "number of nodes (required)")
	flags.IntVarP(&f.delta, "delta", "D", 0, "transmit and receive ports per node (required)")
	flags.StringVarP(&f.seed, "seed", "s", pipeline.DefaultSeed, "demand seed, a decimal integer below 2^128")
	flags.StringVarP(&f.outputFile, "output-file", "o", "", "render the loaded topology (.dot, .gv, .svg, .png, .jpg, .json)")
	flags.BoolVarP(&f.split, "split", "S", false, "split load off the hottest links after embedding")
	flags.IntVarP(&f.manhattan, "manhattan", "m", 0, "build a manhattan grid with this row length")
	flags.StringVarP(&f.config, "config", "c", "", "read options from a TOML file (flags take precedence)")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	flags.BoolVar(&f.refresh, "refresh", false, "recompute and overwrite the cached result")
	flags.StringVar(&f.redis, "redis", "", "use the redis at this URL as result cache")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress the summary")

	_ = cmd.MarkFlagFilename("output-file", "dot", "gv", "svg", "png", "jpg", "jpeg", "json")
	_ = cmd.MarkFlagFilename("config", "toml")

	return cmd
}

// synthOptions merges the config file and the explicitly set flags.
func (c *CLI) synthOptions(cmd *cobra.Command, f synthFlags) (pipeline.Options, error) {
	opts := pipeline.Options{Seed: pipeline.DefaultSeed}
	flags := cmd.Flags()
	nodesSet, deltaSet := flags.Changed("nodes"), flags.Changed("delta")
	if f.config != "" {
		cfg, err := pipeline.LoadConfig(f.config)
		if err != nil {
			return opts, err
		}
		cfg.Apply(&opts)
		nodesSet = nodesSet || cfg.Nodes != nil
		deltaSet = deltaSet || cfg.Delta != nil
	}

	if flags.Changed("nodes") {
		opts.Nodes = f.nodes
	}
	if flags.Changed("delta") {
		opts.Delta = f.delta
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("output-file") {
		opts.OutputFile = f.outputFile
	}
	if flags.Changed("split") {
		opts.Split = f.split
	}
	if flags.Changed("manhattan") {
		if f.manhattan < 1 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "manhattan row length must be at least 1, got %d", f.manhattan)
		}
		opts.Manhattan = f.manhattan
	}
	opts.Refresh = f.refresh

	if !nodesSet {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--nodes is required")
	}
	if !deltaSet {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--delta is required")
	}
	return opts, opts.Validate()
}

func (c *CLI) runSynth(cmd *cobra.Command, f synthFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, f.noCache, f.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if _, err := c.Out.Write([]byte(strconv.FormatFloat(res.MaxLoad, 'f', -1, 64) + "\n")); err != nil {
		return err
	}
	if !f.quiet {
		printSummary(c.Err, res)
	}

	if opts.OutputFile == "" {
		return nil
	}
	if err := runner.Render(ctx, res, opts.OutputFile); err != nil {
		return err
	}
	if !f.quiet {
		printFile(c.Err, opts.OutputFile)
	}
	return nil
}
