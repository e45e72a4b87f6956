package pipeline

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ltd/pkg/errors"
)

// Config is the content of a TOML config file. Unset keys are nil so
// callers can tell them from zero values.
type Config struct {
	Nodes      *int    `toml:"nodes"`
	Delta      *int    `toml:"delta"`
	Seed       any     `toml:"seed"` // int64 or decimal string
	Split      *bool   `toml:"split"`
	Manhattan  *int    `toml:"manhattan"`
	OutputFile *string `toml:"output_file"`
}

// LoadConfig decodes a TOML config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML config text. Unknown keys are rejected.
func ParseConfig(text string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	switch v := cfg.Seed.(type) {
	case nil:
	case int64:
		// TOML integers stop at 64 bits; larger seeds are written as strings.
		cfg.Seed = strconv.FormatInt(v, 10)
	case string:
	default:
		return nil, errors.New(errors.ErrCodeInvalidSeed, "seed must be an integer or a decimal string, got %T", v)
	}
	return &cfg, nil
}

// Apply copies every key set in the config onto opts.
func (c *Config) Apply(opts *Options) {
	if c.Nodes != nil {
		opts.Nodes = *c.Nodes
	}
	if c.Delta != nil {
		opts.Delta = *c.Delta
	}
	if seed, ok := c.Seed.(string); ok {
		opts.Seed = seed
	}
	if c.Split != nil {
		opts.Split = *c.Split
	}
	if c.Manhattan != nil {
		opts.Manhattan = *c.Manhattan
	}
	if c.OutputFile != nil {
		opts.OutputFile = *c.OutputFile
	}
}
