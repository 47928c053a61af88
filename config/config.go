// Package config loads the aggregator's configuration record (spec.md §9
// Design Notes) the way the teacher's cmd/davinci-sequencer/config.go
// loads its own Config: pflag-declared flags bound into viper, overridable
// by environment variables, unmarshaled into a mapstructure-tagged struct.
package config

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/halo2agg/verifier-dag/transcript"
)

const (
	defaultHash              = "poseidon"
	defaultLogLevel          = "info"
	defaultLogOutput         = "stderr"
	defaultConstantHashSlot  = 0
	defaultTargetMaxInstance = 0
)

// ProofColRow identifies one (proof, column, row-within-the-g-group) cell
// an absorb/expose declaration refers to (spec.md §9 "absorb/expose: lists
// of (proof,col,g_row) tuples").
type ProofColRow struct {
	Proof int `mapstructure:"proof"`
	Col   int `mapstructure:"col"`
	Row   int `mapstructure:"row"`
}

// CommitmentCheck mirrors aggregate.CommitmentCheck in a mapstructure-
// friendly shape so it can be unmarshaled directly by viper;
// package orchestrate converts it to aggregate.CommitmentCheck before
// calling aggregate.Combine.
type CommitmentCheck struct {
	ProofA int `mapstructure:"proofA"`
	ColA   int `mapstructure:"colA"`
	ProofB int `mapstructure:"proofB"`
	ColB   int `mapstructure:"colB"`
}

// LogConfig holds logging configuration, generalized line-for-line from
// the teacher's LogConfig (cmd/davinci-sequencer/config.go) since ambient
// logging is carried regardless of which features a Non-goal excludes.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Config is the aggregator's configuration record (spec.md §9 Design
// Notes "Config object"): every enumerated option plus the ambient
// logging stack the teacher always carries alongside domain config.
type Config struct {
	Hash                                        string            `mapstructure:"hash"`
	CommitmentCheck                              []CommitmentCheck `mapstructure:"commitmentCheck"`
	Absorb                                       []ProofColRow     `mapstructure:"absorb"`
	Expose                                       []ProofColRow     `mapstructure:"expose"`
	TargetAggregatorConstantHashInstanceOffset   int               `mapstructure:"targetAggregatorConstantHashInstanceOffset"`
	TargetProofMaxInstance                       int               `mapstructure:"targetProofMaxInstance"`
	IsFinalAggregator                            bool              `mapstructure:"isFinalAggregator"`
	UseSelectChip                                bool              `mapstructure:"useSelectChip"`
	Log                                          LogConfig         `mapstructure:"log"`
}

// HashKind resolves the configured hash name to its transcript.HashKind,
// defaulting to Poseidon on an empty or unrecognized value so a zero
// Config remains usable without a loader pass.
func (c *Config) HashKind() transcript.HashKind {
	switch strings.ToLower(c.Hash) {
	case "sha", "sha256":
		return transcript.HashSha
	case "blake2b":
		return transcript.HashBlake2b
	default:
		return transcript.HashPoseidon
	}
}

// Default returns a Config with every default value set, the same record
// Load returns before any flag/env override is applied.
func Default() *Config {
	return &Config{
		Hash:                                        defaultHash,
		TargetAggregatorConstantHashInstanceOffset:   defaultConstantHashSlot,
		TargetProofMaxInstance:                       defaultTargetMaxInstance,
		Log:                                          LogConfig{Level: defaultLogLevel, Output: defaultLogOutput},
	}
}

// Load builds a Config from a private pflag FlagSet parsed over args,
// environment variables prefixed HALO2AGG_, and compiled-in defaults; no
// config file is read. It follows the teacher's
// loadConfig (cmd/davinci-sequencer/config.go): declare flags, bind them
// into a fresh viper.Viper, unmarshal into the mapstructure-tagged struct.
// args is the argument slice to parse (os.Args[1:] in production, a fixed
// slice in tests); Load never calls flag.Parse on the package-global
// flag.CommandLine so repeated calls in the same process are safe.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("halo2agg", flag.ContinueOnError)

	fs.String("hash", defaultHash, "transcript hash kind (poseidon, sha, blake2b)")
	fs.Int("targetAggregatorConstantHashInstanceOffset", defaultConstantHashSlot, "instance slot the constants-hash is exposed at")
	fs.Int("targetProofMaxInstance", defaultTargetMaxInstance, "maximum instance-column count a proof may carry")
	fs.Bool("isFinalAggregator", false, "whether this run produces the terminal aggregate proof")
	fs.Bool("useSelectChip", false, "use the select-chip gadget in the in-circuit back-end")
	fs.String("log.level", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("log.output", defaultLogOutput, "log output (stdout, stderr, or a file path)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parsing flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HALO2AGG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}
