// Package commit generates the seed pair for a new round and prints the
// commitment that is published before the round starts.
package commit

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	platformcmd "github.com/louisbranch/provable/internal/platform/cmd"
	"github.com/louisbranch/provable/internal/provable/seed"
)

// ErrEmptySeed is returned for a seed flag given an empty value.
var ErrEmptySeed = errors.New("seed must not be empty")

// SeedFlag is a flag value that records whether it was set. Empty values are
// rejected so the printed exports always round-trip through the draw tool.
type SeedFlag struct {
	Value    string
	Provided bool
}

// String implements flag.Value.
func (s *SeedFlag) String() string {
	if s == nil {
		return ""
	}
	return s.Value
}

// Set implements flag.Value.
func (s *SeedFlag) Set(v string) error {
	if v == "" {
		return ErrEmptySeed
	}
	s.Value = v
	s.Provided = true
	return nil
}

// Config holds configuration for seed pair generation.
type Config struct {
	ClientSeed SeedFlag
	ServerSeed SeedFlag
	Lang       string `env:"LOCALE" envDefault:"en-US"`
}

// ParseConfig loads env defaults and parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.Var(&cfg.ClientSeed, "client-seed", "client seed (default: generated)")
	fs.Var(&cfg.ServerSeed, "server-seed", "server seed (default: generated)")
	fs.StringVar(&cfg.Lang, "lang", "", "locale for error messages")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the config into seed.NewPair options.
func (c Config) Options(reader io.Reader) []seed.Option {
	var opts []seed.Option
	if c.ClientSeed.Provided {
		opts = append(opts, seed.WithClientSeed(c.ClientSeed.Value))
	}
	if c.ServerSeed.Provided {
		opts = append(opts, seed.WithServerSeed(c.ServerSeed.Value))
	}
	if reader != nil {
		opts = append(opts, seed.WithEntropy(reader))
	}
	return opts
}

// Run generates the pair and writes it to out as shell exports. The hashed
// server seed is the value to publish; the server seed stays private until
// the round resolves.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}

	pair, err := seed.NewPair(cfg.Options(reader)...)
	if err != nil {
		return fmt.Errorf("generate seed pair: %w", err)
	}
	commitment := pair.Commitment()
	_, err = fmt.Fprintf(out,
		"export PROVABLE_CLIENT_SEED=%s\nexport PROVABLE_SERVER_SEED=%s\nexport PROVABLE_HASHED_SERVER_SEED=%s\n",
		ShellQuote(commitment.ClientSeed), ShellQuote(pair.Server), ShellQuote(commitment.HashedServerSeed))
	return err
}

// ShellQuote wraps v in single quotes so a POSIX shell reads it literally.
func ShellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
