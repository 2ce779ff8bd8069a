// Package draw performs one provably fair round and prints its receipt.
package draw

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformcmd "github.com/louisbranch/provable/internal/platform/cmd"
	"github.com/louisbranch/provable/internal/platform/id"
	"github.com/louisbranch/provable/internal/platform/otel"
	"github.com/louisbranch/provable/internal/provable/draw"
	"github.com/louisbranch/provable/internal/provable/mt"
	"github.com/louisbranch/provable/internal/provable/seed"
	"github.com/louisbranch/provable/internal/provable/verify"
)

// Config holds draw command configuration. Env values load from PROVABLE_*
// variables; flags override them. Empty seeds are generated.
type Config struct {
	ClientSeed     string `env:"CLIENT_SEED"`
	ServerSeed     string `env:"SERVER_SEED"`
	Min            int64  `env:"MIN" envDefault:"0"`
	Max            int64  `env:"MAX" envDefault:"0"`
	Mode           string `env:"MODE" envDefault:"number"`
	Variant        string `env:"VARIANT" envDefault:"mt19937"`
	MaxShuffleSize int    `env:"MAX_SHUFFLE_SIZE" validate:"gte=0"`
	Format         string `env:"FORMAT" envDefault:"json" validate:"oneof=json yaml yml"`
	Lang           string `env:"LOCALE" envDefault:"en-US"`
	Count          int    `validate:"gte=1,lte=100000"`
	Redact         bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the non-domain settings. Mode, variant and range are
// checked by the draw package so their errors carry domain codes.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseConfig loads env defaults and parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.Func("client-seed", "client seed (default: generated)", seedSetter(&cfg.ClientSeed))
	fs.Func("server-seed", "server seed (default: generated)", seedSetter(&cfg.ServerSeed))
	fs.Int64Var(&cfg.Min, "min", 0, "lower bound, inclusive")
	fs.Int64Var(&cfg.Max, "max", 0, "upper bound, inclusive")
	fs.StringVar(&cfg.Mode, "mode", "number", "number or shuffle")
	fs.StringVar(&cfg.Variant, "variant", "mt19937", "generator variant: mt19937 or php")
	fs.IntVar(&cfg.MaxShuffleSize, "max-shuffle-size", 0, "largest permutation to build (0: default)")
	fs.StringVar(&cfg.Format, "format", "json", "receipt format: json or yaml")
	fs.StringVar(&cfg.Lang, "lang", "en-US", "locale for error messages")
	fs.IntVar(&cfg.Count, "count", 1, "successive numbers to draw from one stream")
	fs.BoolVar(&cfg.Redact, "redact", false, "omit the server seed from the receipt")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrEmptySeed is returned for a seed flag given an empty value. A seed that
// is meant to be generated is left unset instead.
var ErrEmptySeed = errors.New("seed must not be empty")

func seedSetter(target *string) func(string) error {
	return func(v string) error {
		if v == "" {
			return ErrEmptySeed
		}
		*target = v
		return nil
	}
}

// Clock and ID source, replaced in tests.
var (
	now   = time.Now
	newID = id.NewID
)

// Run performs the draw and writes the receipt to out. Seeds missing from
// cfg are generated from reader, or crypto/rand when reader is nil.
func Run(ctx context.Context, cfg Config, out io.Writer, reader io.Reader) (err error) {
	if out == nil {
		return errors.New("output is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := verify.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	receipt, err := drawReceipt(ctx, cfg, reader)
	if err != nil {
		return err
	}
	if cfg.Redact {
		receipt = receipt.Redacted()
	}
	data, err := receipt.Encode(format)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(out, "\n")
	}
	return err
}

func drawReceipt(ctx context.Context, cfg Config, reader io.Reader) (receipt verify.Receipt, err error) {
	_, span := otel.Tracer("provable/draw").Start(ctx, "draw")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	drawCfg, err := buildConfig(cfg, reader)
	if err != nil {
		return verify.Receipt{}, err
	}
	span.SetAttributes(
		attribute.String("provable.mode", drawCfg.Mode.String()),
		attribute.String("provable.variant", drawCfg.Variant.String()),
		attribute.Int64("provable.min", drawCfg.Min),
		attribute.Int64("provable.max", drawCfg.Max),
		attribute.String("provable.hashed_server_seed", drawCfg.Seeds.HashedServerSeed()),
	)

	d, err := draw.New(drawCfg)
	if err != nil {
		return verify.Receipt{}, err
	}
	result, err := d.Results()
	if err != nil {
		return verify.Receipt{}, err
	}
	receiptID, err := newID()
	if err != nil {
		return verify.Receipt{}, err
	}
	receipt = verify.NewReceipt(d, result, receiptID, now())

	if cfg.Count > 1 {
		if d.Mode() != draw.ModeNumber {
			return verify.Receipt{}, fmt.Errorf("count applies to number mode only")
		}
		draws := []int64{result.Number}
		for len(draws) < cfg.Count {
			n, err := d.Number()
			if err != nil {
				return verify.Receipt{}, err
			}
			draws = append(draws, n)
		}
		receipt = receipt.WithDraws(draws)
	}
	span.SetAttributes(attribute.String("provable.receipt_id", receiptID))
	return receipt, nil
}

func buildConfig(cfg Config, reader io.Reader) (draw.Config, error) {
	mode, err := draw.ParseMode(cfg.Mode)
	if err != nil {
		return draw.Config{}, err
	}
	variant, err := mt.ParseVariant(cfg.Variant)
	if err != nil {
		return draw.Config{}, err
	}

	var opts []seed.Option
	if cfg.ClientSeed != "" {
		opts = append(opts, seed.WithClientSeed(cfg.ClientSeed))
	}
	if cfg.ServerSeed != "" {
		opts = append(opts, seed.WithServerSeed(cfg.ServerSeed))
	}
	if reader != nil {
		opts = append(opts, seed.WithEntropy(reader))
	}
	pair, err := seed.NewPair(opts...)
	if err != nil {
		return draw.Config{}, err
	}
	return draw.Config{
		Seeds:          pair,
		Min:            cfg.Min,
		Max:            cfg.Max,
		Mode:           mode,
		Variant:        variant,
		MaxShuffleSize: cfg.MaxShuffleSize,
	}, nil
}
