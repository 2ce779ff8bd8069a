// Package verify checks a revealed receipt and prints the replayed outcome.
package verify

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformcmd "github.com/louisbranch/provable/internal/platform/cmd"
	apperrors "github.com/louisbranch/provable/internal/platform/errors"
	"github.com/louisbranch/provable/internal/platform/otel"
	"github.com/louisbranch/provable/internal/provable/draw"
	"github.com/louisbranch/provable/internal/provable/verify"
)

// Config holds verify command configuration.
type Config struct {
	File   string `env:"RECEIPT_FILE"`
	Format string `env:"FORMAT"`
	Lang   string `env:"LOCALE" envDefault:"en-US"`
}

// ParseConfig loads env defaults and parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.File, "file", "", "receipt file (default: stdin)")
	fs.StringVar(&cfg.Format, "format", "", "receipt format: json or yaml (default: from file extension)")
	fs.StringVar(&cfg.Lang, "lang", "en-US", "locale for error messages")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveFormat picks the receipt format from the flag or the file extension.
func (c Config) ResolveFormat() (verify.Format, error) {
	if strings.TrimSpace(c.Format) != "" {
		return verify.ParseFormat(c.Format)
	}
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".yaml", ".yml":
		return verify.FormatYAML, nil
	default:
		return verify.FormatJSON, nil
	}
}

// Run reads the receipt from cfg.File, or from in when no file is set, and
// writes the verification report to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := cfg.ResolveFormat()
	if err != nil {
		return err
	}
	data, err := readReceipt(cfg.File, in)
	if err != nil {
		return err
	}
	receipt, err := verify.Decode(data, format)
	if err != nil {
		return err
	}

	report, err := check(ctx, receipt)
	if err != nil {
		return err
	}
	return writeReport(out, report)
}

func readReceipt(path string, in io.Reader) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read receipt: %w", err)
		}
		return data, nil
	}
	if in == nil {
		return nil, errors.New("receipt input is required")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	return data, nil
}

func check(ctx context.Context, receipt verify.Receipt) (verify.Report, error) {
	_, span := otel.Tracer("provable/verify").Start(ctx, "verify")
	defer span.End()
	span.SetAttributes(
		attribute.String("provable.receipt_id", receipt.ID),
		attribute.String("provable.mode", receipt.Mode.String()),
		attribute.String("provable.hashed_server_seed", receipt.HashedServerSeed),
	)

	report, err := verify.Verify(receipt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
		return report, err
	}
	span.SetAttributes(attribute.Int64("provable.derived_seed", int64(report.DerivedSeed)))
	return report, nil
}

func writeReport(out io.Writer, report verify.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "receipt: %s\n", report.ReceiptID)
	fmt.Fprintf(&b, "derived seed: %d\n", report.DerivedSeed)
	switch report.Replayed.Mode {
	case draw.ModeNumber:
		fmt.Fprintf(&b, "number: %d\n", report.Replayed.Number)
	case draw.ModeShuffle:
		fmt.Fprintf(&b, "permutation: %s\n", formatInts(report.Replayed.Permutation))
	}
	if len(report.Draws) > 0 {
		fmt.Fprintf(&b, "draws: %s\n", formatInts(report.Draws))
	}
	b.WriteString("status: verified\n")
	_, err := io.WriteString(out, b.String())
	return err
}

func formatInts(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
