package verify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/provable/internal/provable/draw"
	"github.com/louisbranch/provable/internal/provable/mt"
	"github.com/louisbranch/provable/internal/provable/seed"
)

// Format selects a receipt encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a receipt format name. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// Receipt records one round. Before the reveal it is published without
// ServerSeed; afterwards the full receipt lets anyone replay the draw.
type Receipt struct {
	ID               string     `json:"id" yaml:"id"`
	ClientSeed       string     `json:"client_seed" yaml:"client_seed"`
	ServerSeed       *string    `json:"server_seed,omitempty" yaml:"server_seed,omitempty"`
	HashedServerSeed string     `json:"hashed_server_seed" yaml:"hashed_server_seed"`
	Min              int64      `json:"min" yaml:"min"`
	Max              int64      `json:"max" yaml:"max"`
	Mode             draw.Mode  `json:"mode" yaml:"mode"`
	Variant          mt.Variant `json:"variant" yaml:"variant"`
	Number           *int64     `json:"number,omitempty" yaml:"number,omitempty"`
	Draws            []int64    `json:"draws,omitempty" yaml:"draws,omitempty,flow"`
	Permutation      []int64    `json:"permutation,omitempty" yaml:"permutation,omitempty,flow"`
	DrawnAt          time.Time  `json:"drawn_at" yaml:"drawn_at"`
}

// NewReceipt records result as drawn by d.
func NewReceipt(d *draw.Drawer, result draw.Result, id string, at time.Time) Receipt {
	seeds := d.Seeds()
	r := Receipt{
		ID:               id,
		ClientSeed:       seeds.Client,
		ServerSeed:       &seeds.Server,
		HashedServerSeed: d.HashedServerSeed(),
		Min:              d.Min(),
		Max:              d.Max(),
		Mode:             result.Mode,
		Variant:          d.Config().Variant,
		DrawnAt:          at.UTC(),
	}
	r.setResult(result)
	return r
}

func (r *Receipt) setResult(result draw.Result) {
	r.Number = nil
	r.Permutation = nil
	switch result.Mode {
	case draw.ModeNumber:
		n := result.Number
		r.Number = &n
	case draw.ModeShuffle:
		r.Permutation = append([]int64(nil), result.Permutation...)
	}
}

// WithDraws records a stream of successive number draws, the first of which
// is the receipt's result.
func (r Receipt) WithDraws(draws []int64) Receipt {
	r.Draws = append([]int64(nil), draws...)
	if len(draws) > 0 {
		first := draws[0]
		r.Number = &first
	}
	return r
}

// Result returns the recorded outcome.
func (r Receipt) Result() draw.Result {
	out := draw.Result{Mode: r.Mode, Permutation: r.Permutation}
	if r.Number != nil {
		out.Number = *r.Number
	}
	return out
}

// HasResult reports whether the receipt records an outcome for its mode.
// A number receipt needs Number; a shuffle receipt needs Permutation.
func (r Receipt) HasResult() bool {
	switch r.Mode {
	case draw.ModeNumber:
		return r.Number != nil
	case draw.ModeShuffle:
		return r.Permutation != nil
	default:
		return false
	}
}

// Revealed reports whether the receipt carries the server seed.
func (r Receipt) Revealed() bool {
	return r.ServerSeed != nil
}

// Redacted returns the receipt without the server seed.
func (r Receipt) Redacted() Receipt {
	r.ServerSeed = nil
	return r
}

// Config rebuilds the draw configuration of a revealed receipt.
func (r Receipt) Config() draw.Config {
	cfg := draw.Config{
		Seeds:   seed.Pair{Client: r.ClientSeed},
		Min:     r.Min,
		Max:     r.Max,
		Mode:    r.Mode,
		Variant: r.Variant,
	}
	if r.ServerSeed != nil {
		cfg.Seeds.Server = *r.ServerSeed
	}
	if n := len(r.Permutation); n > draw.DefaultMaxShuffleSize {
		cfg.MaxShuffleSize = n
	}
	return cfg
}

// Encode renders the receipt.
func (r Receipt) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Decode parses a receipt.
func Decode(data []byte, format Format) (Receipt, error) {
	var r Receipt
	var err error
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &r)
	case FormatYAML:
		err = yaml.Unmarshal(data, &r)
	default:
		return Receipt{}, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("decode %s receipt: %w", format, err)
	}
	return r, nil
}
