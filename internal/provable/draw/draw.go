// Package draw turns a committed seed pair and a range into a reproducible
// outcome: a single integer or a permutation of the range.
//
// # Seed derivation
//
// The generator seed is the last 8 hex characters of
// HMAC-SHA256(key = client seed, message = server seed), read as a uint32.
// The same pair always yields the same integer.
//
// # Streams
//
// Number draws share one generator per Drawer. It is seeded on the first
// number draw and continues on every later one until Reset. Shuffle draws
// never touch that stream: every Shuffle builds its own generator from the
// derived seed, so repeated shuffles of the same range return the same
// permutation and a shuffle between two number draws does not change the
// second number.
//
// # Ranges
//
// A range with min > max is rejected with ErrInvalidRange by both modes.
// Shuffles longer than Config.MaxShuffleSize are rejected with
// ErrRangeTooLarge.
//
// A Drawer is not safe for concurrent use. Use one Drawer per round.
package draw

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/provable/internal/platform/errors"
	"github.com/louisbranch/provable/internal/provable/mt"
	"github.com/louisbranch/provable/internal/provable/seed"
)

// DefaultMaxShuffleSize bounds the permutation length when Config leaves it unset.
const DefaultMaxShuffleSize = 1 << 20

// ErrInvalidMode indicates a mode other than number or shuffle.
var ErrInvalidMode = apperrors.New(apperrors.CodeInvalidMode, "mode must be number or shuffle")

// ErrInvalidRange indicates min is greater than max.
var ErrInvalidRange = apperrors.New(apperrors.CodeInvalidRange, "min must not be greater than max")

// ErrRangeTooLarge indicates a shuffle range longer than the configured limit.
var ErrRangeTooLarge = apperrors.New(apperrors.CodeRangeTooLarge, "range is too large to shuffle")

// Config is the immutable description of a round.
type Config struct {
	Seeds seed.Pair
	Min   int64
	Max   int64
	Mode  Mode
	// Variant selects the generator flavor. The zero value is mt.MT19937.
	Variant mt.Variant
	// MaxShuffleSize caps the permutation length. Zero or less means
	// DefaultMaxShuffleSize.
	MaxShuffleSize int
}

// Validate checks the parts of cfg that must be correct before any draw.
// The range is checked at draw time.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return invalidModeError(c.Mode.String())
	}
	if !c.Variant.Valid() {
		return apperrors.WithMetadata(apperrors.CodeInvalidVariant, "invalid generator variant", map[string]string{"Variant": c.Variant.String()})
	}
	return nil
}

func (c Config) shuffleLimit() int {
	if c.MaxShuffleSize <= 0 {
		return DefaultMaxShuffleSize
	}
	return c.MaxShuffleSize
}

// Result is the outcome of Results.
type Result struct {
	Mode        Mode
	Number      int64
	Permutation []int64
}

// Equal reports whether two results carry the same outcome.
func (r Result) Equal(other Result) bool {
	if r.Mode != other.Mode {
		return false
	}
	if r.Mode == ModeNumber {
		return r.Number == other.Number
	}
	if len(r.Permutation) != len(other.Permutation) {
		return false
	}
	for i := range r.Permutation {
		if r.Permutation[i] != other.Permutation[i] {
			return false
		}
	}
	return true
}

// Drawer performs draws for one round.
type Drawer struct {
	cfg    Config
	seeded bool
	stream *mt.Generator
}

// New validates cfg and returns an unseeded Drawer.
func New(cfg Config) (*Drawer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Drawer{cfg: cfg}, nil
}

// Config returns the round description.
func (d *Drawer) Config() Config { return d.cfg }

// Seeds returns the seed pair. The server seed must only be shown after the
// round resolves.
func (d *Drawer) Seeds() seed.Pair { return d.cfg.Seeds }

// HashedServerSeed returns the commitment to the server seed.
func (d *Drawer) HashedServerSeed() string { return d.cfg.Seeds.HashedServerSeed() }

// Min returns the configured lower bound.
func (d *Drawer) Min() int64 { return d.cfg.Min }

// Max returns the configured upper bound.
func (d *Drawer) Max() int64 { return d.cfg.Max }

// Mode returns the configured mode.
func (d *Drawer) Mode() Mode { return d.cfg.Mode }

// Seeded reports whether the number stream has been seeded since
// construction or the last Reset.
func (d *Drawer) Seeded() bool { return d.seeded }

// DeriveSeed computes the generator seed for a pair.
func DeriveSeed(p seed.Pair) uint32 {
	mac := hmac.New(sha256.New, []byte(p.Client))
	mac.Write([]byte(p.Server))
	digest := hex.EncodeToString(mac.Sum(nil))

	v, err := strconv.ParseUint(digest[len(digest)-8:], 16, 32)
	if err != nil {
		// Unreachable: the digest is always hex.
		panic(err)
	}
	return uint32(v)
}

// Number draws from the configured range.
func (d *Drawer) Number() (int64, error) {
	return d.NumberIn(d.cfg.Min, d.cfg.Max)
}

// NumberIn draws from [lo, hi] for this call only. The first number draw
// seeds the stream; later ones continue it.
func (d *Drawer) NumberIn(lo, hi int64) (int64, error) {
	if lo > hi {
		return 0, invalidRangeError(lo, hi)
	}
	if !d.seeded {
		g, err := mt.New(DeriveSeed(d.cfg.Seeds), mt.WithVariant(d.cfg.Variant))
		if err != nil {
			return 0, err
		}
		d.stream = g
		d.seeded = true
	}
	return d.stream.Range(lo, hi), nil
}

// Shuffle permutes the configured range.
func (d *Drawer) Shuffle() ([]int64, error) {
	return d.ShuffleIn(d.cfg.Min, d.cfg.Max)
}

// ShuffleIn permutes every integer in [lo, hi] with a Fisher-Yates shuffle
// driven by a freshly seeded generator. Only permutations reachable from a
// 32-bit seed can occur.
func (d *Drawer) ShuffleIn(lo, hi int64) ([]int64, error) {
	if lo > hi {
		return nil, invalidRangeError(lo, hi)
	}
	limit := d.cfg.shuffleLimit()
	span := uint64(hi) - uint64(lo)
	if span >= uint64(limit) || span >= math.MaxInt {
		return nil, apperrors.WithMetadata(apperrors.CodeRangeTooLarge, "range is too large to shuffle", map[string]string{
			"Min":   strconv.FormatInt(lo, 10),
			"Max":   strconv.FormatInt(hi, 10),
			"Limit": strconv.Itoa(limit),
		})
	}

	values := make([]int64, int(span)+1)
	for i := range values {
		values[i] = lo + int64(i)
	}

	g, err := mt.New(DeriveSeed(d.cfg.Seeds), mt.WithVariant(d.cfg.Variant))
	if err != nil {
		return nil, err
	}
	for i := len(values) - 1; i > 0; i-- {
		j := g.Range(0, int64(i))
		values[i], values[j] = values[j], values[i]
	}
	return values, nil
}

// Results draws according to the configured mode and range.
func (d *Drawer) Results() (Result, error) {
	switch d.cfg.Mode {
	case ModeNumber:
		n, err := d.Number()
		if err != nil {
			return Result{}, err
		}
		return Result{Mode: ModeNumber, Number: n}, nil
	case ModeShuffle:
		p, err := d.Shuffle()
		if err != nil {
			return Result{}, err
		}
		return Result{Mode: ModeShuffle, Permutation: p}, nil
	default:
		return Result{}, ErrInvalidMode
	}
}

// Reset forgets the number stream so the next number draw starts over from
// the derived seed. Seeds and range are unchanged.
func (d *Drawer) Reset() {
	d.seeded = false
	d.stream = nil
}

func invalidRangeError(lo, hi int64) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidRange, "min is greater than max", map[string]string{
		"Min": strconv.FormatInt(lo, 10),
		"Max": strconv.FormatInt(hi, 10),
	})
}
