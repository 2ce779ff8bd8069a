// Package mt implements the 32-bit Mersenne Twister together with the
// classic bounded draw used by PHP's mt_rand(min, max).
//
// # Compatibility
//
// Outputs are bit-exact with the reference generator: seeding uses
// init_genrand, the state is reloaded immediately after seeding, and Range
// reproduces the reference's handling of the requested width, including the
// 64-bit path for widths above 2^32-1 and the rejection loop that discards
// outputs above the largest multiple of the width. Archived rounds can
// therefore be re-derived from their seeds.
//
// A Generator is not safe for concurrent use.
package mt

import (
	"math"
)

const (
	n          = 624
	m          = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	initMult   = 1812433253
	legacyMax  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// Generator is an MT19937 state plus a read position.
type Generator struct {
	state   [n]uint32
	next    int
	left    int
	variant Variant
}

// Option configures New.
type Option func(*Generator)

// WithVariant selects the generator flavor.
func WithVariant(v Variant) Option {
	return func(g *Generator) { g.variant = v }
}

// New returns a generator seeded with seed.
func New(seed uint32, opts ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if !g.variant.Valid() {
		return nil, ErrInvalidVariant
	}
	g.Seed(seed)
	return g, nil
}

// Seed reinitializes the state from seed and discards any buffered output.
func (g *Generator) Seed(seed uint32) {
	g.state[0] = seed
	for i := 1; i < n; i++ {
		prev := g.state[i-1]
		g.state[i] = initMult*(prev^(prev>>30)) + uint32(i)
	}
	g.reload()
}

func (g *Generator) twist(mixed, u, v uint32) uint32 {
	y := (u & upperMask) | (v & lowerMask)
	low := v
	if g.variant == PHPLegacy {
		low = u
	}
	return mixed ^ (y >> 1) ^ (-(low & 1) & matrixA)
}

func (g *Generator) reload() {
	s := &g.state
	i := 0
	for ; i < n-m; i++ {
		s[i] = g.twist(s[i+m], s[i], s[i+1])
	}
	for ; i < n-1; i++ {
		s[i] = g.twist(s[i+m-n], s[i], s[i+1])
	}
	s[n-1] = g.twist(s[m-1], s[n-1], s[0])

	g.next = 0
	g.left = n
}

// Uint32 returns the next tempered 32-bit output.
func (g *Generator) Uint32() uint32 {
	if g.left == 0 {
		g.reload()
	}
	g.left--

	y := g.state[g.next]
	g.next++
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	return y ^ (y >> 18)
}

// Uint64 combines two outputs, high word first. With it a Generator
// satisfies math/rand/v2.Source.
func (g *Generator) Uint64() uint64 {
	hi := uint64(g.Uint32())
	return hi<<32 | uint64(g.Uint32())
}

// Range returns an integer in [lo, hi] the way mt_rand(lo, hi) does.
// It panics if lo > hi; callers validate ranges first.
func (g *Generator) Range(lo, hi int64) int64 {
	if lo > hi {
		panic("mt: invalid argument to Range")
	}

	if g.variant == PHPLegacy {
		v := float64(g.Uint32() >> 1)
		return lo + int64((float64(hi)-float64(lo)+1.0)*(v/(legacyMax+1.0)))
	}

	umax := uint64(hi) - uint64(lo)
	var r uint64
	if umax > math.MaxUint32 {
		r = g.range64(umax)
	} else {
		r = uint64(g.range32(uint32(umax)))
	}
	return int64(uint64(lo) + r)
}

func (g *Generator) range32(umax uint32) uint32 {
	result := g.Uint32()
	if umax == math.MaxUint32 {
		return result
	}

	umax++
	if umax&(umax-1) == 0 {
		return result & (umax - 1)
	}

	limit := math.MaxUint32 - (math.MaxUint32 % umax) - 1
	for result > limit {
		result = g.Uint32()
	}
	return result % umax
}

func (g *Generator) range64(umax uint64) uint64 {
	result := g.Uint64()
	if umax == math.MaxUint64 {
		return result
	}

	umax++
	if umax&(umax-1) == 0 {
		return result & (umax - 1)
	}

	limit := math.MaxUint64 - (math.MaxUint64 % umax) - 1
	for result > limit {
		result = g.Uint64()
	}
	return result % umax
}
