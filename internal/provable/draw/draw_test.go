package draw

import (
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/provable/internal/provable/mt"
	"github.com/louisbranch/provable/internal/provable/seed"
)

var abcDef = seed.Pair{Client: "abc", Server: "def"}

// results runs Results on a fresh Drawer for cfg.
func results(cfg Config) (Result, error) {
	d, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return d.Results()
}

func mustDrawer(t *testing.T, cfg Config) *Drawer {
	t.Helper()
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return d
}

func TestDeriveSeed(t *testing.T) {
	if got := DeriveSeed(abcDef); got != 367702145 {
		t.Fatalf("DeriveSeed = %d, want 367702145", got)
	}
	if DeriveSeed(abcDef) != DeriveSeed(seed.Pair{Client: "abc", Server: "def"}) {
		t.Fatal("expected derivation to be deterministic")
	}
	if DeriveSeed(abcDef) == DeriveSeed(seed.Pair{Client: "def", Server: "abc"}) {
		t.Fatal("expected swapped seeds to derive a different integer")
	}
}

func TestNumberReferenceScenario(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})
	got, err := d.Number()
	if err != nil {
		t.Fatalf("Number returned error: %v", err)
	}
	if got != 3 {
		t.Fatalf("Number = %d, want 3", got)
	}
}

// TestNumberContinuesStream ensures later draws continue the stream rather
// than reseeding.
func TestNumberContinuesStream(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})
	g, err := mt.New(DeriveSeed(abcDef))
	if err != nil {
		t.Fatalf("mt.New returned error: %v", err)
	}

	for i, want := range []int64{3, 4, 6, 2, 1} {
		got, err := d.Number()
		if err != nil {
			t.Fatalf("Number #%d returned error: %v", i, err)
		}
		if got != want {
			t.Fatalf("Number #%d = %d, want %d", i, got, want)
		}
		if ref := g.Range(1, 6); ref != got {
			t.Fatalf("Number #%d = %d, generator gives %d", i, got, ref)
		}
	}
}

func TestResetRestartsStream(t *testing.T) {
	cfg := Config{Seeds: abcDef, Min: 1, Max: 100, Mode: ModeNumber}

	a := mustDrawer(t, cfg)
	v1, _ := a.Number()
	v2, _ := a.Number()
	if v1 == v2 {
		t.Fatalf("test needs distinct values, got %d twice", v1)
	}

	b := mustDrawer(t, cfg)
	if _, err := b.Number(); err != nil {
		t.Fatalf("Number returned error: %v", err)
	}
	if !b.Seeded() {
		t.Fatal("expected drawer to be seeded after a number draw")
	}
	b.Reset()
	if b.Seeded() {
		t.Fatal("expected Reset to clear seeded state")
	}
	got, err := b.Number()
	if err != nil {
		t.Fatalf("Number returned error: %v", err)
	}
	if got != v1 {
		t.Fatalf("after Reset Number = %d, want %d (not %d)", got, v1, v2)
	}
	if b.Seeds() != abcDef || b.Min() != 1 || b.Max() != 100 {
		t.Fatal("expected Reset to leave seeds and range untouched")
	}
}

func TestNumberInOverridesRangeForCallOnly(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})
	got, err := d.NumberIn(1, 100)
	if err != nil {
		t.Fatalf("NumberIn returned error: %v", err)
	}
	if got != 45 {
		t.Fatalf("NumberIn(1, 100) = %d, want 45", got)
	}
	if d.Min() != 1 || d.Max() != 6 {
		t.Fatalf("expected stored range [1, 6], got [%d, %d]", d.Min(), d.Max())
	}
	// Second draw continues the stream over the stored range.
	if got, _ := d.Number(); got != 4 {
		t.Fatalf("Number after override = %d, want 4", got)
	}
}

func TestShuffleReferenceScenarios(t *testing.T) {
	tcs := []struct {
		name     string
		min, max int64
		variant  mt.Variant
		want     []int64
	}{
		{name: "five", min: 0, max: 4, want: []int64{0, 1, 2, 3, 4}},
		{name: "ten", min: 1, max: 10, want: []int64{3, 4, 8, 10, 6, 9, 7, 2, 1, 5}},
		{name: "legacy five", min: 0, max: 4, variant: mt.PHPLegacy, want: []int64{3, 4, 0, 1, 2}},
		{name: "single", min: 7, max: 7, want: []int64{7}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := mustDrawer(t, Config{Seeds: abcDef, Min: tc.min, Max: tc.max, Mode: ModeShuffle, Variant: tc.variant})
			got, err := d.Shuffle()
			if err != nil {
				t.Fatalf("Shuffle returned error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Shuffle = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("Shuffle = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestShuffleReseedsEveryCall(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 10, Mode: ModeShuffle})
	first, err := d.Shuffle()
	if err != nil {
		t.Fatalf("Shuffle returned error: %v", err)
	}
	second, err := d.Shuffle()
	if err != nil {
		t.Fatalf("Shuffle returned error: %v", err)
	}
	if !(Result{Mode: ModeShuffle, Permutation: first}).Equal(Result{Mode: ModeShuffle, Permutation: second}) {
		t.Fatalf("expected identical permutations, got %v and %v", first, second)
	}
}

// TestShuffleDoesNotDisturbNumberStream pins the decision that the two modes
// run independent generators.
func TestShuffleDoesNotDisturbNumberStream(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})

	if _, err := d.ShuffleIn(0, 4); err != nil {
		t.Fatalf("ShuffleIn returned error: %v", err)
	}
	if d.Seeded() {
		t.Fatal("expected shuffle to leave the number stream unseeded")
	}
	first, _ := d.Number()
	if _, err := d.ShuffleIn(1, 52); err != nil {
		t.Fatalf("ShuffleIn returned error: %v", err)
	}
	second, _ := d.Number()
	if first != 3 || second != 4 {
		t.Fatalf("number stream = [%d %d], want [3 4]", first, second)
	}
}

func TestInvalidRangeRejected(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 6, Max: 1, Mode: ModeNumber})

	if _, err := d.Number(); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Number error = %v, want %v", err, ErrInvalidRange)
	}
	if d.Seeded() {
		t.Fatal("expected rejected draw not to seed the stream")
	}
	if _, err := d.Shuffle(); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Shuffle error = %v, want %v", err, ErrInvalidRange)
	}
	if _, err := d.Results(); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Results error = %v, want %v", err, ErrInvalidRange)
	}
}

func TestShuffleRangeTooLarge(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 10, Mode: ModeShuffle, MaxShuffleSize: 10})
	if _, err := d.Shuffle(); err != nil {
		t.Fatalf("Shuffle at the limit returned error: %v", err)
	}
	if _, err := d.ShuffleIn(1, 11); !errors.Is(err, ErrRangeTooLarge) {
		t.Fatalf("ShuffleIn error = %v, want %v", err, ErrRangeTooLarge)
	}
	if _, err := d.ShuffleIn(math.MinInt64, math.MaxInt64); !errors.Is(err, ErrRangeTooLarge) {
		t.Fatalf("ShuffleIn(full range) error = %v, want %v", err, ErrRangeTooLarge)
	}
}

func TestNewRejectsInvalidMode(t *testing.T) {
	for _, mode := range []Mode{0, Mode(3), Mode(-1)} {
		if _, err := New(Config{Seeds: abcDef, Mode: mode}); !errors.Is(err, ErrInvalidMode) {
			t.Fatalf("New(mode %d) error = %v, want %v", mode, err, ErrInvalidMode)
		}
	}
}

func TestNewRejectsInvalidVariant(t *testing.T) {
	_, err := New(Config{Seeds: abcDef, Mode: ModeNumber, Variant: mt.Variant(5)})
	if !errors.Is(err, mt.ErrInvalidVariant) {
		t.Fatalf("New error = %v, want %v", err, mt.ErrInvalidVariant)
	}
}

func TestParseMode(t *testing.T) {
	tcs := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "number", want: ModeNumber},
		{in: "shuffle", want: ModeShuffle},
		{in: "Shuffle", wantErr: true},
		{in: " number ", wantErr: true},
		{in: "dice", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tcs {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidMode) {
				t.Fatalf("ParseMode(%q) error = %v, want %v", tc.in, err, ErrInvalidMode)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestResultsDispatchesOnMode(t *testing.T) {
	number, err := results(Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if number.Mode != ModeNumber || number.Number != 3 || number.Permutation != nil {
		t.Fatalf("unexpected number result: %+v", number)
	}

	shuffle, err := results(Config{Seeds: abcDef, Min: 1, Max: 10, Mode: ModeShuffle})
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if shuffle.Mode != ModeShuffle || len(shuffle.Permutation) != 10 || shuffle.Permutation[0] != 3 {
		t.Fatalf("unexpected shuffle result: %+v", shuffle)
	}
}

func TestDrawerExposesCommitment(t *testing.T) {
	d := mustDrawer(t, Config{Seeds: abcDef, Min: 1, Max: 6, Mode: ModeNumber})
	if got := d.HashedServerSeed(); got != seed.Hash("def") {
		t.Fatalf("HashedServerSeed = %s", got)
	}
	if d.Mode() != ModeNumber {
		t.Fatalf("Mode = %v", d.Mode())
	}
}
