// Package verify checks a revealed round: the server seed must hash to the
// published commitment and replaying the draw must reproduce the recorded
// result.
package verify

import (
	"strconv"

	apperrors "github.com/louisbranch/provable/internal/platform/errors"
	"github.com/louisbranch/provable/internal/provable/draw"
	"github.com/louisbranch/provable/internal/provable/seed"
)

var (
	// ErrSeedNotRevealed indicates the receipt has no server seed.
	ErrSeedNotRevealed = apperrors.New(apperrors.CodeSeedNotRevealed, "server seed has not been revealed")
	// ErrCommitmentMismatch indicates the revealed server seed does not hash
	// to the published commitment.
	ErrCommitmentMismatch = apperrors.New(apperrors.CodeCommitmentMismatch, "server seed does not match commitment")
	// ErrResultMismatch indicates the replayed result differs from the record.
	ErrResultMismatch = apperrors.New(apperrors.CodeResultMismatch, "replayed result does not match receipt")
)

// Report describes a verification.
type Report struct {
	ReceiptID   string
	DerivedSeed uint32
	Replayed    draw.Result
	// Draws holds the replayed number stream for multi-draw receipts.
	Draws []int64
}

// Verify checks a revealed receipt. Number receipts are replayed from a fresh
// stream; when the receipt lists several draws every one of them is checked.
func Verify(r Receipt) (Report, error) {
	if !r.Revealed() {
		return Report{}, ErrSeedNotRevealed
	}
	if !seed.VerifyServerSeed(*r.ServerSeed, r.HashedServerSeed) {
		return Report{}, ErrCommitmentMismatch
	}

	cfg := r.Config()
	d, err := draw.New(cfg)
	if err != nil {
		return Report{}, err
	}
	replayed, err := d.Results()
	if err != nil {
		return Report{}, err
	}
	report := Report{
		ReceiptID:   r.ID,
		DerivedSeed: draw.DeriveSeed(cfg.Seeds),
		Replayed:    replayed,
	}
	if !r.HasResult() || !replayed.Equal(r.Result()) {
		return report, mismatch(report.DerivedSeed, 0)
	}

	if len(r.Draws) > 0 {
		if r.Mode != draw.ModeNumber || r.Draws[0] != replayed.Number {
			return report, mismatch(report.DerivedSeed, 0)
		}
		report.Draws = []int64{replayed.Number}
		for i := 1; i < len(r.Draws); i++ {
			n, err := d.Number()
			if err != nil {
				return report, err
			}
			report.Draws = append(report.Draws, n)
			if n != r.Draws[i] {
				return report, mismatch(report.DerivedSeed, i)
			}
		}
	}
	return report, nil
}

func mismatch(derived uint32, index int) error {
	return apperrors.WithMetadata(apperrors.CodeResultMismatch, "replayed result does not match receipt", map[string]string{
		"Seed":  strconv.FormatUint(uint64(derived), 10),
		"Index": strconv.Itoa(index),
	})
}
