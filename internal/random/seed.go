// Package random provides cryptographic seed generation helpers.
//
// It uses crypto/rand to generate high-entropy seed material for the
// commit-reveal protocol. Callers may inject another reader for tests.
package random

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// SeedBytes is the number of random bytes behind a generated seed.
const SeedBytes = 32

// NewHexSeed reads SeedBytes bytes from reader and returns them as a
// lowercase hexadecimal string. A nil reader means crypto/rand.
func NewHexSeed(reader io.Reader) (string, error) {
	if reader == nil {
		reader = crand.Reader
	}

	var b [SeedBytes]byte
	if _, err := io.ReadFull(reader, b[:]); err != nil {
		return "", fmt.Errorf("read random seed: %w", err)
	}

	return hex.EncodeToString(b[:]), nil
}
