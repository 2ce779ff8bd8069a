// Package seed manages the client/server seed pair of a provably fair round
// and the public commitment to the server seed.
//
// The server seed stays secret until the round resolves. Before the round the
// operator publishes HashedServerSeed; afterwards it reveals the seed and the
// counterparty checks it with VerifyServerSeed.
package seed

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"strings"

	apperrors "github.com/louisbranch/provable/internal/platform/errors"
	"github.com/louisbranch/provable/internal/random"
)

// ErrEntropyUnavailable indicates seed material could not be generated.
var ErrEntropyUnavailable = apperrors.New(apperrors.CodeEntropyUnavailable, "secure random source is unavailable")

// Pair holds the two secret inputs of a round.
type Pair struct {
	Client string
	Server string
}

// Commitment is the part of a round that is safe to publish before it resolves.
type Commitment struct {
	ClientSeed       string `json:"client_seed" yaml:"client_seed"`
	HashedServerSeed string `json:"hashed_server_seed" yaml:"hashed_server_seed"`
}

type options struct {
	client  *string
	server  *string
	entropy io.Reader
}

// Option configures NewPair.
type Option func(*options)

// WithClientSeed supplies the client seed instead of generating one.
// An empty string is a valid seed.
func WithClientSeed(s string) Option {
	return func(o *options) { o.client = &s }
}

// WithServerSeed supplies the server seed instead of generating one.
func WithServerSeed(s string) Option {
	return func(o *options) { o.server = &s }
}

// WithEntropy overrides the reader used for generated seeds.
func WithEntropy(r io.Reader) Option {
	return func(o *options) { o.entropy = r }
}

// NewPair builds a seed pair. Seeds not supplied through options are
// generated as 64 lowercase hex characters from 32 random bytes.
func NewPair(opts ...Option) (Pair, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client, err := resolve(o.client, o.entropy)
	if err != nil {
		return Pair{}, err
	}
	server, err := resolve(o.server, o.entropy)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Client: client, Server: server}, nil
}

func resolve(value *string, entropy io.Reader) (string, error) {
	if value != nil {
		return *value, nil
	}
	s, err := random.NewHexSeed(entropy)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeEntropyUnavailable, "generate seed", err)
	}
	return s, nil
}

// HashedServerSeed returns the SHA-256 hex digest of the server seed.
func (p Pair) HashedServerSeed() string {
	return Hash(p.Server)
}

// Commitment returns the publishable view of the pair.
func (p Pair) Commitment() Commitment {
	return Commitment{
		ClientSeed:       p.Client,
		HashedServerSeed: p.HashedServerSeed(),
	}
}

// Hash returns the lowercase SHA-256 hex digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// VerifyServerSeed reports whether serverSeed hashes to the published
// commitment. The comparison ignores hex case and runs in constant time.
func VerifyServerSeed(serverSeed, hashed string) bool {
	want := strings.ToLower(strings.TrimSpace(hashed))
	got := Hash(serverSeed)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
