package draw

import (
	apperrors "github.com/louisbranch/provable/internal/platform/errors"
)

// Mode selects what a draw produces.
type Mode int

const (
	// ModeNumber produces one integer in the range.
	ModeNumber Mode = iota + 1
	// ModeShuffle produces a permutation of every integer in the range.
	ModeShuffle
)

func (m Mode) String() string {
	switch m {
	case ModeNumber:
		return "number"
	case ModeShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeNumber || m == ModeShuffle
}

// ParseMode parses "number" or "shuffle". Matching is exact: no case folding
// and no surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "number":
		return ModeNumber, nil
	case "shuffle":
		return ModeShuffle, nil
	default:
		return 0, invalidModeError(s)
	}
}

func invalidModeError(s string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidMode, "invalid mode "+s, map[string]string{"Mode": s})
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, ErrInvalidMode
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
