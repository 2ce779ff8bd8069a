package mt

import (
	"strings"

	apperrors "github.com/louisbranch/provable/internal/platform/errors"
)

// Variant selects the generator flavor.
type Variant int

const (
	// MT19937 is the reference Mersenne Twister with the modulo-rejection
	// bounded draw. It is the default.
	MT19937 Variant = iota
	// PHPLegacy reproduces the pre-7.1 PHP generator: its reload step mixes
	// in the low bit of the wrong word and its bounded draw scales a 31-bit
	// output with floating point.
	PHPLegacy
)

// ErrInvalidVariant indicates an unknown generator variant.
var ErrInvalidVariant = apperrors.New(apperrors.CodeInvalidVariant, "invalid generator variant")

func (v Variant) String() string {
	switch v {
	case MT19937:
		return "mt19937"
	case PHPLegacy:
		return "php"
	default:
		return "unknown"
	}
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == MT19937 || v == PHPLegacy
}

// ParseVariant parses a variant name. The empty string selects MT19937.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mt19937":
		return MT19937, nil
	case "php":
		return PHPLegacy, nil
	default:
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidVariant, "invalid generator variant "+s, map[string]string{"Variant": s})
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, ErrInvalidVariant
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
