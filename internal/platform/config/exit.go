package config

import (
	"fmt"
	"os"

	apperrors "github.com/louisbranch/provable/internal/platform/errors"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitError writes the localized message for err to stderr and exits with the
// status mapped from its domain code.
func ExitError(prefix string, err error, locale string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, apperrors.Localize(err, locale))
	os.Exit(apperrors.ExitCode(err))
}
