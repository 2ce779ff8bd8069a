// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeInvalidMode    Code = "INVALID_MODE"
	CodeInvalidVariant Code = "INVALID_VARIANT"

	// Random/seed errors
	CodeEntropyUnavailable Code = "ENTROPY_UNAVAILABLE"

	// Draw errors
	CodeInvalidRange  Code = "INVALID_RANGE"
	CodeRangeTooLarge Code = "RANGE_TOO_LARGE"

	// Verification errors
	CodeCommitmentMismatch Code = "COMMITMENT_MISMATCH"
	CodeResultMismatch     Code = "RESULT_MISMATCH"
	CodeSeedNotRevealed    Code = "SEED_NOT_REVEALED"
)

// ExitCode maps domain codes to process exit statuses for command-line tools.
func (c Code) ExitCode() int {
	switch c {
	// 2 - invalid input, the caller can fix the request
	case CodeInvalidMode,
		CodeInvalidVariant,
		CodeInvalidRange,
		CodeRangeTooLarge,
		CodeSeedNotRevealed:
		return 2

	// 3 - the revealed round does not match what was committed
	case CodeCommitmentMismatch,
		CodeResultMismatch:
		return 3

	default:
		return 1
	}
}
