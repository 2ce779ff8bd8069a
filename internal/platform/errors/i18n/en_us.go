package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidMode        = "INVALID_MODE"
	CodeInvalidVariant     = "INVALID_VARIANT"
	CodeEntropyUnavailable = "ENTROPY_UNAVAILABLE"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeRangeTooLarge      = "RANGE_TOO_LARGE"
	CodeCommitmentMismatch = "COMMITMENT_MISMATCH"
	CodeResultMismatch     = "RESULT_MISMATCH"
	CodeSeedNotRevealed    = "SEED_NOT_REVEALED"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeInvalidMode:        "Invalid mode {{.Mode}}: expected number or shuffle",
		CodeInvalidVariant:     "Invalid generator variant {{.Variant}}",
		CodeEntropyUnavailable: "Secure random source is unavailable",
		CodeInvalidRange:       "Minimum {{.Min}} is greater than maximum {{.Max}}",
		CodeRangeTooLarge:      "Range from {{.Min}} to {{.Max}} is too large to shuffle (limit {{.Limit}})",
		CodeCommitmentMismatch: "Revealed server seed does not match the published hash",
		CodeResultMismatch:     "Replayed result does not match the recorded result",
		CodeSeedNotRevealed:    "Server seed has not been revealed",
	},
}
