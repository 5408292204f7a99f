package messages

// Analyzer messages for executable inspection failures. Every fatal error
// names the offending path so the user knows which binary was rejected.
const (
	AnalyzeOpenFailedFmt       = "read executable %s: %w"
	AnalyzeMalformedFmt        = "%w: %s: %s"
	AnalyzeUnsupportedFmt      = "%w: %s: %s"
	AnalyzeNotExecutableReason = "image is not marked executable"
	AnalyzeDLLOnlyReason       = "image is a DLL, not a program"
	AnalyzeMachineReasonFmt    = "unrecognized machine type 0x%04x"
	AnalyzeNoStubReason        = "missing MZ stub header"
	AnalyzeBadOffsetReason     = "header offset points outside the file"
	AnalyzeBadSignatureReason  = "missing PE signature"
	AnalyzeTruncatedReasonFmt  = "truncated at %s"
	AnalyzeBadOptionalReason   = "unrecognized optional header magic"
)
