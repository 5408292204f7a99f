package messages

// Merger messages for shader tree assembly.
const (
	MergeOutputRequired       = "merge output directory is required"
	MergeOutputNotWritableFmt = "%w: %s: %v"
	MergeSourceMissingFmt     = "shader source %s (%s) is missing; skipped"
	MergeCopyFailedFmt        = "copy %s to %s: %w"
	MergeWalkFailedFmt        = "walk shader source %s: %w"
)
