package messages

// Scanner messages for Steam library discovery.
const (
	ScanManifestUnreadableFmt = "manifest %s could not be parsed: %v"
	ScanRootNotDir            = "not a directory"
	ScanEntryNoExecutableFmt  = "%s has no usable executable under %s"
	ScanEntryMissingDirFmt    = "%s points at missing install dir %s"
)
