package messages

// Store messages for the per-game record database.
const (
	StoreCorruptFmt       = "%w: %s: %v"
	StoreReadFailedFmt    = "read game store %s: %w"
	StoreWriteFailedFmt   = "write game store %s: %w"
	StoreCreateDirFmt     = "create store directory %s: %w"
	StoreEncodeFailedFmt  = "encode game store for %s: %w"
	StorePathRequired     = "game store path is required"
	StoreIdentityRequired = "game identity is required"
)
