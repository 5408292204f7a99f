package peinfo

import "strings"

// exeBlacklist filters out executables that ship next to games but are never
// the game itself: installers, crash reporters, redistributable setups,
// anticheat services.
var exeBlacklist = []string{
	"unins", "setup", "install", "crash", "report", "launcher", "updater",
	"vc_redist", "vcredist", "dxsetup", "dotnet", "directx", "easyanticheat",
	"battleye", "redist", "physx",
}

// LikelyGameExecutable reports whether name looks like a game binary rather
// than a support tool. name may be a bare file name or a path.
func LikelyGameExecutable(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range exeBlacklist {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}
