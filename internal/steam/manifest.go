package steam

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/peinfo"
	"github.com/glaze-tools/glaze/internal/warnings"
)

// scanLibrary reads every appmanifest under one library folder and returns
// the entries whose install dir and executable both check out. Broken entries
// are excluded with a warning rather than surfaced as partial results.
func scanLibrary(library string, warns *[]warnings.Warning) []ApplicationEntry {
	steamapps := filepath.Join(library, "steamapps")
	manifests, err := filepath.Glob(filepath.Join(steamapps, "appmanifest_*.acf"))
	if err != nil {
		*warns = append(*warns, warnings.RootUnavailable(steamapps, err))
		return nil
	}
	sort.Strings(manifests)

	var entries []ApplicationEntry
	for _, manifest := range manifests {
		entry, ok := readAppManifest(manifest, steamapps, warns)
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// readAppManifest parses one appmanifest_*.acf into an ApplicationEntry.
func readAppManifest(path string, steamapps string, warns *[]warnings.Warning) (ApplicationEntry, bool) {
	f, err := os.Open(path)
	if err != nil {
		*warns = append(*warns, warnings.EntryExcluded(path, err.Error()))
		return ApplicationEntry{}, false
	}
	defer func() { _ = f.Close() }()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		*warns = append(*warns, warnings.EntryExcluded(path, fmt.Sprintf(messages.ScanManifestUnreadableFmt, path, err)))
		return ApplicationEntry{}, false
	}
	state, ok := topLevelMap(parsed, "AppState")
	if !ok {
		*warns = append(*warns, warnings.EntryExcluded(path, fmt.Sprintf(messages.ScanManifestUnreadableFmt, path, fmt.Errorf("missing AppState section"))))
		return ApplicationEntry{}, false
	}

	appid, _ := state["appid"].(string)
	name, _ := state["name"].(string)
	installdir, _ := state["installdir"].(string)
	if appid == "" || installdir == "" {
		*warns = append(*warns, warnings.EntryExcluded(path, fmt.Sprintf(messages.ScanManifestUnreadableFmt, path, fmt.Errorf("missing appid or installdir"))))
		return ApplicationEntry{}, false
	}
	if name == "" {
		name = installdir
	}

	installPath := filepath.Join(steamapps, "common", installdir)
	if info, err := os.Stat(installPath); err != nil || !info.IsDir() {
		*warns = append(*warns, warnings.EntryExcluded(name, fmt.Sprintf(messages.ScanEntryMissingDirFmt, name, installPath)))
		return ApplicationEntry{}, false
	}

	executable, ok := findExecutable(installPath)
	if !ok {
		*warns = append(*warns, warnings.EntryExcluded(name, fmt.Sprintf(messages.ScanEntryNoExecutableFmt, name, installPath)))
		return ApplicationEntry{}, false
	}

	return ApplicationEntry{
		AppID:      appid,
		Name:       name,
		InstallDir: installPath,
		Executable: executable,
	}, true
}

// findExecutable picks the main binary of an install dir: the shallowest
// non-blacklisted .exe, ties broken lexicographically. WalkDir visits paths
// in lexical order, so the choice is stable across runs.
func findExecutable(installPath string) (string, bool) {
	var best string
	bestDepth := -1
	_ = filepath.WalkDir(installPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".exe") {
			return nil
		}
		if !peinfo.LikelyGameExecutable(filepath.Base(path)) {
			return nil
		}
		rel, err := filepath.Rel(installPath, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if bestDepth == -1 || depth < bestDepth {
			best = path
			bestDepth = depth
		}
		return nil
	})
	return best, best != ""
}
