// Package steam enumerates installed applications from Steam library
// manifests. Discovery is read-only and fails softly per library root: one
// corrupted library never hides the rest.
package steam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/warnings"
)

// ApplicationEntry is an immutable snapshot of one installed title. Entries
// are re-derived on every scan and never persisted; the platform owns this
// state.
type ApplicationEntry struct {
	AppID      string
	Name       string
	InstallDir string
	Executable string
}

// Scanner discovers installed games across one or more Steam roots.
type Scanner struct {
	roots []string
}

// NewScanner returns a Scanner over the given Steam roots. Roots that do not
// exist are reported as warnings at scan time, not here.
func NewScanner(roots []string) *Scanner {
	return &Scanner{roots: roots}
}

// DefaultRoots returns the conventional Steam install locations for the
// current user.
func DefaultRoots() []string {
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".steam", "steam"),
	}
}

// Scan enumerates installed applications from all configured roots. Results
// are sorted by name then appid so repeated scans over the same input present
// an identical order. Non-fatal problems come back as warnings.
func (s *Scanner) Scan() ([]ApplicationEntry, []warnings.Warning) {
	var warns []warnings.Warning

	libraries := s.collectLibraries(&warns)

	var entries []ApplicationEntry
	for _, library := range libraries {
		entries = append(entries, scanLibrary(library, &warns)...)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].AppID < entries[j].AppID
	})
	return entries, warns
}

// collectLibraries resolves the set of library folders: every root is itself
// a library, plus whatever its libraryfolders.vdf names.
func (s *Scanner) collectLibraries(warns *[]warnings.Warning) []string {
	seen := map[string]bool{}
	var libraries []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			libraries = append(libraries, dir)
		}
	}

	for _, root := range s.roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			if err == nil {
				err = errors.New(messages.ScanRootNotDir)
			}
			*warns = append(*warns, warnings.RootUnavailable(root, err))
			continue
		}
		add(root)
		manifest := filepath.Join(root, "steamapps", "libraryfolders.vdf")
		for _, lib := range readLibraryFolders(manifest, warns) {
			add(lib)
		}
	}

	sort.Strings(libraries)
	return libraries
}

// readLibraryFolders parses a libraryfolders.vdf and returns the library
// paths it names. A missing manifest is normal (single-library installs);
// an unreadable one is a warning.
func readLibraryFolders(path string, warns *[]warnings.Warning) []string {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		*warns = append(*warns, warnings.RootUnavailable(path, err))
		return nil
	}
	defer func() { _ = f.Close() }()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		*warns = append(*warns, warnings.Warning{
			Code:    warnings.CodeRootUnavailable,
			Subject: path,
			Message: fmt.Sprintf(messages.ScanManifestUnreadableFmt, path, err),
		})
		return nil
	}

	folders, ok := topLevelMap(parsed, "libraryfolders")
	if !ok {
		return nil
	}
	var libraries []string
	for _, value := range folders {
		entry, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		if p, ok := entry["path"].(string); ok && p != "" {
			libraries = append(libraries, p)
		}
	}
	return libraries
}

// topLevelMap fetches a case-tolerant top-level VDF section. Valve has
// shipped both "libraryfolders" and "LibraryFolders" over the years.
func topLevelMap(parsed map[string]interface{}, key string) (map[string]interface{}, bool) {
	for k, v := range parsed {
		if m, ok := v.(map[string]interface{}); ok && strings.EqualFold(k, key) {
			return m, true
		}
	}
	return nil, false
}
