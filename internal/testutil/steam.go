package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteLibraryFolders writes a libraryfolders.vdf under root/steamapps
// listing the given library paths. t is the active test.
func WriteLibraryFolders(t *testing.T, root string, libraries ...string) {
	t.Helper()
	dir := filepath.Join(root, "steamapps")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create steamapps dir: %v", err)
	}
	content := "\"libraryfolders\"\n{\n"
	for i, lib := range libraries {
		content += fmt.Sprintf("\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t}\n", i, lib)
	}
	content += "}\n"
	path := filepath.Join(dir, "libraryfolders.vdf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteAppManifest writes an appmanifest_<appid>.acf under library/steamapps
// and creates the matching install dir under steamapps/common. It returns the
// install dir. t is the active test.
func WriteAppManifest(t *testing.T, library string, appid string, name string, installdir string) string {
	t.Helper()
	dir := filepath.Join(library, "steamapps")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create steamapps dir: %v", err)
	}
	content := fmt.Sprintf("\"AppState\"\n{\n\t\"appid\"\t\t\"%s\"\n\t\"name\"\t\t\"%s\"\n\t\"installdir\"\t\t\"%s\"\n}\n", appid, name, installdir)
	path := filepath.Join(dir, fmt.Sprintf("appmanifest_%s.acf", appid))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	install := filepath.Join(dir, "common", installdir)
	if err := os.MkdirAll(install, 0o755); err != nil {
		t.Fatalf("create install dir: %v", err)
	}
	return install
}
