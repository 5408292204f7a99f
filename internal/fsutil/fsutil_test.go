package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	if err := WriteFileAtomic(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("unexpected content: %q", string(data))
	}
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "new" {
		t.Fatalf("expected replacement, got %q", string(data))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestReplaceSymlinkBacksUpRegularFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "ReShade64.dll")
	target := filepath.Join(dir, "dxgi.dll")
	if err := os.WriteFile(source, []byte("dll"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	if err := ReplaceSymlink(source, target, true); err != nil {
		t.Fatalf("ReplaceSymlink error: %v", err)
	}

	backup, err := os.ReadFile(target + ".backup")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != "original" {
		t.Fatalf("backup content mismatch: %q", string(backup))
	}
	dest, err := os.Readlink(target)
	if err != nil {
		t.Fatalf("target is not a symlink: %v", err)
	}
	if dest != source {
		t.Fatalf("link points at %q, want %q", dest, source)
	}
}

func TestReplaceSymlinkReplacesStaleLink(t *testing.T) {
	dir := t.TempDir()
	oldSource := filepath.Join(dir, "old.dll")
	newSource := filepath.Join(dir, "new.dll")
	target := filepath.Join(dir, "d3d9.dll")
	for _, p := range []string{oldSource, newSource} {
		if err := os.WriteFile(p, []byte("dll"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	if err := os.Symlink(oldSource, target); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	if err := ReplaceSymlink(newSource, target, true); err != nil {
		t.Fatalf("ReplaceSymlink error: %v", err)
	}
	dest, err := os.Readlink(target)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if dest != newSource {
		t.Fatalf("link points at %q, want %q", dest, newSource)
	}
	if _, err := os.Stat(target + ".backup"); !os.IsNotExist(err) {
		t.Fatalf("stale link must not produce a backup")
	}
}

func TestRemoveSymlinkLeavesRegularFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "d3d9.dll")
	if err := os.WriteFile(file, []byte("game-owned"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	removed, err := RemoveSymlink(file)
	if err != nil {
		t.Fatalf("RemoveSymlink error: %v", err)
	}
	if removed {
		t.Fatalf("regular file must not be removed")
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("file should survive: %v", err)
	}
}

func TestRemoveSymlinkRemovesLink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src")
	link := filepath.Join(dir, "lnk")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.Symlink(source, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	removed, err := RemoveSymlink(link)
	if err != nil {
		t.Fatalf("RemoveSymlink error: %v", err)
	}
	if !removed {
		t.Fatalf("expected link removal")
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Fatalf("link should be gone")
	}

	removed, err = RemoveSymlink(link)
	if err != nil || removed {
		t.Fatalf("second removal must be a no-op, got removed=%v err=%v", removed, err)
	}
}
