// Package fsutil provides filesystem primitives shared by the installer:
// atomic file replacement and symlink placement that never clobbers user data.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to filename via a temp file in the same
// directory followed by a rename, so a concurrent reader never observes a
// half-written file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// Best-effort cleanup; harmless after a successful rename.
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpName, filename, err)
	}
	return nil
}

// ReplaceSymlink points target at source, replacing an existing symlink.
// A regular file at target is moved aside to <target>.backup when backup is
// true, removed otherwise; the injector must never silently destroy a file
// the game shipped with.
func ReplaceSymlink(source string, target string, backup bool) error {
	info, err := os.Lstat(target)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("remove stale link %s: %w", target, err)
		}
	case err == nil && backup:
		if err := os.Rename(target, target+".backup"); err != nil {
			return fmt.Errorf("back up %s: %w", target, err)
		}
	case err == nil:
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", target, err)
	}
	resolved, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", source, err)
	}
	if err := os.Symlink(resolved, target); err != nil {
		return fmt.Errorf("link %s to %s: %w", target, resolved, err)
	}
	return nil
}

// RemoveSymlink removes path only when it is a symlink. It reports whether
// anything was removed; regular files are left untouched.
func RemoveSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove link %s: %w", path, err)
	}
	return true, nil
}
