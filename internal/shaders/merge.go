// Package shaders assembles one merged shader tree from an ordered list of
// source directories. Files are sorted into Shaders/ and Textures/ the way
// the injector expects to find them, and the merge is always a full rebuild:
// the output exactly reflects current sources, including upstream deletions.
package shaders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/warnings"
)

// The injector only loads effects from its configured Shaders search path and
// textures from its Textures search path, so everything merged must land
// under one of the two.
const (
	shadersDir  = "Shaders"
	texturesDir = "Textures"
)

var shaderExts = map[string]bool{
	".fx":  true,
	".fxh": true,
}

var textureExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".dds":  true,
	".bmp":  true,
	".tga":  true,
}

// ErrOutputNotWritable marks a merge that could not start because the output
// directory cannot be created or cleared. Nothing has been merged when this
// is returned.
var ErrOutputNotWritable = errors.New("merge output not writable")

// Source is one named shader directory. Order matters to the merger: the
// caller lists the user-supplied "external" source last so user files always
// beat bundled repositories.
type Source struct {
	Name string
	Dir  string
}

// Report describes what one merge produced.
type Report struct {
	FilesWritten int
	PerSource    map[string]int
	Overridden   []string // merged paths provided by more than one source
	Skipped      []string // source names skipped because their dir is missing
}

// plannedFile is the winning source for one relative path.
type plannedFile struct {
	sourceName string
	absPath    string
}

// Merge rebuilds the Shaders and Textures trees under outputDir as the union
// of all files from sources. When two sources provide a file at the same
// merged path, the later source wins. Missing sources are skipped with a
// warning; an unusable output directory is fatal. ctx interrupts the copy
// loop between files; partial output is acceptable because the next merge
// rebuilds from scratch.
func Merge(ctx context.Context, sources []Source, outputDir string) (Report, []warnings.Warning, error) {
	report := Report{PerSource: map[string]int{}}
	if outputDir == "" {
		return report, nil, errors.New(messages.MergeOutputRequired)
	}

	var warns []warnings.Warning
	planned := map[string]plannedFile{}
	overridden := map[string]bool{}

	for _, source := range sources {
		info, err := os.Stat(source.Dir)
		if err != nil || !info.IsDir() {
			warns = append(warns, warnings.SourceUnavailable(source.Dir,
				fmt.Sprintf(messages.MergeSourceMissingFmt, source.Name, source.Dir)))
			report.Skipped = append(report.Skipped, source.Name)
			continue
		}
		if err := planSource(source, planned, overridden); err != nil {
			return report, warns, err
		}
	}

	if err := resetOutput(outputDir); err != nil {
		return report, warns, err
	}

	rels := make([]string, 0, len(planned))
	for rel := range planned {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return report, warns, err
		}
		file := planned[rel]
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := copyFile(file.absPath, dest); err != nil {
			return report, warns, err
		}
		report.FilesWritten++
		report.PerSource[file.sourceName]++
	}

	for rel := range overridden {
		report.Overridden = append(report.Overridden, rel)
	}
	sort.Strings(report.Overridden)
	return report, warns, nil
}

// planSource records every mergeable file under one source, overriding
// earlier sources at colliding merged paths.
func planSource(source Source, planned map[string]plannedFile, overridden map[string]bool) error {
	err := filepath.WalkDir(source.Dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source.Dir, filePath)
		if err != nil {
			return err
		}
		merged, ok := classifyRel(filepath.ToSlash(rel))
		if !ok {
			return nil
		}
		if _, exists := planned[merged]; exists {
			overridden[merged] = true
		}
		planned[merged] = plannedFile{sourceName: source.Name, absPath: filePath}
		return nil
	})
	if err != nil {
		return fmt.Errorf(messages.MergeWalkFailedFmt, source.Dir, err)
	}
	return nil
}

// classifyRel maps a source-relative path to its place in the merged tree.
// Files under a Shaders or Textures directory keep that placement with their
// remaining subpath; loose files are placed by extension. Files that are
// neither effects nor textures are not merged.
func classifyRel(rel string) (string, bool) {
	comps := strings.Split(rel, "/")
	for i, comp := range comps[:len(comps)-1] {
		if comp == shadersDir || comp == texturesDir {
			return path.Join(append([]string{comp}, comps[i+1:]...)...), true
		}
	}
	switch ext := strings.ToLower(path.Ext(rel)); {
	case shaderExts[ext]:
		return path.Join(shadersDir, path.Base(rel)), true
	case textureExts[ext]:
		return path.Join(texturesDir, path.Base(rel)), true
	}
	return "", false
}

// resetOutput clears the previously-merged Shaders and Textures trees and
// recreates the output dir. Anything else under outputDir is left alone.
func resetOutput(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf(messages.MergeOutputNotWritableFmt, ErrOutputNotWritable, outputDir, err)
	}
	for _, sub := range []string{shadersDir, texturesDir} {
		merged := filepath.Join(outputDir, sub)
		if err := os.RemoveAll(merged); err != nil {
			return fmt.Errorf(messages.MergeOutputNotWritableFmt, ErrOutputNotWritable, merged, err)
		}
	}
	return nil
}

func copyFile(src string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf(messages.MergeCopyFailedFmt, src, dest, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(messages.MergeCopyFailedFmt, src, dest, err)
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf(messages.MergeCopyFailedFmt, src, dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.MergeCopyFailedFmt, src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.MergeCopyFailedFmt, src, dest, err)
	}
	return nil
}
