package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glaze-tools/glaze/internal/fsutil"
	"github.com/glaze-tools/glaze/internal/messages"
)

// iniTemplate is the stock injector configuration. Effect and texture search
// paths are filled with the merged tree, translated to the Wine Z: drive the
// game will see.
const iniTemplate = `[DEPTH]
DepthCopyAtClearIndex=0
DepthCopyBeforeClears=0
UseAspectRatioHeuristics=1

[GENERAL]
EffectSearchPaths=,%s
IntermediateCachePath=C:\users\steamuser\Temp
PerformanceMode=0
PreprocessorDefinitions=
PresetPath=.\ReShadePreset.ini
PresetTransitionDelay=1000
SkipLoadingDisabledEffects=0
TextureSearchPaths=,%s

[INPUT]
ForceShortcutModifiers=1
InputProcessing=2
KeyOverlay=36,0,0,0
KeyScreenshot=44,0,0,0

[OVERLAY]
ClockFormat=0
FPSPosition=1
NoFontScaling=1
ShowScreenshotMessage=1
TutorialProgress=4

[SCREENSHOT]
ClearAlpha=1
FileFormat=1
JPEGQuality=90
`

// WinePath translates an absolute host path to the Wine Z: drive form.
func WinePath(path string) string {
	return "Z:" + strings.ReplaceAll(path, "/", `\`)
}

// WriteDefaultINI seeds the global injector ini at path, pointing effect and
// texture search paths at the merged shader tree. An existing ini is left
// alone; users edit it.
func WriteDefaultINI(path string, mergedDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.ConfigWriteINIFailedFmt, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ConfigCreateDirFailedFmt, filepath.Dir(path), err)
	}
	shadersPath := WinePath(filepath.Join(mergedDir, "Shaders"))
	texturesPath := WinePath(filepath.Join(mergedDir, "Textures"))
	content := fmt.Sprintf(iniTemplate, shadersPath, texturesPath)
	if err := fsutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteINIFailedFmt, path, err)
	}
	return nil
}
