package planner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glaze-tools/glaze/internal/config"
	"github.com/glaze-tools/glaze/internal/fsutil"
	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/peinfo"
	"github.com/glaze-tools/glaze/internal/shaders"
)

// shadersLinkName is the directory link placed next to the game executable
// so relative ini paths keep working.
const shadersLinkName = "ReShade_shaders"

// compilerDLL ships alongside the injector and must sit next to the game
// executable for d3d effects to compile.
const compilerDLL = "d3dcompiler_47.dll"

// removableLinks is every link name an install may have placed, across all
// override choices. Uninstall sweeps them all so a changed override between
// installs never strands a link.
var removableLinks = []string{
	"d3d8.dll", "d3d9.dll", "d3d10.dll", "d3d11.dll", "d3d12.dll",
	"dxgi.dll", "ddraw.dll", "dinput8.dll", "opengl32.dll",
	compilerDLL, "ReShade.ini", shadersLinkName,
	"ReShade32.json", "ReShade64.json",
}

// Result is the Installed state: the persisted record plus every link the
// install placed.
type Result struct {
	Record      gamedb.Record
	LinksPlaced []string
	MergeReport *shaders.Report
}

// Install performs the Configured → Installed transition. All filesystem
// work happens first; the store is updated only once every link is in place,
// so a failed install never records success.
func (p *Planner) Install(ctx context.Context, configured *Configured) (*Result, error) {
	if configured.OverrideModule == "" || configured.InstallPath == "" {
		return nil, errors.New(messages.InstallNotConfigured)
	}
	if info, err := os.Stat(configured.InstallPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf(messages.InstallTargetDirMissingFmt, configured.InstallPath)
	}
	injectorDLL := filepath.Join(p.cfg.RuntimeDir, injectorName(configured.Profile.Architecture))
	if _, err := os.Stat(injectorDLL); err != nil {
		return nil, fmt.Errorf(messages.InstallRuntimeDLLMissingFmt, injectorDLL)
	}

	paths := p.cfg.Paths()
	result := &Result{}

	if configured.MergeShaders {
		report, warns, err := p.merge(ctx, p.cfg.MergeSources(), paths.MergedDir)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallMergeFailedFmt, err)
		}
		for _, w := range warns {
			_, _ = fmt.Fprintln(p.warn, w)
		}
		result.MergeReport = &report
	}

	if err := config.WriteDefaultINI(paths.INIPath, paths.MergedDir); err != nil {
		return nil, err
	}

	link := func(source string, name string, backup bool) error {
		target := filepath.Join(configured.InstallPath, name)
		if err := fsutil.ReplaceSymlink(source, target, backup); err != nil {
			return fmt.Errorf(messages.InstallLinkFailedFmt, target, err)
		}
		result.LinksPlaced = append(result.LinksPlaced, target)
		return nil
	}

	// The game may ship its own DLL under the override name; back it up
	// instead of destroying it.
	if err := link(injectorDLL, configured.OverrideModule+".dll", true); err != nil {
		return nil, err
	}
	if compiler := filepath.Join(p.cfg.RuntimeDir, compilerDLL); fileExists(compiler) {
		if err := link(compiler, compilerDLL, true); err != nil {
			return nil, err
		}
	}
	if configured.MergeShaders {
		if err := link(filepath.Dir(paths.MergedDir), shadersLinkName, false); err != nil {
			return nil, err
		}
	}
	if fileExists(paths.INIPath) {
		if err := link(paths.INIPath, p.cfg.GlobalINI, false); err != nil {
			return nil, err
		}
	}

	record := gamedb.Record{
		Architecture:   string(configured.Profile.Architecture),
		GraphicsAPI:    string(configured.Profile.API),
		OverrideModule: configured.OverrideModule,
		InstallPath:    configured.InstallPath,
		ShadersMerged:  configured.MergeShaders,
	}
	if configured.Prior != nil {
		record.Extra = configured.Prior.Extra
	}
	if err := record.SetExtra("installed_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf(messages.InstallRecordFailedFmt, configured.Target.Name, err)
	}
	if err := p.store.Upsert(configured.Target.Identity, record); err != nil {
		return nil, fmt.Errorf(messages.InstallRecordFailedFmt, configured.Target.Name, err)
	}
	result.Record = record
	return result, nil
}

// Uninstall removes every link an install may have placed in the target's
// install directory and forgets the stored record. Only symlinks are removed;
// game-owned files and .backup copies stay. Uninstalling a target that was
// never installed is a no-op.
func (p *Planner) Uninstall(target Target) ([]string, error) {
	installPath := target.InstallDir
	if record, ok, err := p.store.Get(target.Identity); err != nil {
		return nil, err
	} else if ok && record.InstallPath != "" {
		installPath = record.InstallPath
	}

	var removed []string
	if installPath != "" {
		for _, name := range removableLinks {
			path := filepath.Join(installPath, name)
			ok, err := fsutil.RemoveSymlink(path)
			if err != nil {
				return removed, err
			}
			if ok {
				removed = append(removed, path)
			}
		}
	}
	if err := p.store.Remove(target.Identity); err != nil {
		return removed, fmt.Errorf(messages.UninstallRemoveRecordFmt, target.Name, err)
	}
	return removed, nil
}

// LaunchHint returns the Steam launch options line that loads the injector
// under Wine or Proton for the given override module.
func LaunchHint(override string) string {
	return fmt.Sprintf(`WINEDLLOVERRIDES="d3dcompiler_47=n;%s=n,b" %%command%%`, override)
}

func injectorName(arch peinfo.Arch) string {
	if arch == peinfo.ArchX64 {
		return "ReShade64.dll"
	}
	return "ReShade32.dll"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
