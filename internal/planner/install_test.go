package planner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/peinfo"
	"github.com/glaze-tools/glaze/internal/shaders"
	"github.com/glaze-tools/glaze/internal/warnings"
)

// writeRuntime seeds the runtime directory with injector DLL stand-ins.
func writeRuntime(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{"ReShade32.dll", "ReShade64.dll", "d3dcompiler_47.dll"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func configuredFor(t *testing.T, p *Planner, target Target) *Configured {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(target.Executable), 0o755))
	analysis, err := p.Analyze(target)
	require.NoError(t, err)
	configured, err := p.Configure(analysis)
	require.NoError(t, err)
	return configured
}

func TestInstallPlacesLinksAndRecords(t *testing.T) {
	p, store, _ := testPlanner(t, Options{})
	writeRuntime(t, p.cfg.RuntimeDir)
	target := testTarget(t)
	configured := configuredFor(t, p, target)
	configured.MergeShaders = false

	result, err := p.Install(context.Background(), configured)
	require.NoError(t, err)

	overrideLink := filepath.Join(configured.InstallPath, "dxgi.dll")
	resolved, err := os.Readlink(overrideLink)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.cfg.RuntimeDir, "ReShade64.dll"), resolved)

	_, err = os.Readlink(filepath.Join(configured.InstallPath, "d3dcompiler_47.dll"))
	assert.NoError(t, err)
	_, err = os.Readlink(filepath.Join(configured.InstallPath, "ReShade.ini"))
	assert.NoError(t, err)

	record, ok, err := store.Get(target.Identity)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x64", record.Architecture)
	assert.Equal(t, "d3d11", record.GraphicsAPI)
	assert.Equal(t, "dxgi", record.OverrideModule)
	assert.Contains(t, record.Extra, "installed_at")
	assert.Equal(t, record, result.Record)
}

func TestInstallPicks32BitInjectorForX86(t *testing.T) {
	p, _, _ := testPlanner(t, Options{
		Analyze: func(string) (peinfo.Profile, error) {
			return peinfo.Profile{Architecture: peinfo.ArchX86, API: peinfo.APID3D9, OverrideModule: "d3d9"}, nil
		},
	})
	writeRuntime(t, p.cfg.RuntimeDir)
	configured := configuredFor(t, p, testTarget(t))
	configured.MergeShaders = false

	_, err := p.Install(context.Background(), configured)
	require.NoError(t, err)

	resolved, err := os.Readlink(filepath.Join(configured.InstallPath, "d3d9.dll"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.cfg.RuntimeDir, "ReShade32.dll"), resolved)
}

func TestInstallMergesAndLinksShaders(t *testing.T) {
	merged := false
	p, _, _ := testPlanner(t, Options{
		Merge: func(_ context.Context, _ []shaders.Source, outputDir string) (shaders.Report, []warnings.Warning, error) {
			merged = true
			require.NoError(t, os.MkdirAll(outputDir, 0o755))
			return shaders.Report{FilesWritten: 3}, nil, nil
		},
	})
	writeRuntime(t, p.cfg.RuntimeDir)
	configured := configuredFor(t, p, testTarget(t))
	require.True(t, configured.MergeShaders)

	result, err := p.Install(context.Background(), configured)
	require.NoError(t, err)

	assert.True(t, merged)
	require.NotNil(t, result.MergeReport)
	assert.Equal(t, 3, result.MergeReport.FilesWritten)
	resolved, err := os.Readlink(filepath.Join(configured.InstallPath, "ReShade_shaders"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(p.cfg.Paths().MergedDir), resolved)
}

func TestInstallBacksUpGameOwnedDLL(t *testing.T) {
	p, _, _ := testPlanner(t, Options{})
	writeRuntime(t, p.cfg.RuntimeDir)
	configured := configuredFor(t, p, testTarget(t))
	configured.MergeShaders = false
	shipped := filepath.Join(configured.InstallPath, "dxgi.dll")
	require.NoError(t, os.WriteFile(shipped, []byte("game copy"), 0o644))

	_, err := p.Install(context.Background(), configured)
	require.NoError(t, err)

	backup, err := os.ReadFile(shipped + ".backup")
	require.NoError(t, err)
	assert.Equal(t, "game copy", string(backup))
	_, err = os.Readlink(shipped)
	assert.NoError(t, err)
}

func TestInstallMergeFailureLeavesStoreUntouched(t *testing.T) {
	mergeErr := errors.New("source walk failed")
	p, store, _ := testPlanner(t, Options{
		Merge: func(context.Context, []shaders.Source, string) (shaders.Report, []warnings.Warning, error) {
			return shaders.Report{}, nil, mergeErr
		},
	})
	writeRuntime(t, p.cfg.RuntimeDir)
	target := testTarget(t)
	configured := configuredFor(t, p, target)

	_, err := p.Install(context.Background(), configured)

	require.ErrorIs(t, err, mergeErr)
	_, ok, err := store.Get(target.Identity)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInstallMissingInjectorDLL(t *testing.T) {
	p, store, _ := testPlanner(t, Options{})
	target := testTarget(t)
	configured := configuredFor(t, p, target)

	_, err := p.Install(context.Background(), configured)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReShade64.dll")
	_, ok, getErr := store.Get(target.Identity)
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestInstallRequiresConfiguration(t *testing.T) {
	p, _, _ := testPlanner(t, Options{})

	_, err := p.Install(context.Background(), &Configured{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestUninstallRemovesLinksAndRecord(t *testing.T) {
	p, store, _ := testPlanner(t, Options{})
	writeRuntime(t, p.cfg.RuntimeDir)
	target := testTarget(t)
	configured := configuredFor(t, p, target)
	configured.MergeShaders = false
	_, err := p.Install(context.Background(), configured)
	require.NoError(t, err)
	shippedBackup := filepath.Join(configured.InstallPath, "dxgi.dll.backup")
	require.NoError(t, os.WriteFile(shippedBackup, []byte("game copy"), 0o644))

	removed, err := p.Uninstall(target)
	require.NoError(t, err)

	assert.Contains(t, removed, filepath.Join(configured.InstallPath, "dxgi.dll"))
	_, err = os.Lstat(filepath.Join(configured.InstallPath, "dxgi.dll"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(shippedBackup)
	assert.NoError(t, err, "backup copies stay in place")

	_, ok, err := store.Get(target.Identity)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUninstallIsIdempotent(t *testing.T) {
	p, _, _ := testPlanner(t, Options{})
	target := testTarget(t)

	removed, err := p.Uninstall(target)
	require.NoError(t, err)
	assert.Empty(t, removed)

	removed, err = p.Uninstall(target)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestUninstallLeavesRegularFiles(t *testing.T) {
	p, _, _ := testPlanner(t, Options{})
	target := testTarget(t)
	gameOwned := filepath.Join(target.InstallDir, "d3d11.dll")
	require.NoError(t, os.WriteFile(gameOwned, []byte("real dll"), 0o644))

	removed, err := p.Uninstall(target)
	require.NoError(t, err)

	assert.Empty(t, removed)
	data, err := os.ReadFile(gameOwned)
	require.NoError(t, err)
	assert.Equal(t, "real dll", string(data))
}

func TestUninstallUsesRecordedInstallPath(t *testing.T) {
	p, store, _ := testPlanner(t, Options{})
	target := testTarget(t)
	recorded := t.TempDir()
	require.NoError(t, store.Upsert(target.Identity, gamedb.Record{InstallPath: recorded}))
	require.NoError(t, os.Symlink("/nonexistent", filepath.Join(recorded, "dxgi.dll")))

	removed, err := p.Uninstall(target)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(recorded, "dxgi.dll")}, removed)
}

func TestLaunchHint(t *testing.T) {
	assert.Equal(t,
		`WINEDLLOVERRIDES="d3dcompiler_47=n;dxgi=n,b" %command%`,
		LaunchHint("dxgi"))
}
