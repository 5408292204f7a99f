package gamedb

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "games.json"))
	require.NoError(t, err)
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestLoadEmptyStoreOnFirstRun(t *testing.T) {
	store := newStore(t)

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpsertThenLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	record := Record{
		Architecture:   "x64",
		GraphicsAPI:    "d3d11",
		OverrideModule: "dxgi",
		InstallPath:    "/games/witcher3/bin/x64",
		ShadersMerged:  true,
	}
	require.NoError(t, record.SetExtra("installed_at", "2026-08-25T10:00:00Z"))

	require.NoError(t, store.Upsert("292030", record))

	records, err := store.Load()
	require.NoError(t, err)
	require.Contains(t, records, Identity("292030"))
	assert.Equal(t, record, records["292030"])
}

func TestUnknownFieldsSurviveRoundTrip(t *testing.T) {
	store := newStore(t)

	// A newer version wrote a record with fields this version does not know.
	future := []byte(`{
  "570": {
    "architecture": "x64",
    "graphics_api": "vulkan",
    "override_module": "dxgi",
    "install_path": "/games/dota2",
    "shaders_merged": false,
    "preset_path": "/presets/dota2.ini",
    "addon_support": true
  }
}`)
	require.NoError(t, os.WriteFile(store.Path(), future, 0o644))

	records, err := store.Load()
	require.NoError(t, err)
	record := records["570"]
	require.Contains(t, record.Extra, "preset_path")
	require.Contains(t, record.Extra, "addon_support")

	// Re-save through this version and load again: the unknown fields must
	// still be there, byte-for-byte.
	record.ShadersMerged = true
	require.NoError(t, store.Upsert("570", record))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"/presets/dota2.ini"`), reloaded["570"].Extra["preset_path"])
	assert.Equal(t, json.RawMessage(`true`), reloaded["570"].Extra["addon_support"])
	assert.True(t, reloaded["570"].ShadersMerged)
}

func TestUpsertReplacesExisting(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Upsert("220", Record{GraphicsAPI: "d3d9", OverrideModule: "d3d9"}))
	require.NoError(t, store.Upsert("220", Record{GraphicsAPI: "d3d11", OverrideModule: "dxgi"}))

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "d3d11", records["220"].GraphicsAPI)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Remove("never-recorded"))

	require.NoError(t, store.Upsert("220", Record{GraphicsAPI: "d3d9"}))
	require.NoError(t, store.Remove("220"))
	require.NoError(t, store.Remove("220"))

	records, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, records, Identity("220"))
}

func TestLoadCorruptStore(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrCorruptStore)
	assert.Contains(t, err.Error(), store.Path())
}

func TestUpsertDoesNotClobberCorruptStore(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	err := store.Upsert("220", Record{})
	require.ErrorIs(t, err, ErrCorruptStore)

	data, readErr := os.ReadFile(store.Path())
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestGet(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Upsert("220", Record{GraphicsAPI: "d3d9"}))

	record, ok, err := store.Get("220")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "d3d9", record.GraphicsAPI)

	_, ok, err = store.Get("999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingIdentityAfterRemoveEitherWay(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Remove("ghost"))

	records, err := store.Load()
	require.NoError(t, err)
	var ids []Identity
	for id := range records {
		ids = append(ids, id)
	}
	require.NotContains(t, ids, Identity("ghost"))
}

func TestErrorsMentionPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	store, err := Open(path)
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("wrong-shape document should be corrupt, got %v", err)
	}
	assert.Contains(t, err.Error(), path)
}
