package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Tags", cfg.Index.SectionName)
	assert.Equal(t, 240, cfg.Index.MaxEntryText)
	assert.Equal(t, 25, cfg.Index.FlushEvery)
	assert.Equal(t, 40*time.Second, cfg.Budget.Gather.Duration)
	assert.Equal(t, 40*time.Second, cfg.Budget.Write.Duration)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	manifest := `
[index]
section_name = "Index"
flush_every = 10

[budget]
gather = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Index", cfg.Index.SectionName)
	assert.Equal(t, 10, cfg.Index.FlushEvery)
	assert.Equal(t, 5*time.Second, cfg.Budget.Gather.Duration)
	// Untouched keys keep their defaults
	assert.Equal(t, 240, cfg.Index.MaxEntryText)
	assert.Equal(t, 40*time.Second, cfg.Budget.Write.Duration)
}

func TestLoad_BadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte("[index\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_FindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName),
		[]byte("[index]\nsection_name = \"Found\"\n"), 0o644))

	cfg, err := LoadOrDefault(nested)
	require.NoError(t, err)
	assert.Equal(t, "Found", cfg.Index.SectionName)
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Index, cfg.Index)
}

func TestEnvOverridesDBPath(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/custom.db")
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Path)
}

func TestDBPath_ExpandsHome(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "sub", "c.db")
	path, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.Storage.Path, path)
	// Parent directory is created
	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
