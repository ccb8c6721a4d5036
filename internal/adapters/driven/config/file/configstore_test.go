package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultLabels, cfg.DefaultLabels)
	assert.True(t, cfg.CaseInsensitive)
	assert.Empty(t, cfg.DataDir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	saved := Config{
		DataDir:         "/tmp/ws",
		DefaultLabels:   []string{"Finding", "Dosage"},
		CaseInsensitive: false,
	}
	require.NoError(t, Save(dir, saved))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestLoadPartialFileFillsLabelDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir = \"/srv/notes\"\n"), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/notes", cfg.DataDir)
	assert.Equal(t, domain.DefaultLabels, cfg.DefaultLabels)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "bad files fall back to defaults")
}

func TestPath(t *testing.T) {
	p, err := Path("/etc/annotate")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/etc/annotate", "config.toml"), p)
}
