package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	raw := Default()
	assert.Equal(t, "/", raw.Root)
	assert.Equal(t, "", raw.Ignore)
	assert.False(t, raw.Hidden)
	assert.Equal(t, "**/node_modules", raw.Reclaimable)
	assert.Equal(t, 100, raw.TopN)
	assert.Equal(t, int64(50*1024*1024), raw.LargeThreshold)
}

func TestNewRejectsMalformedPatterns(t *testing.T) {
	raw := Default()
	raw.Ignore = "**/[abc"
	_, err := New(raw)
	require.ErrorIs(t, err, ErrInvalidPattern)

	raw = Default()
	raw.Reclaimable = "{node_modules"
	_, err = New(raw)
	require.ErrorIs(t, err, ErrInvalidPattern)
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Raw)
	}{
		{"empty root", func(r *Raw) { r.Root = " " }},
		{"negative top-n", func(r *Raw) { r.TopN = -1 }},
		{"negative threshold", func(r *Raw) { r.LargeThreshold = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := Default()
			tt.edit(&raw)
			_, err := New(raw)
			require.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestNewResolvesRoot(t *testing.T) {
	raw := Default()
	raw.Root = "."
	s, err := New(raw)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, s.Root())
}

func TestMatchIgnore(t *testing.T) {
	raw := Default()
	raw.Ignore = "**/node_modules"
	s, err := New(raw)
	require.NoError(t, err)

	assert.True(t, s.MatchIgnore("/home/me/project/node_modules"))
	assert.False(t, s.MatchIgnore("/home/me/project/src"))

	raw.Ignore = ""
	s, err = New(raw)
	require.NoError(t, err)
	assert.False(t, s.MatchIgnore("/anything"))
}

func TestMatchReclaimable(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)

	assert.True(t, s.MatchReclaimable("/work/app/node_modules"))
	assert.True(t, s.MatchReclaimable("node_modules"))
	assert.False(t, s.MatchReclaimable("/work/app/node_modules_backup"))

	raw := Default()
	raw.Reclaimable = "{target,.venv}"
	s, err = New(raw)
	require.NoError(t, err)
	assert.True(t, s.MatchReclaimable("/src/crate/target"))
	assert.True(t, s.MatchReclaimable("/src/py/.venv"))
	assert.False(t, s.MatchReclaimable("/src/py/venv"))
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"root": "/srv", "top_n": 5}`), 0644))

	raw, err := Load(path, Default())
	require.NoError(t, err)

	assert.Equal(t, "/srv", raw.Root)
	assert.Equal(t, 5, raw.TopN)
	assert.Equal(t, "**/node_modules", raw.Reclaimable)
	assert.Equal(t, int64(DefaultLargeThreshold), raw.LargeThreshold)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), Default())
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err = Load(path, Default())
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	path, ok := Resolve("/explicit.json")
	assert.True(t, ok)
	assert.Equal(t, "/explicit.json", path)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", t.TempDir())
	_, ok = Resolve("")
	assert.False(t, ok)

	cfg := filepath.Join(dir, "diskusage", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg), 0755))
	require.NoError(t, os.WriteFile(cfg, []byte(`{}`), 0644))
	path, ok = Resolve("")
	assert.True(t, ok)
	assert.Equal(t, cfg, path)
}
