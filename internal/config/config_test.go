package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_ReadsYml(t *testing.T) {
	dir := t.TempDir()
	contents := `
maxDepth: 3
workers: 4
marker: " // CHANGED"
firstPartyOnly: false
excludeDirs: [vendor, node_modules]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semslice.yml"), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, " // CHANGED", cfg.Marker)
	require.NotNil(t, cfg.FirstPartyOnly)
	assert.False(t, *cfg.FirstPartyOnly)
	assert.ElementsMatch(t, []string{"vendor", "node_modules"}, cfg.ExcludeDirs)
}

func TestLoad_PrefersYmlOverYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semslice.yml"), []byte("marker: from-yml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "semslice.yaml"), []byte("marker: from-yaml\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.Marker)
}

func TestResolveOptions_OverridesDefaultsWhenSet(t *testing.T) {
	f := false
	cfg := &ProjectConfig{MaxDepth: 7, FirstPartyOnly: &f}
	opts := cfg.ResolveOptions()
	assert.Equal(t, 7, opts.MaxDepth)
	assert.False(t, opts.FirstPartyOnly)
}

func TestResolveOptions_ZeroValueKeepsDefaults(t *testing.T) {
	cfg := &ProjectConfig{}
	opts := cfg.ResolveOptions()
	assert.Equal(t, 5, opts.MaxDepth)
	assert.True(t, opts.FirstPartyOnly)
}

func TestRenderOptions_OverridesDefaultsWhenSet(t *testing.T) {
	cfg := &ProjectConfig{Marker: " // X", HeaderTemplate: "// hdr"}
	opts := cfg.RenderOptions()
	assert.Equal(t, " // X", opts.Marker)
	assert.Equal(t, "// hdr", opts.HeaderTemplate)
}

func TestExcludeDir(t *testing.T) {
	cfg := &ProjectConfig{ExcludeDirs: []string{"vendor", ".git"}}
	assert.True(t, cfg.ExcludeDir("vendor"))
	assert.True(t, cfg.ExcludeDir(".git"))
	assert.False(t, cfg.ExcludeDir("internal"))
}
