package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
[generate]
patterns = ["./shapes/...", "./events"]
yaml = ["decl/unions.yaml"]
suffix = "_sum.go"
jobs = 3
goarch = "arm64"
header = "Copyright Example"
comments = false
runtime = "example.com/rt"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, []string{"./shapes/...", "./events"}, cfg.Generate.Patterns)
	assert.Equal(t, "_sum.go", cfg.Generate.Suffix)
	assert.Equal(t, 3, cfg.Generate.Jobs)
	assert.Equal(t, "arm64", cfg.Generate.GOARCH)
	assert.Equal(t, "Copyright Example", cfg.Generate.Header)
	assert.Equal(t, "example.com/rt", cfg.Generate.Runtime)
	assert.False(t, cfg.CommentsEnabled())
	assert.Equal(t, []string{filepath.Join(dir, "decl", "unions.yaml")}, cfg.YAMLPaths())
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, t.TempDir(), "[generate]\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, cfg.Generate.Patterns)
	assert.True(t, cfg.CommentsEnabled())
	assert.Empty(t, cfg.YAMLPaths())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[generate\n", "failed to parse TOML"},
		{"unknown key", "[generate]\nfoo = 1\n", "unknown keys: generate.foo"},
		{"negative jobs", "[generate]\njobs = -1\n", "jobs must not be negative"},
		{"suffix", "[generate]\nsuffix = \"_union\"\n", "must end in .go"},
		{"test suffix", "[generate]\nsuffix = \"_union_test.go\"\n", "must not name a test file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDiscover_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeConfig(t, root, "[generate]\njobs = 2\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, path, found)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, 2, cfg.Generate.Jobs)
}

func TestDiscover_NoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, []string{"./..."}, cfg.Generate.Patterns)
}
