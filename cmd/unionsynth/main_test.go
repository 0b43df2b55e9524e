package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const declYAML = `
package: shapes
unions:
  - name: Shape
    cases:
      - name: Circle
        params: [radius float64]
      - name: Square
        params: [side float64]
      - name: Empty
`

// project writes a YAML-only project and returns its config path.
func project(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unions.yaml"), []byte(declYAML), 0o644))

	cfg := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(cfg, []byte("[generate]\nyaml = [\"unions.yaml\"]\ngoarch = \"amd64\"\n"), 0o644))

	return cfg
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestGenAndCheck(t *testing.T) {
	t.Parallel()

	cfg := project(t)
	out := filepath.Join(filepath.Dir(cfg), "shape_union.go")

	_, _, err := execute(t, "check", "--config", cfg, "--color", "never")
	require.ErrorIs(t, err, errReported)

	stdout, _, err := execute(t, "gen", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "generated 1 file(s)\n", stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "// Code generated by unionsynth. DO NOT EDIT.")
	assert.Contains(t, string(content), "func ShapeCircle(radius float64) Shape")

	stdout, _, err = execute(t, "check", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1 file(s) up to date\n", stdout)

	require.NoError(t, os.WriteFile(out, []byte("package shapes\n"), 0o644))

	_, stderr, err := execute(t, "check", "--config", cfg, "--color", "never")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "[stale]")
	assert.Contains(t, stderr, "1 error(s), 0 warning(s)")
}

func TestGen_SuffixFlag(t *testing.T) {
	t.Parallel()

	cfg := project(t)

	_, _, err := execute(t, "gen", "--config", cfg, "--suffix", "_sum.go")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(cfg), "shape_sum.go"))

	_, _, err = execute(t, "gen", "--config", cfg, "--suffix", "_sum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must end in .go")
}

func TestGen_ReportsInvalidUnion(t *testing.T) {
	t.Parallel()

	cfg := project(t)
	dir := filepath.Dir(cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unions.yaml"), []byte(declYAML+`
  - name: Twice
    cases:
      - name: A
      - name: A
`), 0o644))

	stdout, stderr, err := execute(t, "gen", "--config", cfg, "--color", "never")
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[validation]")
	assert.Contains(t, stderr, "[shapes.Twice]")

	assert.FileExists(t, filepath.Join(dir, "shape_union.go"))
	assert.NoFileExists(t, filepath.Join(dir, "twice_union.go"))
}

func TestPlan(t *testing.T) {
	t.Parallel()

	cfg := project(t)

	stdout, _, err := execute(t, "plan", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "shapes.Shape (unions.yaml:unions[0])")
	assert.Contains(t, stdout, "params: 2, slots: 0, overlay: 8 bytes")
	assert.Contains(t, stdout, "record Circle")

	stdout, _, err = execute(t, "plan", "--config", cfg, "--dump")
	require.NoError(t, err)
	assert.Contains(t, stdout, "OverlaySize: (int64) 8")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "unionsynth ")
}

func TestUseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"always", false, true},
		{"never", true, false},
	}

	for _, tt := range tests {
		got, err := useColor(tt.mode, tt.tty)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s tty=%v", tt.mode, tt.tty)
	}

	_, err := useColor("sometimes", true)
	require.Error(t, err)
}
