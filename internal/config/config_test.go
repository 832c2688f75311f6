package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "semcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMinimalConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "package: main\nfiles:\n  - main.flux\n")

	proj, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "main", proj.Package)
	assert.Equal(t, []string{"main.flux"}, proj.Files)
	assert.Equal(t, "text", proj.Output.Format)
	assert.True(t, proj.Output.Color)
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
package: analytics
files:
  - src/a.flux
  - src/b.flux
imports:
  csv: github.com/influxdata/flux/csv
output:
  format: json
  compact: true
  color: false
`)

	proj, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "analytics", proj.Package)
	assert.Equal(t, "github.com/influxdata/flux/csv", proj.Imports["csv"])
	assert.Equal(t, "json", proj.Output.Format)
	assert.True(t, proj.Output.Compact)
	assert.False(t, proj.Output.Color)
}

func TestLoadMissingPackage(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "files:\n  - main.flux\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "package: main\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "package: main\nfiles: [main.flux]\noutput:\n  format: xml\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/semcheck.yaml")
	assert.Error(t, err)
}

func TestResolveFiles(t *testing.T) {
	proj := &Project{Files: []string{"a.flux", "sub/b.flux", "/abs/c.flux"}}
	got := proj.ResolveFiles("/project/semcheck.yaml")
	assert.Equal(t, []string{"/project/a.flux", "/project/sub/b.flux", "/abs/c.flux"}, got)
}
