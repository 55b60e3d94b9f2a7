package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 36, c.MonthsThreshold)
	assert.Equal(t, "https://registry.npmjs.org", c.Registry)
	assert.Equal(t, 1, c.Concurrency)
	assert.Equal(t, "markdown", c.Output.Format)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
monthsThreshold: 12
registry: https://npm.example.com
concurrency: 4
includeDev: true
output:
  format: json
ignorePackages:
  - left-pad
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, c.MonthsThreshold)
	assert.Equal(t, "https://npm.example.com", c.Registry)
	assert.Equal(t, 4, c.Concurrency)
	assert.True(t, c.IncludeDev)
	assert.False(t, c.StrictSemver)
	assert.Equal(t, "json", c.Output.Format)
	assert.True(t, c.IsPackageIgnored("left-pad"))
	assert.False(t, c.IsPackageIgnored("react"))
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPathDoesNotReadWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("monthsThreshold: 2\n"), 0644))
	t.Chdir(dir)

	c, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"threshold": "monthsThreshold: 0\n",
		"format":    "output:\n  format: xml\n",
		"yaml":      "monthsThreshold: [\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.ApplyEnv(env(nil)))
	assert.Equal(t, 36, c.MonthsThreshold)

	require.NoError(t, c.ApplyEnv(env(map[string]string{EnvMonthsThreshold: "6"})))
	assert.Equal(t, 6, c.MonthsThreshold)
}

func TestApplyEnv_RejectsInvalid(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", "1.5"} {
		c := DefaultConfig()
		err := c.ApplyEnv(env(map[string]string{EnvMonthsThreshold: raw}))
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
		assert.Equal(t, 36, c.MonthsThreshold, "threshold must stay at default for %q", raw)
	}
}
