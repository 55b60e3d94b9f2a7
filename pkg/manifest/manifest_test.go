package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestRead_PreservesDeclarationOrder(t *testing.T) {
	dir := writeManifest(t, `{
		"name": "test-project",
		"dependencies": {
			"zod": "^3.0.0",
			"express": "4.17.1",
			"axios": "*",
			"left-pad": "1.3.0"
		},
		"devDependencies": {
			"jest": "26.6.3",
			"express": "4.17.1"
		}
	}`)

	m, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "test-project", m.Name)
	assert.Equal(t, []string{"zod", "express", "axios", "left-pad"}, m.Dependencies)
	assert.Equal(t, []string{"jest", "express"}, m.DevDependencies)

	assert.Equal(t, []string{"zod", "express", "axios", "left-pad"}, m.Names(false))
	assert.Equal(t, []string{"zod", "express", "axios", "left-pad", "jest"}, m.Names(true))
}

func TestRead_NoDependencies(t *testing.T) {
	for _, content := range []string{`{}`, `{"dependencies": null}`, `{"dependencies": {}}`} {
		m, err := Read(writeManifest(t, content))
		require.NoError(t, err, content)
		assert.Empty(t, m.Names(true), content)
	}
}

func TestRead_IgnoresConstraintShape(t *testing.T) {
	m, err := Parse([]byte(`{"dependencies": {"a": {"version": "1"}, "b": ["x"], "c": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, m.Dependencies)
}

func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(writeManifest(t, "invalid json content"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRead_DependenciesNotAnObject(t *testing.T) {
	_, err := Read(writeManifest(t, `{"dependencies": ["react"]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRead_NotFound(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
