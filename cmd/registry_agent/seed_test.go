package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSeedFile_Valid(t *testing.T) {
	path := writeTempSeedFile(t, `{
		"aliases": [
			{"display_name": "GRMC", "canonical_name": "Goulburn Regional Medical Centre"},
			{"display_name": "Gramps", "canonical_name": "Grampians Health", "is_active": false}
		]
	}`)

	doc, err := parseSeedFile(path)

	require.NoError(t, err)
	require.Len(t, doc.Aliases, 2)
	assert.Equal(t, "GRMC", doc.Aliases[0].DisplayName)
	assert.Nil(t, doc.Aliases[0].IsActive)
	require.NotNil(t, doc.Aliases[1].IsActive)
	assert.False(t, *doc.Aliases[1].IsActive)
}

func TestParseSeedFile_EmptyAliases(t *testing.T) {
	path := writeTempSeedFile(t, `{"aliases": []}`)

	_, err := parseSeedFile(path)

	assert.Error(t, err)
}

func TestParseSeedFile_MissingCanonicalName(t *testing.T) {
	path := writeTempSeedFile(t, `{"aliases": [{"display_name": "GRMC"}]}`)

	_, err := parseSeedFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParseSeedFile_NotJSON(t *testing.T) {
	path := writeTempSeedFile(t, "not json at all")

	_, err := parseSeedFile(path)

	assert.Error(t, err)
}

func TestParseSeedFile_FileMissing(t *testing.T) {
	_, err := parseSeedFile(filepath.Join(t.TempDir(), "does-not-exist.json"))

	assert.Error(t, err)
}

func TestSeedCommand_RequiresFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "seed")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "file")
}
