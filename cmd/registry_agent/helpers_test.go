package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmy/client-registry/internal/config"
)

func withConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prev := configPath
	configPath = path
	t.Cleanup(func() { configPath = prev })
}

func TestMergeFlagConfig_FileFillsUnsetFlags(t *testing.T) {
	withConfigFile(t, `{"min_containment_length": 12, "verbose": true}`)

	merged, err := mergeFlagConfig(config.Config{})

	require.NoError(t, err)
	assert.Equal(t, 12, merged.MinContainmentLength)
	assert.True(t, merged.Verbose)
}

func TestMergeFlagConfig_FlagsWinOverFile(t *testing.T) {
	withConfigFile(t, `{"min_containment_length": 12}`)

	merged, err := mergeFlagConfig(config.Config{MinContainmentLength: 4, Verbose: true})

	require.NoError(t, err)
	assert.Equal(t, 4, merged.MinContainmentLength)
	assert.True(t, merged.Verbose)
}

func TestMergeFlagConfig_NoConfigFile(t *testing.T) {
	prev := configPath
	configPath = ""
	t.Cleanup(func() { configPath = prev })

	merged, err := mergeFlagConfig(config.Config{MinContainmentLength: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, merged.MinContainmentLength)
	assert.False(t, merged.Verbose)
}
