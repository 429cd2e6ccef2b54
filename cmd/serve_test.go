package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	for _, name := range []string{
		"debug",
		"http-addr",
		"ollama-host",
		"ollama-model",
		"ollama-timeout",
		"metrics-enabled",
		"metrics-addr",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	addr, err := cmd.Flags().GetString("http-addr")
	require.NoError(t, err)
	assert.Equal(t, ":8000", addr)

	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	require.NoError(t, err)
	assert.Equal(t, ":9090", metricsAddr)
}

func TestMCPCmdFlags(t *testing.T) {
	cmd := newMCPCmd()
	assert.NotNil(t, cmd.Flags().Lookup("ollama-host"))
	assert.NotNil(t, cmd.Flags().Lookup("ollama-model"))
	assert.NotNil(t, cmd.Flags().Lookup("ollama-timeout"))
}

func TestRootCmdHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["mcp"])
	assert.True(t, names["version"])
}
