package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_ConfigFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag, "root command exposes --config")
	assert.Equal(t, "string", flag.Value.Type())

	t.Cleanup(func() { configFile = "" })
	require.NoError(t, cmd.PersistentFlags().Set("config", "/tmp/custom.yaml"))
	assert.Equal(t, "/tmp/custom.yaml", configFile)
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}
