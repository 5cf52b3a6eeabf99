package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, ":9091", cfg.WSAddr)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, ".", cfg.AssetsDir)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]string{"-ws-addr", ":7000", "-log-level", "debug"})
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.WSAddr)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"-not-a-flag"})
	require.Error(t, err)
}
