package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/srv/capri/config.yaml", "/srv/capri/config.yaml"},
		{"configs/capri.yaml", "configs/capri.yaml"},
		{"~", home},
		{"~/.capri/config.yaml", filepath.Join(home, ".capri", "config.yaml")},
		{"~alice/config.yaml", "~alice/config.yaml"},
		{"/srv/~/config.yaml", "/srv/~/config.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := HomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".capri"), dir)

	path, err := DefaultConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".capri", "config.yaml"), path)
}
