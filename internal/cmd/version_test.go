package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	c := NewVersionCmd()
	assert.Equal(t, "version", c.Use)
	assert.NotEmpty(t, c.Long)

	res := execute(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "capri version")
	assert.Contains(t, res.stdout, "CUE SDK")
}
