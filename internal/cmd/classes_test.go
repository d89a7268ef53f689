package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/rotorz/capri/internal/cmdutil"
	"github.com/rotorz/capri/internal/output"
)

func TestClassesText(t *testing.T) {
	root := project(t)
	res := execute(t, "classes", "shapes/square.yaml", "--root", root)
	require.NoError(t, res.err)

	out := output.StripANSI(res.stdout)
	assert.Contains(t, out, "capri.Object")
	assert.Contains(t, out, "module:shapes/shape.yaml#Shape abstract")
	assert.Contains(t, out, "module:shapes/square.yaml#Square")
	assert.Contains(t, out, "module:shapes/square.yaml#IDrawable { draw }")
}

func TestClassesYAML(t *testing.T) {
	root := project(t)
	res := execute(t, "classes", "shapes/square.yaml", "--root", root, "-o", "yaml")
	require.NoError(t, res.err)

	var report cmdutil.ClassReport
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &report))

	byID := map[string]cmdutil.ClassInfo{}
	for _, c := range report.Classes {
		byID[c.ID] = c
	}
	square, ok := byID["module:shapes/square.yaml#Square"]
	require.True(t, ok)
	assert.Equal(t, "module:shapes/shape.yaml#Shape", square.Super)
	assert.Equal(t, []string{"module:shapes/square.yaml#IDrawable"}, square.Interfaces)
	assert.False(t, square.Abstract)
	assert.True(t, byID["module:shapes/shape.yaml#Shape"].Abstract)

	require.Len(t, report.Interfaces, 1, "abstract contracts are not listed")
	assert.Equal(t, map[string]string{"draw": "function"}, report.Interfaces[0].Members)
}

func TestClassesValidationFailure(t *testing.T) {
	root := project(t)
	res := execute(t, "classes", "bad/blob.yaml", "--root", root)
	require.Error(t, res.err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(res.err))
	assert.Contains(t, res.log, "draw")
}
